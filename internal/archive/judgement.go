package archive

import (
	"context"
	"fmt"
	"math"

	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/database"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/logger"
	"gorm.io/gorm"
)

const (
	judgementAlarmTitle = "새로운 판정"
	judgementAlarmBody  = "%s님이 회원님의 아카이브를 판정했습니다."
)

// CreateJudgement records one verdict per (archive, member) and recomputes the
// archive's average price in the same transaction. The archive author is
// notified after commit.
func (s *ArchiveService) CreateJudgement(ctx context.Context, memberID, nickname, archiveID string, request *JudgementRequest) (*JudgementResponse, error) {
	ctx = logger.With(ctx, "archive_id", archiveID, "member_id", memberID)
	log := logger.FromContext(ctx)

	if request.Price != nil && *request.Price < 0 {
		return nil, fmt.Errorf("price=%d: %w", *request.Price, ErrInvalidPrice)
	}

	comment := request.Comment
	if comment != nil && *comment == "" {
		comment = nil
	}

	var (
		authorID string
		response *JudgementResponse
	)
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		archive, err := s.findArchive(ctx, tx, archiveID)
		if err != nil {
			return err
		}
		if !archive.IsJudgementAllow {
			return fmt.Errorf("archiveID=%s: %w", archiveID, ErrJudgementNotAllowed)
		}
		if request.Price != nil && (!archive.IsPriceJudgementAllow || !*request.IsArchive) {
			return fmt.Errorf("price on archiveID=%s: %w", archiveID, ErrInvalidPrice)
		}

		judged, err := s.judgementRepository.Exists(ctx, tx, archiveID, memberID)
		if err != nil {
			return fmt.Errorf("판정 여부 조회 실패: %w", err)
		}
		if judged {
			return fmt.Errorf("archiveID=%s memberID=%s: %w", archiveID, memberID, ErrAlreadyJudged)
		}

		judgement := &model.Judgement{
			ArchiveID: archiveID,
			MemberID:  memberID,
			IsArchive: *request.IsArchive,
			Comment:   comment,
			Price:     request.Price,
		}
		if err := s.judgementRepository.Create(ctx, tx, judgement); err != nil {
			// 동시 요청은 유니크 인덱스에서 걸린다
			if database.IsDuplicateKey(err) {
				return fmt.Errorf("archiveID=%s memberID=%s: %w", archiveID, memberID, ErrAlreadyJudged)
			}
			return fmt.Errorf("판정 생성 실패: %w", err)
		}

		average, err := s.recomputeAveragePrice(ctx, tx, archiveID)
		if err != nil {
			return err
		}

		authorID = archive.AuthorID
		response = &JudgementResponse{
			ID:                    judgement.ID,
			ArchiveID:             archiveID,
			IsArchive:             judgement.IsArchive,
			Comment:               judgement.Comment,
			Price:                 judgement.Price,
			AverageJudgementPrice: average,
		}
		return nil
	})
	if err != nil {
		log.Warn("판정 실패", "error", err)
		return nil, sharedError.MaskUnexpected(err)
	}

	log.Info("판정 완료", "is_archive", response.IsArchive)

	if authorID != memberID {
		s.notifier.Notify(ctx, authorID, judgementAlarmTitle, fmt.Sprintf(judgementAlarmBody, nickname), &archiveID)
	}
	return response, nil
}

// recomputeAveragePrice rescans every priced judgement of the archive
func (s *ArchiveService) recomputeAveragePrice(ctx context.Context, tx *gorm.DB, archiveID string) (*int, error) {
	prices, err := s.judgementRepository.FindPrices(ctx, tx, archiveID)
	if err != nil {
		return nil, fmt.Errorf("판정 가격 조회 실패: %w", err)
	}

	average := AveragePrice(prices)
	if err := s.archiveRepository.UpdateAverageJudgementPrice(ctx, tx, archiveID, average); err != nil {
		return nil, fmt.Errorf("평균 판정 가격 갱신 실패: %w", err)
	}
	return average, nil
}

// AveragePrice is the rounded mean of prices, nil when there are none
func AveragePrice(prices []int) *int {
	if len(prices) == 0 {
		return nil
	}

	var sum int64
	for _, price := range prices {
		sum += int64(price)
	}
	average := int(math.Round(float64(sum) / float64(len(prices))))
	return &average
}
