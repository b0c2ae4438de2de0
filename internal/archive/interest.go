package archive

import (
	"context"
	"fmt"

	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/database"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/logger"
)

// CreateInterest is idempotent: an already active interest is returned as is
func (s *ArchiveService) CreateInterest(ctx context.Context, memberID, archiveID string) (*InterestResponse, error) {
	log := logger.FromContext(ctx)
	response := &InterestResponse{ArchiveID: archiveID}

	if _, err := s.findArchive(ctx, s.db, archiveID); err != nil {
		return nil, sharedError.MaskUnexpected(err)
	}

	active, err := s.interestRepository.IsActive(ctx, s.db, memberID, archiveID)
	if err != nil {
		return nil, sharedError.MaskUnexpected(fmt.Errorf("관심 여부 조회 실패: %w", err))
	}
	if active {
		return response, nil
	}

	interest := &model.ArchiveInterest{MemberID: memberID, ArchiveID: archiveID}
	if err := s.interestRepository.Create(ctx, s.db, interest); err != nil {
		// 동시에 들어온 같은 요청이 먼저 등록한 경우
		if database.IsDuplicateKey(err) {
			return response, nil
		}
		log.Error("관심 등록 실패", "archive_id", archiveID, "error", err)
		return nil, sharedError.MaskUnexpected(fmt.Errorf("관심 등록 실패: %w", err))
	}

	log.Info("관심 등록", "archive_id", archiveID, "member_id", memberID)
	return response, nil
}

// DeleteInterest soft-deletes the active interest; a later add creates a new row
func (s *ArchiveService) DeleteInterest(ctx context.Context, memberID, archiveID string) error {
	interest, err := s.interestRepository.FindActive(ctx, s.db, memberID, archiveID)
	if err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("memberID=%s archiveID=%s: %w", memberID, archiveID, ErrInterestNotFound)
		}
		return sharedError.MaskUnexpected(fmt.Errorf("관심 조회 실패: %w", err))
	}

	if err := s.interestRepository.SoftDelete(ctx, s.db, interest.ID); err != nil {
		return sharedError.MaskUnexpected(fmt.Errorf("관심 해제 실패: %w", err))
	}

	logger.FromContext(ctx).Info("관심 해제", "archive_id", archiveID, "member_id", memberID)
	return nil
}
