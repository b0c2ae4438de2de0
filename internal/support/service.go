package support

import (
	"context"
	"fmt"

	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/database"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/logger"
	"github.com/histolook/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

const replyAlarmTitle = "문의 답변 도착"

// Notifier delivers an alarm to a member; implementations must not fail the caller
type Notifier interface {
	Notify(ctx context.Context, memberID, title, body string, archiveID *string)
}

type SupportService struct {
	db                *gorm.DB
	supportRepository *SupportRepository
	notifier          Notifier
}

func NewSupportService(db *gorm.DB, supportRepository *SupportRepository, notifier Notifier) *SupportService {
	return &SupportService{
		db:                db,
		supportRepository: supportRepository,
		notifier:          notifier,
	}
}

func (s *SupportService) CreateSupport(ctx context.Context, memberID string, request *CreateSupportRequest) (*SupportIDResponse, error) {
	post := model.NewSupportPost(memberID, model.SupportType(request.SupportType), request.Title, request.Content)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.supportRepository.Create(ctx, tx, post)
	})
	if err != nil {
		logger.FromContext(ctx).Error("문의 등록 실패", "member_id", memberID, "error", err)
		return nil, sharedError.MaskUnexpected(fmt.Errorf("문의 등록 실패: %w", err))
	}

	logger.FromContext(ctx).Info("문의 등록 완료", "support_id", post.ID, "member_id", memberID)
	return &SupportIDResponse{SupportID: post.ID}, nil
}

func (s *SupportService) GetMySupports(ctx context.Context, memberID string, page pagination.Page) (*pagination.Result[SupportSummary], error) {
	posts, err := s.supportRepository.FindPageByMemberID(ctx, s.db, memberID, page)
	if err != nil {
		return nil, fmt.Errorf("문의 목록 조회 실패: %w", err)
	}

	result := pagination.Map(page, posts, newSupportSummary)
	return &result, nil
}

// GetSupport answers NotFound to non-owners as well
func (s *SupportService) GetSupport(ctx context.Context, memberID string, supportID uint32) (*SupportResponse, error) {
	post, err := s.findSupport(ctx, s.db, supportID)
	if err != nil {
		return nil, err
	}
	if post.MemberID != memberID {
		logger.FromContext(ctx).Warn("타인 문의 조회 시도", "support_id", supportID, "member_id", memberID)
		return nil, fmt.Errorf("supportID=%d memberID=%s: %w", supportID, memberID, ErrSupportNotFound)
	}

	response := newSupportResponse(*post)
	return &response, nil
}

func (s *SupportService) AdminGetSupports(ctx context.Context, page pagination.Page) (*pagination.Result[SupportResponse], error) {
	posts, err := s.supportRepository.FindPage(ctx, s.db, page)
	if err != nil {
		return nil, fmt.Errorf("문의 목록 조회 실패: %w", err)
	}

	result := pagination.Map(page, posts, newSupportResponse)
	return &result, nil
}

// AdminReplySupport may be repeated; the latest reply wins
func (s *SupportService) AdminReplySupport(ctx context.Context, supportID uint32, reply string) (*SupportResponse, error) {
	var answered *model.SupportPost
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		post, err := s.findSupport(ctx, tx, supportID)
		if err != nil {
			return err
		}

		post.Answer(reply)
		if err := s.supportRepository.SaveReply(ctx, tx, post); err != nil {
			return fmt.Errorf("답변 저장 실패: %w", err)
		}
		answered = post
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Warn("문의 답변 실패", "support_id", supportID, "error", err)
		return nil, sharedError.MaskUnexpected(err)
	}

	logger.FromContext(ctx).Info("문의 답변 완료", "support_id", supportID)
	s.notifier.Notify(ctx, answered.MemberID, replyAlarmTitle, fmt.Sprintf("'%s' 문의에 답변이 등록되었습니다.", answered.Title), nil)

	response := newSupportResponse(*answered)
	return &response, nil
}

func (s *SupportService) AdminDeleteSupport(ctx context.Context, supportID uint32) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.findSupport(ctx, tx, supportID); err != nil {
			return err
		}
		return s.supportRepository.Delete(ctx, tx, supportID)
	})
	if err != nil {
		return sharedError.MaskUnexpected(err)
	}

	logger.FromContext(ctx).Info("문의 삭제 완료", "support_id", supportID)
	return nil
}

func (s *SupportService) findSupport(ctx context.Context, db *gorm.DB, supportID uint32) (*model.SupportPost, error) {
	post, err := s.supportRepository.FindByID(ctx, db, supportID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("supportID=%d: %w", supportID, ErrSupportNotFound)
		}
		return nil, fmt.Errorf("문의 조회 실패: %w", err)
	}
	return post, nil
}
