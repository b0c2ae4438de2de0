package archive

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/database"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/logger"
	"github.com/histolook/go-api-server/internal/shared/pagination"
	"github.com/histolook/go-api-server/internal/shared/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier delivers an alarm to a member; implementations must not fail the caller
type Notifier interface {
	Notify(ctx context.Context, memberID, title, body string, archiveID *string)
}

type ArchiveService struct {
	db                  *gorm.DB
	archiveRepository   *ArchiveRepository
	judgementRepository *JudgementRepository
	interestRepository  *InterestRepository
	lookupService       *LookupService
	storage             storage.Storage
	uploadURLTTL        time.Duration
	notifier            Notifier
}

func NewArchiveService(
	db *gorm.DB,
	archiveRepository *ArchiveRepository,
	judgementRepository *JudgementRepository,
	interestRepository *InterestRepository,
	lookupService *LookupService,
	objectStorage storage.Storage,
	uploadURLTTL time.Duration,
	notifier Notifier,
) *ArchiveService {
	return &ArchiveService{
		db:                  db,
		archiveRepository:   archiveRepository,
		judgementRepository: judgementRepository,
		interestRepository:  interestRepository,
		lookupService:       lookupService,
		storage:             objectStorage,
		uploadURLTTL:        uploadURLTTL,
		notifier:            notifier,
	}
}

func (s *ArchiveService) IssueUploadURLs(ctx context.Context, memberID string, count int) (*storage.UploadURLs, error) {
	urls, err := s.storage.GenerateUploadURLs(ctx, storage.PrefixArchive, memberID, count, s.uploadURLTTL)
	if err != nil {
		logger.FromContext(ctx).Error("아카이브 업로드 URL 발급 실패", "member_id", memberID, "error", err)
		return nil, sharedError.MaskUnexpected(fmt.Errorf("generate upload urls: %w", err))
	}
	return urls, nil
}

func (s *ArchiveService) CreateArchive(ctx context.Context, authorID string, request *ArchiveRequest) (*ArchiveIDResponse, error) {
	log := logger.FromContext(ctx)

	if err := validatePermission(request); err != nil {
		return nil, err
	}
	imageURLs, err := s.toImageURLs(authorID, request.Images, nil)
	if err != nil {
		log.Warn("아카이브 이미지 검증 실패", "member_id", authorID, "error", err)
		return nil, err
	}

	var archiveID string
	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		resolved, err := s.lookupService.resolve(ctx, tx, request.Brand, request.Timeline, request.Category, ErrLookupNotFound)
		if err != nil {
			return err
		}

		archive := &model.Archive{
			AuthorID:              authorID,
			BrandID:               resolved.BrandID,
			TimelineID:            resolved.TimelineID,
			CategoryID:            resolved.CategoryID,
			Story:                 request.Story,
			ImageURLs:             imageURLs,
			IsJudgementAllow:      *request.IsJudgementAllow,
			IsPriceJudgementAllow: *request.IsPriceJudgementAllow,
		}
		if err := s.archiveRepository.Create(ctx, tx, archive); err != nil {
			return fmt.Errorf("아카이브 생성 실패: %w", err)
		}
		archiveID = archive.ID
		return nil
	})
	if err != nil {
		return nil, sharedError.MaskUnexpected(err)
	}

	log.Info("아카이브 생성 완료", "archive_id", archiveID, "member_id", authorID)
	return &ArchiveIDResponse{ArchiveID: archiveID}, nil
}

// UpdateArchive replaces every editable field; the average price is left alone
func (s *ArchiveService) UpdateArchive(ctx context.Context, memberID, archiveID string, request *ArchiveRequest) (*ArchiveIDResponse, error) {
	log := logger.FromContext(ctx)

	if err := validatePermission(request); err != nil {
		return nil, err
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		archive, err := s.findOwnedArchive(ctx, tx, memberID, archiveID)
		if err != nil {
			return err
		}

		imageURLs, err := s.toImageURLs(memberID, request.Images, archive.ImageURLs)
		if err != nil {
			return err
		}

		resolved, err := s.lookupService.resolve(ctx, tx, request.Brand, request.Timeline, request.Category, ErrLookupNotFound)
		if err != nil {
			return err
		}

		return s.archiveRepository.Update(ctx, tx, archiveID, map[string]interface{}{
			"brand_id":                 resolved.BrandID,
			"timeline_id":              resolved.TimelineID,
			"category_id":              resolved.CategoryID,
			"story":                    request.Story,
			"image_urls":               imageURLs,
			"is_judgement_allow":       *request.IsJudgementAllow,
			"is_price_judgement_allow": *request.IsPriceJudgementAllow,
		})
	})
	if err != nil {
		log.Warn("아카이브 수정 실패", "archive_id", archiveID, "error", err)
		return nil, sharedError.MaskUnexpected(err)
	}

	log.Info("아카이브 수정 완료", "archive_id", archiveID)
	return &ArchiveIDResponse{ArchiveID: archiveID}, nil
}

// DeleteArchive soft-deletes; judgements and interests stay in place
func (s *ArchiveService) DeleteArchive(ctx context.Context, memberID, archiveID string) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.findOwnedArchive(ctx, tx, memberID, archiveID); err != nil {
			return err
		}
		return s.archiveRepository.SoftDelete(ctx, tx, archiveID)
	})
	if err != nil {
		return sharedError.MaskUnexpected(err)
	}

	logger.FromContext(ctx).Info("아카이브 삭제 완료", "archive_id", archiveID)
	return nil
}

func (s *ArchiveService) GetArchiveDetail(ctx context.Context, archiveID, viewerID string) (*ArchiveDetailResponse, error) {
	archive, err := s.archiveRepository.FindDetailByID(ctx, s.db, archiveID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("archiveID=%s: %w", archiveID, ErrArchiveNotFound)
		}
		return nil, fmt.Errorf("아카이브 조회 실패: %w", err)
	}

	counts, err := s.judgementRepository.CountByPolarity(ctx, s.db, archiveID)
	if err != nil {
		return nil, fmt.Errorf("판정 수 조회 실패: %w", err)
	}

	response := &ArchiveDetailResponse{
		ID: archive.ID,
		Author: AuthorResponse{
			ID:       archive.Author.ID,
			Nickname: archive.Author.Nickname,
			ImageURL: archive.Author.ImageURL,
		},
		Brand:                 archive.Brand.Name,
		Timeline:              archive.Timeline.Name,
		Category:              archive.Category.Name,
		Story:                 archive.Story,
		ImageURLs:             archive.ImageURLs,
		IsJudgementAllow:      archive.IsJudgementAllow,
		IsPriceJudgementAllow: archive.IsPriceJudgementAllow,
		AverageJudgementPrice: archive.AverageJudgementPrice,
		JudgementCounts:       counts,
		IsAuthor:              viewerID != "" && archive.IsAuthor(viewerID),
		CreatedAt:             archive.CreatedAt,
	}

	for _, isArchive := range []bool{true, false} {
		judgement, err := s.judgementRepository.FindLatestComment(ctx, s.db, archiveID, isArchive)
		if err != nil {
			return nil, fmt.Errorf("대표 코멘트 조회 실패: %w", err)
		}
		if judgement == nil {
			continue
		}
		comment := newCommentResponse(*judgement, viewerID)
		if isArchive {
			response.ArchiveComment = &comment
		} else {
			response.DeArchiveComment = &comment
		}
	}

	if viewerID == "" {
		return response, nil
	}

	mine, err := s.judgementRepository.FindByArchiveAndMember(ctx, s.db, archiveID, viewerID)
	switch {
	case err == nil:
		comment := newCommentResponse(*mine, viewerID)
		response.MyJudgement = &comment
	case !database.IsNotFound(err):
		return nil, fmt.Errorf("내 판정 조회 실패: %w", err)
	}

	response.IsInterested, err = s.interestRepository.IsActive(ctx, s.db, viewerID, archiveID)
	if err != nil {
		return nil, fmt.Errorf("관심 여부 조회 실패: %w", err)
	}

	return response, nil
}

func (s *ArchiveService) GetArchives(ctx context.Context, query ListQuery, page pagination.Page) (*pagination.Result[ArchiveSummary], error) {
	filter, err := s.lookupService.resolveFilter(ctx, query)
	if err != nil {
		return nil, err
	}

	archives, err := s.archiveRepository.FindPage(ctx, s.db, filter, page)
	if err != nil {
		return nil, fmt.Errorf("아카이브 목록 조회 실패: %w", err)
	}

	result := pagination.Map(page, archives, newArchiveSummary)
	return &result, nil
}

func (s *ArchiveService) GetMyArchives(ctx context.Context, memberID string, page pagination.Page) (*pagination.Result[ArchiveSummary], error) {
	archives, err := s.archiveRepository.FindPageByAuthor(ctx, s.db, memberID, page)
	if err != nil {
		return nil, fmt.Errorf("내 아카이브 목록 조회 실패: %w", err)
	}

	result := pagination.Map(page, archives, newArchiveSummary)
	return &result, nil
}

func (s *ArchiveService) GetInterestArchives(ctx context.Context, memberID string, page pagination.Page) (*pagination.Result[ArchiveSummary], error) {
	archives, err := s.archiveRepository.FindInterestPage(ctx, s.db, memberID, page)
	if err != nil {
		return nil, fmt.Errorf("관심 아카이브 목록 조회 실패: %w", err)
	}

	result := pagination.Map(page, archives, newArchiveSummary)
	return &result, nil
}

func (s *ArchiveService) GetComments(ctx context.Context, archiveID, viewerID string, isArchive *bool, page pagination.Page) (*pagination.Result[CommentResponse], error) {
	exists, err := s.archiveRepository.Exists(ctx, s.db, archiveID)
	if err != nil {
		return nil, fmt.Errorf("아카이브 조회 실패: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("archiveID=%s: %w", archiveID, ErrArchiveNotFound)
	}

	judgements, err := s.judgementRepository.FindCommentPage(ctx, s.db, archiveID, isArchive, page)
	if err != nil {
		return nil, fmt.Errorf("코멘트 목록 조회 실패: %w", err)
	}

	result := pagination.Map(page, judgements, func(j model.Judgement) CommentResponse {
		return newCommentResponse(j, viewerID)
	})
	return &result, nil
}

func (s *ArchiveService) findArchive(ctx context.Context, db *gorm.DB, archiveID string) (*model.Archive, error) {
	archive, err := s.archiveRepository.FindByID(ctx, db, archiveID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("archiveID=%s: %w", archiveID, ErrArchiveNotFound)
		}
		return nil, fmt.Errorf("아카이브 조회 실패: %w", err)
	}
	return archive, nil
}

func (s *ArchiveService) findOwnedArchive(ctx context.Context, db *gorm.DB, memberID, archiveID string) (*model.Archive, error) {
	archive, err := s.findArchive(ctx, db, archiveID)
	if err != nil {
		return nil, err
	}
	if !archive.IsAuthor(memberID) {
		return nil, fmt.Errorf("archiveID=%s memberID=%s: %w", archiveID, memberID, ErrArchiveForbidden)
	}
	return archive, nil
}

// toImageURLs converts object names issued to the author into public URLs.
// URLs already stored on the archive (current) pass through unchanged.
func (s *ArchiveService) toImageURLs(authorID string, images []string, current []string) (datatypes.JSONSlice[string], error) {
	urls := make(datatypes.JSONSlice[string], 0, len(images))
	for _, image := range images {
		if slices.Contains(current, image) {
			urls = append(urls, image)
			continue
		}
		if !storage.IsOwnedBy(image, storage.PrefixArchive, authorID) {
			return nil, fmt.Errorf("image=%q: %w", image, ErrInvalidObjectName)
		}
		urls = append(urls, s.storage.ObjectNameToPublicURL(image))
	}
	return urls, nil
}

func validatePermission(request *ArchiveRequest) error {
	if *request.IsPriceJudgementAllow && !*request.IsJudgementAllow {
		return fmt.Errorf("price judgement without judgement: %w", ErrInvalidJudgementPermission)
	}
	return nil
}
