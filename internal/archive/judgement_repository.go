package archive

import (
	"context"

	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

type JudgementRepository struct{}

func NewJudgementRepository() *JudgementRepository {
	return &JudgementRepository{}
}

func (r *JudgementRepository) Create(ctx context.Context, db *gorm.DB, judgement *model.Judgement) error {
	return db.WithContext(ctx).Create(judgement).Error
}

func (r *JudgementRepository) Exists(ctx context.Context, db *gorm.DB, archiveID, memberID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Judgement{}).
		Where("archive_id = ? AND member_id = ?", archiveID, memberID).
		Count(&count).Error
	return count > 0, err
}

// FindPrices returns every non-null price for the archive
func (r *JudgementRepository) FindPrices(ctx context.Context, db *gorm.DB, archiveID string) ([]int, error) {
	var prices []int
	err := db.WithContext(ctx).
		Model(&model.Judgement{}).
		Where("archive_id = ? AND price IS NOT NULL", archiveID).
		Pluck("price", &prices).Error
	return prices, err
}

func (r *JudgementRepository) FindByArchiveAndMember(ctx context.Context, db *gorm.DB, archiveID, memberID string) (*model.Judgement, error) {
	var judgement model.Judgement
	err := withJudge(db.WithContext(ctx)).
		Where("archive_id = ? AND member_id = ?", archiveID, memberID).
		First(&judgement).Error
	if err != nil {
		return nil, err
	}
	return &judgement, nil
}

// FindLatestComment returns the newest judgement of the given polarity that has a comment
func (r *JudgementRepository) FindLatestComment(ctx context.Context, db *gorm.DB, archiveID string, isArchive bool) (*model.Judgement, error) {
	var judgements []model.Judgement
	err := withJudge(db.WithContext(ctx)).
		Where("archive_id = ? AND is_archive = ? AND comment IS NOT NULL", archiveID, isArchive).
		Order("created_at DESC").
		Order("id DESC").
		Limit(1).
		Find(&judgements).Error
	if err != nil || len(judgements) == 0 {
		return nil, err
	}
	return &judgements[0], nil
}

// CountByPolarity returns (archive, de-archive) judgement counts
func (r *JudgementRepository) CountByPolarity(ctx context.Context, db *gorm.DB, archiveID string) (JudgementCounts, error) {
	var rows []struct {
		IsArchive bool
		Count     int64
	}
	err := db.WithContext(ctx).
		Model(&model.Judgement{}).
		Select("is_archive, COUNT(*) AS count").
		Where("archive_id = ?", archiveID).
		Group("is_archive").
		Scan(&rows).Error
	if err != nil {
		return JudgementCounts{}, err
	}

	var counts JudgementCounts
	for _, row := range rows {
		if row.IsArchive {
			counts.Archive = row.Count
		} else {
			counts.DeArchive = row.Count
		}
	}
	return counts, nil
}

// FindCommentPage lists commented judgements, newest first; isArchive nil means both polarities
func (r *JudgementRepository) FindCommentPage(ctx context.Context, db *gorm.DB, archiveID string, isArchive *bool, page pagination.Page) ([]model.Judgement, error) {
	query := withJudge(db.WithContext(ctx)).
		Where("archive_id = ? AND comment IS NOT NULL", archiveID)
	if isArchive != nil {
		query = query.Where("is_archive = ?", *isArchive)
	}

	var judgements []model.Judgement
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.FetchLimit()).
		Find(&judgements).Error
	return judgements, err
}

// withJudge preloads the judging member, including seceded members
func withJudge(db *gorm.DB) *gorm.DB {
	return db.Preload("Member", func(tx *gorm.DB) *gorm.DB {
		return tx.Unscoped()
	})
}
