package archive

import (
	"context"

	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

// ArchiveFilter zero ids are not filtered on
type ArchiveFilter struct {
	BrandID    uint32
	TimelineID uint32
	CategoryID uint32
}

type ArchiveRepository struct{}

func NewArchiveRepository() *ArchiveRepository {
	return &ArchiveRepository{}
}

func (r *ArchiveRepository) Create(ctx context.Context, db *gorm.DB, archive *model.Archive) error {
	return db.WithContext(ctx).Create(archive).Error
}

// FindByID returns a non-deleted archive without associations
func (r *ArchiveRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*model.Archive, error) {
	var archive model.Archive
	err := db.WithContext(ctx).Where("id = ?", id).First(&archive).Error
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

// FindDetailByID loads classification names and the author, including seceded authors
func (r *ArchiveRepository) FindDetailByID(ctx context.Context, db *gorm.DB, id string) (*model.Archive, error) {
	var archive model.Archive
	err := withClassification(db.WithContext(ctx)).
		Preload("Author", func(tx *gorm.DB) *gorm.DB {
			return tx.Unscoped()
		}).
		Where("id = ?", id).
		First(&archive).Error
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

func (r *ArchiveRepository) Exists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Archive{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update writes the given columns of a live archive
func (r *ArchiveRepository) Update(ctx context.Context, db *gorm.DB, id string, columns map[string]interface{}) error {
	return db.WithContext(ctx).
		Model(&model.Archive{}).
		Where("id = ?", id).
		Updates(columns).Error
}

func (r *ArchiveRepository) UpdateAverageJudgementPrice(ctx context.Context, db *gorm.DB, id string, average *int) error {
	return db.WithContext(ctx).
		Model(&model.Archive{}).
		Where("id = ?", id).
		Update("average_judgement_price", average).Error
}

func (r *ArchiveRepository) SoftDelete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.Archive{}).Error
}

func (r *ArchiveRepository) FindPage(ctx context.Context, db *gorm.DB, filter ArchiveFilter, page pagination.Page) ([]model.Archive, error) {
	query := withClassification(db.WithContext(ctx))
	if filter.BrandID != 0 {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.TimelineID != 0 {
		query = query.Where("timeline_id = ?", filter.TimelineID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	var archives []model.Archive
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.FetchLimit()).
		Find(&archives).Error
	return archives, err
}

func (r *ArchiveRepository) FindPageByAuthor(ctx context.Context, db *gorm.DB, authorID string, page pagination.Page) ([]model.Archive, error) {
	var archives []model.Archive
	err := withClassification(db.WithContext(ctx)).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.FetchLimit()).
		Find(&archives).Error
	return archives, err
}

// FindInterestPage lists live archives the member has an active interest in,
// most recently bookmarked first
func (r *ArchiveRepository) FindInterestPage(ctx context.Context, db *gorm.DB, memberID string, page pagination.Page) ([]model.Archive, error) {
	var archives []model.Archive
	err := withClassification(db.WithContext(ctx)).
		Select("archive.*").
		Joins("JOIN archive_interest ON archive_interest.archive_id = archive.id "+
			"AND archive_interest.deleted_at IS NULL AND archive_interest.member_id = ?", memberID).
		Order("archive_interest.created_at DESC").
		Order("archive_interest.id DESC").
		Offset(page.Offset()).
		Limit(page.FetchLimit()).
		Find(&archives).Error
	return archives, err
}

func withClassification(db *gorm.DB) *gorm.DB {
	return db.Preload("Brand").Preload("Timeline").Preload("Category")
}
