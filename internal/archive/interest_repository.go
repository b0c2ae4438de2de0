package archive

import (
	"context"

	"github.com/histolook/go-api-server/internal/model"
	"gorm.io/gorm"
)

type InterestRepository struct{}

func NewInterestRepository() *InterestRepository {
	return &InterestRepository{}
}

// FindActive returns the live interest row for (member, archive)
func (r *InterestRepository) FindActive(ctx context.Context, db *gorm.DB, memberID, archiveID string) (*model.ArchiveInterest, error) {
	var interest model.ArchiveInterest
	err := db.WithContext(ctx).
		Where("member_id = ? AND archive_id = ?", memberID, archiveID).
		First(&interest).Error
	if err != nil {
		return nil, err
	}
	return &interest, nil
}

func (r *InterestRepository) IsActive(ctx context.Context, db *gorm.DB, memberID, archiveID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.ArchiveInterest{}).
		Where("member_id = ? AND archive_id = ?", memberID, archiveID).
		Count(&count).Error
	return count > 0, err
}

func (r *InterestRepository) Create(ctx context.Context, db *gorm.DB, interest *model.ArchiveInterest) error {
	return db.WithContext(ctx).Create(interest).Error
}

func (r *InterestRepository) SoftDelete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.ArchiveInterest{}).Error
}

// HardDeleteByMemberID removes every interest row of the member, deleted ones included
func (r *InterestRepository) HardDeleteByMemberID(ctx context.Context, db *gorm.DB, memberID string) error {
	return db.WithContext(ctx).
		Unscoped().
		Where("member_id = ?", memberID).
		Delete(&model.ArchiveInterest{}).Error
}
