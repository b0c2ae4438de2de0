package support

import (
	"context"

	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

type SupportRepository struct{}

func NewSupportRepository() *SupportRepository {
	return &SupportRepository{}
}

func (r *SupportRepository) Create(ctx context.Context, db *gorm.DB, post *model.SupportPost) error {
	return db.WithContext(ctx).Create(post).Error
}

func (r *SupportRepository) FindByID(ctx context.Context, db *gorm.DB, id uint32) (*model.SupportPost, error) {
	var post model.SupportPost
	err := db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *SupportRepository) FindPageByMemberID(ctx context.Context, db *gorm.DB, memberID string, page pagination.Page) ([]model.SupportPost, error) {
	var posts []model.SupportPost
	err := db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.FetchLimit()).
		Find(&posts).Error
	return posts, err
}

// FindPage lists every member's tickets, newest first
func (r *SupportRepository) FindPage(ctx context.Context, db *gorm.DB, page pagination.Page) ([]model.SupportPost, error) {
	var posts []model.SupportPost
	err := db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.FetchLimit()).
		Find(&posts).Error
	return posts, err
}

func (r *SupportRepository) SaveReply(ctx context.Context, db *gorm.DB, post *model.SupportPost) error {
	return db.WithContext(ctx).
		Model(&model.SupportPost{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"reply":  post.Reply,
			"status": post.Status,
		}).Error
}

func (r *SupportRepository) Delete(ctx context.Context, db *gorm.DB, id uint32) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.SupportPost{}).Error
}
