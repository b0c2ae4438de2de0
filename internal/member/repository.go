package member

import (
	"context"

	"github.com/histolook/go-api-server/internal/model"
	"gorm.io/gorm"
)

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

// IsNicknameTaken checks live members only; excludeID skips the caller's own row
func (m *MemberRepository) IsNicknameTaken(ctx context.Context, db *gorm.DB, nickname, excludeID string) (bool, error) {
	var count int64
	query := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("nickname = ?", nickname)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Create(member).Error
}

func (m *MemberRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByAuthUserID returns the live member attached to an AuthUser
func (m *MemberRepository) FindByAuthUserID(ctx context.Context, db *gorm.DB, authUserID string) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("auth_user_id = ?", authUserID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FindProvider returns the provider of the linked AuthUser, "" when unlinked
func (m *MemberRepository) FindProvider(ctx context.Context, db *gorm.DB, authUserID *string) (string, error) {
	if authUserID == nil {
		return "", nil
	}

	var providers []string
	err := db.WithContext(ctx).
		Model(&model.AuthUser{}).
		Where("id = ?", *authUserID).
		Limit(1).
		Pluck("provider", &providers).Error
	if err != nil || len(providers) == 0 {
		return "", err
	}
	return providers[0], nil
}

// Update writes the given columns; nil values are stored as NULL
func (m *MemberRepository) Update(ctx context.Context, db *gorm.DB, id string, columns map[string]interface{}) error {
	return db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ?", id).
		Updates(columns).Error
}

// Withdraw soft-deletes the member, recording the reason and unlinking the AuthUser
func (m *MemberRepository) Withdraw(ctx context.Context, db *gorm.DB, id string, reason *string) error {
	return db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at":       db.NowFunc(),
			"secession_reason": reason,
			"auth_user_id":     nil,
		}).Error
}
