package auth

import (
	"context"

	"github.com/histolook/go-api-server/internal/model"
	"gorm.io/gorm"
)

type AuthUserRepository struct{}

func NewAuthUserRepository() *AuthUserRepository {
	return &AuthUserRepository{}
}

func (r *AuthUserRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*model.AuthUser, error) {
	var authUser model.AuthUser
	err := db.WithContext(ctx).Where("id = ?", id).First(&authUser).Error
	if err != nil {
		return nil, err
	}
	return &authUser, nil
}

func (r *AuthUserRepository) FindByProviderID(ctx context.Context, db *gorm.DB, provider model.Provider, providerID string) (*model.AuthUser, error) {
	var authUser model.AuthUser
	err := db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&authUser).Error
	if err != nil {
		return nil, err
	}
	return &authUser, nil
}

func (r *AuthUserRepository) Create(ctx context.Context, db *gorm.DB, authUser *model.AuthUser) error {
	return db.WithContext(ctx).Create(authUser).Error
}

// UpdateTokens stores the latest provider tokens; a nil email keeps the stored one
func (r *AuthUserRepository) UpdateTokens(ctx context.Context, db *gorm.DB, id string, accessToken, refreshToken, email *string) error {
	columns := map[string]interface{}{
		"oauth_access_token":  accessToken,
		"oauth_refresh_token": refreshToken,
	}
	if email != nil {
		columns["email"] = *email
	}
	return db.WithContext(ctx).
		Model(&model.AuthUser{}).
		Where("id = ?", id).
		Updates(columns).Error
}

// Delete is a hard delete so the same provider identity can register again
func (r *AuthUserRepository) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.AuthUser{}).Error
}
