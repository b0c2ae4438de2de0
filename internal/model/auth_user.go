package model

// Provider 외부 인증 제공자
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderKakao  Provider = "kakao"
	ProviderApple  Provider = "apple"
	ProviderAdmin  Provider = "admin"
)

// IsSocial reports whether the provider is a real OAuth provider (admin is synthetic)
func (p Provider) IsSocial() bool {
	switch p {
	case ProviderGoogle, ProviderKakao, ProviderApple:
		return true
	default:
		return false
	}
}

// AuthUser 외부 제공자 계정. 회원 탈퇴 시 동일 계정 재가입을 위해 하드 삭제된다
type AuthUser struct {
	UUIDEntity

	Provider          Provider `gorm:"column:provider;type:varchar(20);not null;uniqueIndex:idx_auth_user_provider_id"`
	ProviderID        string   `gorm:"column:provider_id;type:varchar(255);not null;uniqueIndex:idx_auth_user_provider_id"`
	Email             *string  `gorm:"column:email;type:varchar(255)"`
	OAuthAccessToken  *string  `gorm:"column:oauth_access_token;type:text"`
	OAuthRefreshToken *string  `gorm:"column:oauth_refresh_token;type:text"`

	BaseEntity
}

func (*AuthUser) TableName() string {
	return "auth_user"
}

func NewAuthUser(provider Provider, providerID string, email, accessToken, refreshToken *string) *AuthUser {
	return &AuthUser{
		Provider:          provider,
		ProviderID:        providerID,
		Email:             email,
		OAuthAccessToken:  accessToken,
		OAuthRefreshToken: refreshToken,
	}
}
