package auth

// MaxJoinBrandInterests bounds brandInterests at join; profile edits allow fewer
const MaxJoinBrandInterests = 10

// AdminKeyHeader carries the bootstrap key for admin join
const AdminKeyHeader = "X-Admin-Key"

// InitAuthRequest fields are checked by the service so each gap maps to its own error
type InitAuthRequest struct {
	Provider           string  `json:"provider"`
	ProviderID         string  `json:"providerId"`
	SocialAccessToken  string  `json:"socialAccessToken"`
	SocialRefreshToken string  `json:"socialRefreshToken"`
	Email              *string `json:"email" binding:"omitempty,email"`
}

type InitAuthResponse struct {
	AuthUserID string `json:"authUserId"`
}

type CallbackQuery struct {
	Code string `form:"code" binding:"required"`
}

// LoginResponse tokens are present only when isRegistered is true
type LoginResponse struct {
	IsRegistered bool   `json:"isRegistered"`
	AuthUserID   string `json:"authUserId"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type NicknameQuery struct {
	Nickname string `form:"nickname" binding:"required"`
}

type NicknameCheckResponse struct {
	IsDuplicated bool `json:"isDuplicated"`
}

type JoinRequest struct {
	AuthUserID     string   `json:"authUserId" binding:"required,uuid"`
	Nickname       string   `json:"nickname" binding:"required"`
	BrandInterests []string `json:"brandInterests"`
}

type JoinAdminRequest struct {
	Nickname string `json:"nickname" binding:"required,nickname"`
}

type JoinResponse struct {
	MemberID     string `json:"memberId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginRequest struct {
	Provider          string `json:"provider" binding:"required"`
	SocialAccessToken string `json:"socialAccessToken" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type SecessionRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=300"`
}

type AdminSecessionRequest struct {
	MemberID string `json:"memberId" binding:"required,uuid"`
	Nickname string `json:"nickname" binding:"required"`
}
