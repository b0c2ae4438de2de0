package member

import (
	"github.com/histolook/go-api-server/internal/model"
)

const (
	// MaxProfileBrandInterests bounds brand interests edited from the profile
	MaxProfileBrandInterests = 3
)

type ProfileResponse struct {
	ID             string   `json:"id"`
	Nickname       string   `json:"nickname"`
	Role           string   `json:"role"`
	ImageURL       *string  `json:"imageUrl"`
	BrandInterests []string `json:"brandInterests"`
	Provider       string   `json:"provider,omitempty"`
}

func newProfileResponse(member *model.Member, provider string) *ProfileResponse {
	brandInterests := []string(member.BrandInterests)
	if brandInterests == nil {
		brandInterests = []string{}
	}
	return &ProfileResponse{
		ID:             member.ID,
		Nickname:       member.Nickname,
		Role:           string(member.Role),
		ImageURL:       member.ImageURL,
		BrandInterests: brandInterests,
		Provider:       provider,
	}
}

// UpdateProfileRequest nil fields are left unchanged
type UpdateProfileRequest struct {
	Nickname       *string  `json:"nickname"`
	BrandInterests []string `json:"brandInterests"`
}

type ProfileImageUploadURLResponse struct {
	URL        string `json:"url"`
	ObjectName string `json:"objectName"`
}

type UpdateProfileImageRequest struct {
	ObjectName string `json:"objectName" binding:"required"`
}

type ProfileImageResponse struct {
	ImageURL string `json:"imageUrl"`
}
