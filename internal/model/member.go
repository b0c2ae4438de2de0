package model

import (
	"gorm.io/gorm"
)

// Role 회원 권한
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Member 서비스 회원
// 닉네임은 탈퇴하지 않은 회원 사이에서만 유일하다 (partial unique index)
type Member struct {
	UUIDEntity

	Nickname        string         `gorm:"column:nickname;type:varchar(10);not null;uniqueIndex:idx_member_nickname_active,where:deleted_at IS NULL"`
	Role            Role           `gorm:"column:role;type:varchar(10);not null;default:USER"`
	ImageURL        *string        `gorm:"column:image_url;type:text"`
	BrandInterests  BrandInterests `gorm:"column:brand_interests;not null"`
	AuthUserID      *string        `gorm:"column:auth_user_id;type:varchar(36);index"`
	SecessionReason *string        `gorm:"column:secession_reason;type:text"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`

	BaseEntity
}

// TableName specifies the table name for Member
func (*Member) TableName() string {
	return "member"
}

// NewMember creates a member linked to an AuthUser
func NewMember(authUserID, nickname string, role Role, brandInterests []string) *Member {
	return &Member{
		Nickname:       nickname,
		Role:           role,
		BrandInterests: brandInterests,
		AuthUserID:     &authUserID,
	}
}

func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}
