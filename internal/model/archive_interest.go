package model

import (
	"gorm.io/gorm"
)

// ArchiveInterest 회원의 아카이브 관심(즐겨찾기) 등록
// 삭제 후 재등록하면 새 행이 생성된다. 활성 행은 (member_id, archive_id) 당 하나
type ArchiveInterest struct {
	UUIDEntity

	MemberID  string         `gorm:"column:member_id;type:varchar(36);not null;uniqueIndex:idx_archive_interest_active,where:deleted_at IS NULL"`
	ArchiveID string         `gorm:"column:archive_id;type:varchar(36);not null;uniqueIndex:idx_archive_interest_active,where:deleted_at IS NULL;index"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	BaseEntity
}

func (*ArchiveInterest) TableName() string {
	return "archive_interest"
}
