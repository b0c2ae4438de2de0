package model

// Judgement 회원 한 명이 아카이브 하나에 내린 판정 (아카이브 / 디아카이브)
// (archive_id, member_id) 유니크 인덱스로 회원당 한 번만 판정할 수 있다
type Judgement struct {
	UUIDEntity

	ArchiveID string  `gorm:"column:archive_id;type:varchar(36);not null;uniqueIndex:idx_judgement_archive_member"`
	MemberID  string  `gorm:"column:member_id;type:varchar(36);not null;uniqueIndex:idx_judgement_archive_member;index"`
	IsArchive bool    `gorm:"column:is_archive;not null"`
	Comment   *string `gorm:"column:comment;type:varchar(300)"`
	Price     *int    `gorm:"column:price"`

	Member Member `gorm:"foreignKey:MemberID"`

	BaseEntity
}

func (*Judgement) TableName() string {
	return "judgement"
}
