package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Archive 회원이 등록한 패션 아이템 게시물
type Archive struct {
	UUIDEntity

	AuthorID              string                      `gorm:"column:author_id;type:varchar(36);not null;index"`
	BrandID               uint32                      `gorm:"column:brand_id;not null;index"`
	TimelineID            uint32                      `gorm:"column:timeline_id;not null;index"`
	CategoryID            uint32                      `gorm:"column:category_id;not null;index"`
	Story                 string                      `gorm:"column:story;type:text;not null"`
	ImageURLs             datatypes.JSONSlice[string] `gorm:"column:image_urls;not null"`
	IsJudgementAllow      bool                        `gorm:"column:is_judgement_allow;not null"`
	IsPriceJudgementAllow bool                        `gorm:"column:is_price_judgement_allow;not null"`
	AverageJudgementPrice *int                        `gorm:"column:average_judgement_price"` // 판정 가격 평균 (파생값)
	DeletedAt             gorm.DeletedAt              `gorm:"column:deleted_at;index"`

	Author   Member   `gorm:"foreignKey:AuthorID"`
	Brand    Brand    `gorm:"foreignKey:BrandID"`
	Timeline Timeline `gorm:"foreignKey:TimelineID"`
	Category Category `gorm:"foreignKey:CategoryID"`

	BaseEntity
}

func (*Archive) TableName() string {
	return "archive"
}

func (a *Archive) IsAuthor(memberID string) bool {
	return a.AuthorID == memberID
}
