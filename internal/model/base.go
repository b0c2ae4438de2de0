package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORM이 CreatedAt, UpdatedAt을 자동으로 관리
type BaseEntity struct {
	CreatedAt time.Time `gorm:"column:created_at;not null;index"` // GORM이 자동 관리
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`       // GORM이 자동 관리
}

// UUIDEntity 는 UUID 문자열 기본키를 가진 엔티티가 임베드한다
type UUIDEntity struct {
	ID string `gorm:"column:id;type:varchar(36);primaryKey"`
}

// BeforeCreate ID가 비어있으면 UUID를 발급한다
func (e *UUIDEntity) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// BrandInterestDelimiter separates entries in the stored column; entries must not contain it
const BrandInterestDelimiter = ","

// BrandInterests 는 관심 브랜드 목록을 구분자 문자열로 저장한다 (예: "Nike,Adidas")
type BrandInterests []string

func (b BrandInterests) Value() (driver.Value, error) {
	return strings.Join(b, BrandInterestDelimiter), nil
}

func (b *BrandInterests) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*b = BrandInterests{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("brand interests: unsupported type %T", value)
	}

	if raw == "" {
		*b = BrandInterests{}
		return nil
	}
	*b = strings.Split(raw, BrandInterestDelimiter)
	return nil
}

// GormDataType stores the list as plain text on every dialect
func (BrandInterests) GormDataType() string {
	return "text"
}
