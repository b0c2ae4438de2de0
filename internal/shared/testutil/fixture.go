package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/histolook/go-api-server/internal/model"
	"gorm.io/gorm"
)

// CreateMember inserts a kakao AuthUser and a USER member linked to it
func CreateMember(t *testing.T, db *gorm.DB, nickname string) *model.Member {
	t.Helper()

	authUser := model.NewAuthUser(model.ProviderKakao, uuid.NewString(), nil, nil, nil)
	if err := db.Create(authUser).Error; err != nil {
		t.Fatalf("Failed to create auth user: %v", err)
	}

	member := model.NewMember(authUser.ID, nickname, model.RoleUser, []string{"Nike"})
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("Failed to create member %s: %v", nickname, err)
	}
	return member
}

// CreateAdmin inserts an ADMIN member backed by a synthetic admin AuthUser
func CreateAdmin(t *testing.T, db *gorm.DB, nickname string) *model.Member {
	t.Helper()

	authUser := model.NewAuthUser(model.ProviderAdmin, uuid.NewString(), nil, nil, nil)
	if err := db.Create(authUser).Error; err != nil {
		t.Fatalf("Failed to create auth user: %v", err)
	}

	member := model.NewMember(authUser.ID, nickname, model.RoleAdmin, []string{"Nike", "Adidas", "Polo Ralph Lauren"})
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("Failed to create admin %s: %v", nickname, err)
	}
	return member
}

// ArchiveOption customizes CreateArchive
type ArchiveOption func(*model.Archive)

// WithJudgement sets both judgement permission flags
func WithJudgement(allow, allowPrice bool) ArchiveOption {
	return func(a *model.Archive) {
		a.IsJudgementAllow = allow
		a.IsPriceJudgementAllow = allowPrice
	}
}

// WithBrand classifies the archive under an existing brand name
func WithBrand(t *testing.T, db *gorm.DB, name string) ArchiveOption {
	t.Helper()

	var brand model.Brand
	if err := db.Where("name = ?", name).First(&brand).Error; err != nil {
		t.Fatalf("Failed to find brand %s: %v", name, err)
	}
	return func(a *model.Archive) {
		a.BrandID = brand.ID
	}
}

// CreateArchive inserts an archive under the first seeded brand/timeline/category,
// open to price judgement unless overridden
func CreateArchive(t *testing.T, db *gorm.DB, authorID string, opts ...ArchiveOption) *model.Archive {
	t.Helper()

	var (
		brand    model.Brand
		timeline model.Timeline
		category model.Category
	)
	if err := db.Order("id").First(&brand).Error; err != nil {
		t.Fatalf("Failed to load brand: %v", err)
	}
	if err := db.Order("id").First(&timeline).Error; err != nil {
		t.Fatalf("Failed to load timeline: %v", err)
	}
	if err := db.Order("id").First(&category).Error; err != nil {
		t.Fatalf("Failed to load category: %v", err)
	}

	archive := &model.Archive{
		AuthorID:              authorID,
		BrandID:               brand.ID,
		TimelineID:            timeline.ID,
		CategoryID:            category.ID,
		Story:                 "빈티지 자켓",
		ImageURLs:             []string{PublicBaseURL + "/archives/" + authorID + "/" + uuid.NewString()},
		IsJudgementAllow:      true,
		IsPriceJudgementAllow: true,
	}
	for _, opt := range opts {
		opt(archive)
	}

	if err := db.Create(archive).Error; err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	return archive
}
