package database

import (
	"fmt"
	"log/slog"

	"github.com/histolook/go-api-server/internal/config"
	"github.com/histolook/go-api-server/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed values for the lookup tables
var (
	DefaultBrands = []string{
		"Nike", "Adidas", "Polo Ralph Lauren", "Levi's", "Carhartt",
		"Stussy", "Supreme", "The North Face", "Patagonia", "Comme des Garcons",
	}
	DefaultTimelines = []string{
		"~1950s", "1960s", "1970s", "1980s", "1990s", "2000s", "2010s", "2020s",
	}
	DefaultCategories = []string{
		"Outer", "Top", "Bottom", "Shoes", "Bag", "Accessory", "Etc",
	}
)

// Migrate executes database migration based on configuration
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("⏭️  데이터베이스 마이그레이션 비활성화됨",
			"auto_migrate", false, "env", cfg.App.Env,
		)
		return nil
	}

	slog.Warn("🔧 데이터베이스 마이그레이션 시작 - 모든 테이블이 삭제되고 재생성됩니다!",
		"auto_migrate", true, "env", cfg.App.Env,
	)

	// Safety check: prevent accidental data loss in production
	if cfg.IsProduction() {
		return fmt.Errorf("🚨 PRODUCTION 환경에서는 DB_AUTO_MIGRATE=true를 사용할 수 없습니다! 데이터 손실 방지를 위해 차단됨")
	}

	slog.Info("🗑️  기존 테이블 삭제 중...")
	models := model.All()

	// FK 역순으로 삭제
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			slog.Debug("테이블 삭제 실패", "model", fmt.Sprintf("%T", models[i]), "error", err)
		}
	}

	slog.Info("📦 새 테이블 생성 중...")
	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("테이블 생성 실패: %w", err)
	}

	if err := SeedLookups(db); err != nil {
		return fmt.Errorf("기본 데이터 생성 실패: %w", err)
	}

	slog.Info("✅ 마이그레이션 완료!")
	return nil
}

// AutoMigrate creates tables based on model definitions, in dependency order
func AutoMigrate(db *gorm.DB) error {
	for _, m := range model.All() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("%T 마이그레이션 실패: %w", m, err)
		}
		slog.Debug("테이블 생성됨", "model", fmt.Sprintf("%T", m))
	}
	return nil
}

// SeedLookups inserts brand/timeline/category rows, skipping names that already exist
func SeedLookups(db *gorm.DB) error {
	brands := make([]model.Brand, 0, len(DefaultBrands))
	for _, name := range DefaultBrands {
		brands = append(brands, model.Brand{Name: name})
	}
	timelines := make([]model.Timeline, 0, len(DefaultTimelines))
	for _, name := range DefaultTimelines {
		timelines = append(timelines, model.Timeline{Name: name})
	}
	categories := make([]model.Category, 0, len(DefaultCategories))
	for _, name := range DefaultCategories {
		categories = append(categories, model.Category{Name: name})
	}

	// Session: each Create needs its own statement (and table)
	ignoreExisting := db.Clauses(clause.OnConflict{DoNothing: true}).Session(&gorm.Session{})
	if err := ignoreExisting.Create(&brands).Error; err != nil {
		return fmt.Errorf("brand: %w", err)
	}
	if err := ignoreExisting.Create(&timelines).Error; err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	if err := ignoreExisting.Create(&categories).Error; err != nil {
		return fmt.Errorf("category: %w", err)
	}

	slog.Debug("조회 테이블 기본 데이터 생성",
		"brands", len(brands), "timelines", len(timelines), "categories", len(categories))
	return nil
}
