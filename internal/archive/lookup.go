package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/histolook/go-api-server/internal/shared/cache"
	"github.com/histolook/go-api-server/internal/shared/logger"
	"gorm.io/gorm"
)

// LookupKind names a classification table
type LookupKind string

const (
	LookupBrand    LookupKind = "brand"
	LookupTimeline LookupKind = "timeline"
	LookupCategory LookupKind = "category"
)

type LookupItem struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

type LookupRepository struct{}

func NewLookupRepository() *LookupRepository {
	return &LookupRepository{}
}

func (r *LookupRepository) FindAll(ctx context.Context, db *gorm.DB, kind LookupKind) ([]LookupItem, error) {
	var items []LookupItem
	err := db.WithContext(ctx).
		Table(string(kind)).
		Select("id", "name").
		Order("id").
		Scan(&items).Error
	return items, err
}

// FindIDByName returns gorm.ErrRecordNotFound for unknown names
func (r *LookupRepository) FindIDByName(ctx context.Context, db *gorm.DB, kind LookupKind, name string) (uint32, error) {
	var ids []uint32
	err := db.WithContext(ctx).
		Table(string(kind)).
		Where("name = ?", name).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return ids[0], nil
}

// LookupService serves the classification lists, cached in Redis when configured
type LookupService struct {
	db               *gorm.DB
	lookupRepository *LookupRepository
	cache            *cache.Cache
}

func NewLookupService(db *gorm.DB, lookupRepository *LookupRepository, lookupCache *cache.Cache) *LookupService {
	return &LookupService{
		db:               db,
		lookupRepository: lookupRepository,
		cache:            lookupCache,
	}
}

func (s *LookupService) List(ctx context.Context, kind LookupKind) ([]LookupItem, error) {
	log := logger.FromContext(ctx)
	key := cache.LookupKey(string(kind))

	var items []LookupItem
	err := s.cache.Get(ctx, key, &items)
	if err == nil {
		return items, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Warn("조회 테이블 캐시 읽기 실패", "kind", kind, "error", err)
	}

	items, err = s.lookupRepository.FindAll(ctx, s.db, kind)
	if err != nil {
		return nil, fmt.Errorf("%s 목록 조회 실패: %w", kind, err)
	}
	if items == nil {
		items = []LookupItem{}
	}

	if err := s.cache.Set(ctx, key, items, cache.TTLLookup); err != nil {
		log.Warn("조회 테이블 캐시 저장 실패", "kind", kind, "error", err)
	}
	return items, nil
}

type classification struct {
	BrandID    uint32
	TimelineID uint32
	CategoryID uint32
}

// resolve maps brand/timeline/category names to ids, failing with notFound
// (wrapped) for the first unknown name
func (s *LookupService) resolve(ctx context.Context, db *gorm.DB, brand, timeline, category string, notFound error) (classification, error) {
	var result classification
	targets := []struct {
		kind LookupKind
		name string
		dest *uint32
	}{
		{LookupBrand, brand, &result.BrandID},
		{LookupTimeline, timeline, &result.TimelineID},
		{LookupCategory, category, &result.CategoryID},
	}

	for _, target := range targets {
		id, err := s.lookupRepository.FindIDByName(ctx, db, target.kind, target.name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return classification{}, fmt.Errorf("%s=%q: %w", target.kind, target.name, notFound)
			}
			return classification{}, fmt.Errorf("%s 조회 실패: %w", target.kind, err)
		}
		*target.dest = id
	}
	return result, nil
}

// resolveFilter resolves only the names that were given; 0 means unfiltered
func (s *LookupService) resolveFilter(ctx context.Context, query ListQuery) (ArchiveFilter, error) {
	var filter ArchiveFilter
	targets := []struct {
		kind LookupKind
		name string
		dest *uint32
	}{
		{LookupBrand, query.Brand, &filter.BrandID},
		{LookupTimeline, query.Timeline, &filter.TimelineID},
		{LookupCategory, query.Category, &filter.CategoryID},
	}

	for _, target := range targets {
		if target.name == "" {
			continue
		}
		id, err := s.lookupRepository.FindIDByName(ctx, s.db, target.kind, target.name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ArchiveFilter{}, fmt.Errorf("%s=%q: %w", target.kind, target.name, ErrInvalidFilter)
			}
			return ArchiveFilter{}, fmt.Errorf("%s 조회 실패: %w", target.kind, err)
		}
		*target.dest = id
	}
	return filter, nil
}
