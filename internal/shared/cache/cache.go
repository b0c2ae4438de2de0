package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/histolook/go-api-server/internal/config"
	"github.com/redis/go-redis/v9"
)

// TTL 상수 정의
const (
	TTLLookup = 30 * time.Minute // 브랜드/시대/카테고리 (변경 빈도 낮음)
)

// 캐시 키 접두사
const (
	PrefixLookup = "histolook:lookup:"
)

// ErrMiss is returned by Get when the key is absent or caching is disabled
var ErrMiss = errors.New("cache: miss")

// Cache Redis 기반 JSON 캐시. client 가 nil 이면 모든 조회는 miss, 쓰기는 무시된다
type Cache struct {
	client *redis.Client
}

// New returns a Cache; an empty address disables caching
func New(cfg config.RedisConfig) *Cache {
	if cfg.Addr == "" {
		slog.Info("Redis 주소 미설정 - 캐시 비활성화")
		return &Cache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	slog.Info("Redis 캐시 초기화", "addr", cfg.Addr, "db", cfg.DB)
	return &Cache{client: client}
}

// NewWithClient wraps an existing client (nil disables caching)
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// IsAvailable Redis 연결 가능 여부
func (c *Cache) IsAvailable() bool {
	return c != nil && c.client != nil
}

// Ping Redis 연결 테스트
func (c *Cache) Ping(ctx context.Context) error {
	if !c.IsAvailable() {
		return fmt.Errorf("redis not configured")
	}
	return c.client.Ping(ctx).Err()
}

// Get 캐시에서 값 조회
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if !c.IsAvailable() {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set 캐시에 값 저장
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.IsAvailable() {
		return nil // Redis 없으면 무시
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Close releases the redis connection pool
func (c *Cache) Close() error {
	if !c.IsAvailable() {
		return nil
	}
	return c.client.Close()
}

// LookupKey 조회 테이블 캐시 키 (예: histolook:lookup:brand)
func LookupKey(kind string) string {
	return PrefixLookup + kind
}
