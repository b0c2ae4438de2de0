package meta_test

import (
	"net/http"
	"testing"

	"github.com/histolook/go-api-server/internal/meta"
	"github.com/histolook/go-api-server/internal/shared/cache"
	"github.com/histolook/go-api-server/internal/shared/database"
	"github.com/histolook/go-api-server/internal/shared/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type healthResponse struct {
	Status string `json:"status"`
	Checks struct {
		Database struct {
			Status string `json:"status"`
		} `json:"database"`
		Cache struct {
			Status string `json:"status"`
		} `json:"cache"`
	} `json:"checks"`
}

func checkHealth(t *testing.T, db *database.DB, lookupCache *cache.Cache) (int, healthResponse) {
	t.Helper()

	handler := meta.NewHandler(testutil.NewTestConfig(), db, lookupCache)
	router := testutil.SetupTestRouter()
	router.GET("/health", handler.Health)

	w := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

	var resp healthResponse
	testutil.ParseResponse(t, w, &resp)
	return w.Code, resp
}

func TestHealth_Healthy(t *testing.T) {
	// Given: a working database and no redis configured
	db := &database.DB{DB: testutil.SetupTestDB(t)}

	// When
	status, resp := checkHealth(t, db, cache.NewWithClient(nil))

	// Then
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "up", resp.Checks.Database.Status)
	assert.Equal(t, "disabled", resp.Checks.Cache.Status)
}

func TestHealth_CacheDownIsNotFatal(t *testing.T) {
	// Given: redis pointed at a closed port
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	lookupCache := cache.NewWithClient(client)
	t.Cleanup(func() { _ = lookupCache.Close() })
	db := &database.DB{DB: testutil.SetupTestDB(t)}

	// When
	status, resp := checkHealth(t, db, lookupCache)

	// Then
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "down", resp.Checks.Cache.Status)
}

func TestHealth_DatabaseDown(t *testing.T) {
	// Given: a database whose pool is already closed
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// When
	status, resp := checkHealth(t, &database.DB{DB: gormDB}, cache.NewWithClient(nil))

	// Then
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "down", resp.Checks.Database.Status)
}
