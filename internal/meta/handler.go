package meta

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/histolook/go-api-server/internal/config"
	"github.com/histolook/go-api-server/internal/shared/cache"
	"github.com/histolook/go-api-server/internal/shared/database"
)

// Handler handles meta endpoints (health check, app version, legal documents, etc.)
type Handler struct {
	cfg   *config.Config
	db    *database.DB
	cache *cache.Cache
}

// NewHandler creates a new meta handler
func NewHandler(cfg *config.Config, db *database.DB, lookupCache *cache.Cache) *Handler {
	return &Handler{
		cfg:   cfg,
		db:    db,
		cache: lookupCache,
	}
}

// Health checks service and database health.
// The cache is reported but never fails the check: lookups fall back to the database.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Check database connectivity
	dbStatus := "up"
	var dbError string
	start := time.Now()

	if err := h.db.HealthCheck(ctx); err != nil {
		dbStatus = "down"
		dbError = err.Error()
		slog.Error("Health check 실패", "error", err)

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"service": gin.H{
				"name":        h.cfg.App.Name,
				"environment": h.cfg.App.Env,
			},
			"checks": gin.H{
				"database": gin.H{
					"status": dbStatus,
					"error":  dbError,
				},
			},
		})
		return
	}

	dbLatency := time.Since(start).Milliseconds()

	// All checks passed
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"service": gin.H{
			"name":        h.cfg.App.Name,
			"environment": h.cfg.App.Env,
			"port":        h.cfg.App.Port,
		},
		"checks": gin.H{
			"database": gin.H{
				"status":     dbStatus,
				"latency_ms": dbLatency,
			},
			"cache": h.cacheStatus(ctx),
		},
	})
}

func (h *Handler) cacheStatus(ctx context.Context) gin.H {
	if !h.cache.IsAvailable() {
		return gin.H{"status": "disabled"}
	}
	if err := h.cache.Ping(ctx); err != nil {
		slog.Warn("캐시 Health check 실패", "error", err)
		return gin.H{"status": "down", "error": err.Error()}
	}
	return gin.H{"status": "up"}
}
