package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
)

const DefaultTimeout = 30 * time.Second

// Timeout bounds the request context. Repositories pass the context to gorm,
// so a blown deadline surfaces as a query error; if the handler never wrote a
// response the client gets the generic retry-requested error.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		slog.Warn("Request deadline exceeded",
			"request_id", GetRequestID(c),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"timeout", timeout.String(),
			"status", c.Writer.Status(),
		)

		if !c.Writer.Written() {
			resp, _ := sharedError.ResolveDomainError(sharedError.ErrRetryRequested)
			c.AbortWithStatusJSON(resp.Status, resp)
		}
	}
}
