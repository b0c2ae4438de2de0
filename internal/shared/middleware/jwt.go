package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/histolook/go-api-server/internal/shared/context"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/token"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
	roleAdmin           = "ADMIN"
)

// JWT error constants (errInfo)
const (
	missingToken  = "MISSING_TOKEN"
	invalidToken  = "INVALID_TOKEN"
	expiredToken  = "EXPIRED_TOKEN"
	invalidClaims = "INVALID_CLAIMS"
)

// Domain errors
var (
	ErrMissingToken  = sharedError.NewDomainError(missingToken)
	ErrInvalidToken  = sharedError.NewDomainError(invalidToken)
	ErrExpiredToken  = sharedError.NewDomainError(expiredToken)
	ErrInvalidClaims = sharedError.NewDomainError(invalidClaims)
)

// Register JWT error responses
func init() {
	sharedError.RegisterDomainErrorResponse(missingToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "로그인을 해주세요.",
	})

	sharedError.RegisterDomainErrorResponse(invalidToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "로그인을 해주세요.",
	})

	sharedError.RegisterDomainErrorResponse(expiredToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-001",
		Message: "로그인이 만료되었습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidClaims, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "로그인을 해주세요.",
	})
}

// JWT rejects requests without a valid access token
func JWT(tokenManager token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 요청 정보 (로깅용)
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path

		// Step 1: 토큰 추출
		tokenString, err := extractToken(c)
		if err != nil {
			slog.Warn("JWT 토큰 추출 실패",
				"step", "extract_token",
				"error", err.Error(),
				"client_ip", clientIP,
				"method", method,
				"path", path,
			)
			handleJWTError(c, err)
			return
		}

		// Step 2: 토큰 검증
		claims, err := validateAccessToken(tokenManager, tokenString)
		if err != nil {
			slog.Warn("JWT 토큰 검증 실패",
				"step", "validate_token",
				"error", err.Error(),
				"client_ip", clientIP,
				"method", method,
				"path", path,
			)
			handleJWTError(c, err)
			return
		}

		// 인증 성공 - Context에 사용자 정보 저장
		setPrincipal(c, claims)
		c.Next()
	}
}

// OptionalJWT stores the principal when a valid access token is present and
// otherwise lets the request through anonymously
func OptionalJWT(tokenManager token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c)
		if err != nil {
			c.Next()
			return
		}

		claims, err := validateAccessToken(tokenManager, tokenString)
		if err != nil {
			slog.Debug("선택적 JWT 검증 실패 - 비로그인으로 처리", "error", err.Error(), "path", c.Request.URL.Path)
			c.Next()
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}

// RequireAdmin must run after JWT
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(sharedContext.RoleKey) != roleAdmin {
			slog.Warn("관리자 권한 없음",
				"member_id", c.GetString(sharedContext.MemberIDKey),
				"path", c.Request.URL.Path,
			)
			resp, _ := sharedError.ResolveDomainError(sharedError.ErrAdminOnly)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}

func validateAccessToken(tokenManager token.Manager, tokenString string) (*token.Claims, error) {
	claims, err := tokenManager.ValidateToken(tokenString)
	if err != nil {
		return nil, mapTokenError(err)
	}
	// refresh 토큰으로 API 호출 불가
	if claims.TokenType != token.ACCESS {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func setPrincipal(c *gin.Context, claims *token.Claims) {
	c.Set(sharedContext.MemberIDKey, claims.MemberID)
	c.Set(sharedContext.AuthUserIDKey, claims.AuthUserID)
	c.Set(sharedContext.NicknameKey, claims.Nickname)
	c.Set(sharedContext.RoleKey, claims.Role)
}

// handleJWTError handles JWT errors using the standardized error response format
// Note: Logging is done at the point of error detection in JWT() function
func handleJWTError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		c.JSON(resp.Status, resp)
	} else {
		// 예상치 못한 에러 → Fallback 응답
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-999",
			Message: "인증에 실패했습니다.",
		})
	}
	c.Abort()
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], BearerScheme) {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, token.ErrInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}
