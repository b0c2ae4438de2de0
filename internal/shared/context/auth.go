package context

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/logger"
)

// Context keys for storing user authentication information
const (
	MemberIDKey   = "member_id"
	AuthUserIDKey = "auth_user_id"
	NicknameKey   = "nickname"
	RoleKey       = "role"
)

// Principal 토큰에서 꺼낸 인증 정보 (갱신 전까지는 오래된 값일 수 있다)
type Principal struct {
	MemberID   string
	AuthUserID string
	Nickname   string
	Role       string
}

func GetMemberID(c *gin.Context) (string, bool) {
	memberID, exists := c.Get(MemberIDKey)
	if !exists {
		return "", false
	}

	id, ok := memberID.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}

// GetPrincipal returns everything the JWT middleware stored
func GetPrincipal(c *gin.Context) (Principal, bool) {
	memberID, ok := GetMemberID(c)
	if !ok {
		return Principal{}, false
	}
	return Principal{
		MemberID:   memberID,
		AuthUserID: c.GetString(AuthUserIDKey),
		Nickname:   c.GetString(NicknameKey),
		Role:       c.GetString(RoleKey),
	}, true
}

// RequirePrincipal is GetPrincipal that answers 401 itself when nothing is stored
func RequirePrincipal(c *gin.Context) (Principal, bool) {
	principal, ok := GetPrincipal(c)
	if !ok {
		abortUnauthenticated(c)
		return Principal{}, false
	}
	return principal, true
}

// RequireMemberID retrieves the authenticated user's ID from the Gin context.
// If the user ID is not found, automatically sends an authentication error response.
// Returns the user ID and true if found, empty string and false if not found (error already sent).
// Use this in most handlers to reduce boilerplate.
func RequireMemberID(c *gin.Context) (string, bool) {
	memberID, ok := GetMemberID(c)
	if !ok {
		abortUnauthenticated(c)
		return "", false
	}
	return memberID, true
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "로그인을 해주세요.",
	})
	logger.FromContext(c.Request.Context()).Error("[API] context에 회원 ID가 존재하지 않습니다.")
}

// OptionalMemberID returns the viewer id when a valid token was sent, "" otherwise
func OptionalMemberID(c *gin.Context) string {
	memberID, _ := GetMemberID(c)
	return memberID
}
