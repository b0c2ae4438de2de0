package auth

import (
	"net/http"

	sharedError "github.com/histolook/go-api-server/internal/shared/error"
)

const (
	invalidProvider     = "INVALID_PROVIDER"      // errInfo
	missingToken        = "MISSING_TOKEN"         // errInfo
	missingProviderID   = "MISSING_PROVIDER_ID"   // errInfo
	socialProviderError = "SOCIAL_PROVIDER_ERROR" // errInfo
	invalidSocialToken  = "INVALID_SOCIAL_TOKEN"  // errInfo
	authUserNotFound    = "AUTH_USER_NOT_FOUND"   // errInfo
	memberAlreadyJoined = "MEMBER_ALREADY_JOINED" // errInfo
	invalidAdminKey     = "INVALID_ADMIN_KEY"     // errInfo
	invalidRefreshToken = "INVALID_REFRESH_TOKEN" // errInfo
)

var (
	ErrInvalidProvider     = sharedError.NewDomainError(invalidProvider)
	ErrMissingToken        = sharedError.NewDomainError(missingToken)
	ErrMissingProviderID   = sharedError.NewDomainError(missingProviderID)
	ErrSocialProviderError = sharedError.NewDomainError(socialProviderError)
	ErrInvalidSocialToken  = sharedError.NewDomainError(invalidSocialToken)
	ErrAuthUserNotFound    = sharedError.NewDomainError(authUserNotFound)
	ErrMemberAlreadyJoined = sharedError.NewDomainError(memberAlreadyJoined)
	ErrInvalidAdminKey     = sharedError.NewDomainError(invalidAdminKey)
	ErrInvalidRefreshToken = sharedError.NewDomainError(invalidRefreshToken)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidProvider, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-002",
		Message: "지원하지 않는 로그인 방식입니다.",
	})

	sharedError.RegisterDomainErrorResponse(missingToken, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-003",
		Message: "소셜 토큰이 누락되었습니다.",
	})

	sharedError.RegisterDomainErrorResponse(missingProviderID, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-004",
		Message: "소셜 계정 식별자가 누락되었습니다.",
	})

	sharedError.RegisterDomainErrorResponse(socialProviderError, sharedError.ErrorResponse{
		Status:  http.StatusServiceUnavailable,
		Code:    "AUTH-005",
		Message: "소셜 로그인 처리 중 오류가 발생했습니다. 잠시 후 다시 시도해 주세요.",
	})

	sharedError.RegisterDomainErrorResponse(invalidSocialToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-006",
		Message: "유효하지 않은 소셜 토큰입니다.",
	})

	sharedError.RegisterDomainErrorResponse(authUserNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "AUTH-007",
		Message: "인증 정보를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(memberAlreadyJoined, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "AUTH-008",
		Message: "이미 가입된 계정입니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidAdminKey, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-010",
		Message: "관리자 키가 올바르지 않습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidRefreshToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-011",
		Message: "유효하지 않은 리프레시 토큰입니다.",
	})
}
