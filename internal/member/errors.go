package member

import (
	"net/http"

	sharedError "github.com/histolook/go-api-server/internal/shared/error"
)

const (
	memberNotFound        = "MEMBER_NOT_FOUND"        // errInfo
	invalidNickname       = "INVALID_NICKNAME"        // errInfo
	nicknameConflict      = "NICKNAME_CONFLICT"       // errInfo
	invalidBrandInterests = "INVALID_BRAND_INTERESTS" // errInfo
	invalidObjectName     = "INVALID_OBJECT_NAME"     // errInfo
)

var (
	ErrMemberNotFound        = sharedError.NewDomainError(memberNotFound)
	ErrInvalidNickname       = sharedError.NewDomainError(invalidNickname)
	ErrNicknameConflict      = sharedError.NewDomainError(nicknameConflict)
	ErrInvalidBrandInterests = sharedError.NewDomainError(invalidBrandInterests)
	ErrInvalidObjectName     = sharedError.NewDomainError(invalidObjectName)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "회원 정보를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidNickname, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-002",
		Message: "사용할 수 없는 닉네임입니다.",
	})

	sharedError.RegisterDomainErrorResponse(nicknameConflict, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-003",
		Message: "이미 사용 중인 닉네임입니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidBrandInterests, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-004",
		Message: "관심 브랜드 개수가 올바르지 않습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidObjectName, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-005",
		Message: "업로드되지 않은 이미지입니다.",
	})
}
