package support

import (
	"net/http"

	sharedError "github.com/histolook/go-api-server/internal/shared/error"
)

const (
	supportNotFound = "SUPPORT_NOT_FOUND" // errInfo
)

var (
	ErrSupportNotFound = sharedError.NewDomainError(supportNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(supportNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "SUPPORT-001",
		Message: "문의를 찾을 수 없습니다.",
	})
}
