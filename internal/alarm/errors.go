package alarm

import (
	"net/http"

	sharedError "github.com/histolook/go-api-server/internal/shared/error"
)

const (
	alarmNotFound = "ALARM_NOT_FOUND" // errInfo
)

var (
	ErrAlarmNotFound = sharedError.NewDomainError(alarmNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(alarmNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "ALARM-001",
		Message: "알림을 찾을 수 없습니다.",
	})
}
