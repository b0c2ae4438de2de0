package alarm

import (
	"time"

	"github.com/histolook/go-api-server/internal/model"
)

type RegisterDeviceTokenRequest struct {
	Token string `json:"token" binding:"required,max=512"`
}

type AlarmResponse struct {
	ID        uint32    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ArchiveID *string   `json:"archiveId"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func newAlarmResponse(alarm model.Alarm) AlarmResponse {
	return AlarmResponse{
		ID:        alarm.ID,
		Title:     alarm.Title,
		Body:      alarm.Body,
		ArchiveID: alarm.ArchiveID,
		IsRead:    alarm.IsRead,
		CreatedAt: alarm.CreatedAt,
	}
}
