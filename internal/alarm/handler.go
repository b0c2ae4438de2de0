package alarm

import (
	"github.com/gin-gonic/gin"
	sharedContext "github.com/histolook/go-api-server/internal/shared/context"
	"github.com/histolook/go-api-server/internal/shared/handler"
	"github.com/histolook/go-api-server/internal/shared/pagination"
)

type AlarmHandler struct {
	alarmService *AlarmService
}

func NewAlarmHandler(alarmService *AlarmService) *AlarmHandler {
	return &AlarmHandler{alarmService: alarmService}
}

func (h *AlarmHandler) RegisterDeviceToken(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request RegisterDeviceTokenRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	if err := h.alarmService.RegisterDeviceToken(c.Request.Context(), memberID, request.Token); err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondNoContent(c)
}

func (h *AlarmHandler) GetAlarms(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	page, ok := handler.PageQuery(c, pagination.DefaultSize)
	if !ok {
		return
	}

	result, err := h.alarmService.GetAlarms(c.Request.Context(), memberID, page)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "알림 목록 조회 성공", result)
}

func (h *AlarmHandler) ReadAlarm(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	alarmID, ok := handler.UintParam(c, "alarmId")
	if !ok {
		return
	}

	if err := h.alarmService.ReadAlarm(c.Request.Context(), memberID, alarmID); err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondNoContent(c)
}
