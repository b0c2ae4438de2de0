package support

import (
	"github.com/gin-gonic/gin"
	sharedContext "github.com/histolook/go-api-server/internal/shared/context"
	"github.com/histolook/go-api-server/internal/shared/handler"
	"github.com/histolook/go-api-server/internal/shared/pagination"
)

type SupportHandler struct {
	supportService *SupportService
}

func NewSupportHandler(supportService *SupportService) *SupportHandler {
	return &SupportHandler{supportService: supportService}
}

func (h *SupportHandler) CreateSupport(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request CreateSupportRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.supportService.CreateSupport(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondCreated(c, "문의 등록 성공", response)
}

func (h *SupportHandler) GetMySupports(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	page, ok := handler.PageQuery(c, pagination.DefaultSize)
	if !ok {
		return
	}

	result, err := h.supportService.GetMySupports(c.Request.Context(), memberID, page)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "문의 목록 조회 성공", result)
}

func (h *SupportHandler) GetSupport(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	supportID, ok := handler.UintParam(c, "supportId")
	if !ok {
		return
	}

	response, err := h.supportService.GetSupport(c.Request.Context(), memberID, supportID)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "문의 조회 성공", response)
}

func (h *SupportHandler) AdminGetSupports(c *gin.Context) {
	page, ok := handler.PageQuery(c, pagination.AdminSupportSize)
	if !ok {
		return
	}

	result, err := h.supportService.AdminGetSupports(c.Request.Context(), page)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "문의 목록 조회 성공", result)
}

func (h *SupportHandler) AdminReplySupport(c *gin.Context) {
	supportID, ok := handler.UintParam(c, "supportId")
	if !ok {
		return
	}

	var request ReplySupportRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.supportService.AdminReplySupport(c.Request.Context(), supportID, request.Reply)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "문의 답변 성공", response)
}

func (h *SupportHandler) AdminDeleteSupport(c *gin.Context) {
	supportID, ok := handler.UintParam(c, "supportId")
	if !ok {
		return
	}

	if err := h.supportService.AdminDeleteSupport(c.Request.Context(), supportID); err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondNoContent(c)
}
