package member

import (
	"github.com/gin-gonic/gin"
	sharedContext "github.com/histolook/go-api-server/internal/shared/context"
	"github.com/histolook/go-api-server/internal/shared/handler"
)

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

func (h *MemberHandler) GetProfile(c *gin.Context) {
	principal, ok := sharedContext.RequirePrincipal(c)
	if !ok {
		return
	}

	response, err := h.memberService.GetProfile(c.Request.Context(), principal)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "회원 정보 조회 성공", response)
}

func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request UpdateProfileRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.UpdateProfile(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "회원 정보 수정 성공", response)
}

func (h *MemberHandler) IssueProfileImageUploadURL(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.IssueProfileImageUploadURL(c.Request.Context(), memberID)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "프로필 이미지 업로드 URL 발급 성공", response)
}

func (h *MemberHandler) UpdateProfileImage(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request UpdateProfileImageRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.UpdateProfileImage(c.Request.Context(), memberID, request.ObjectName)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "프로필 이미지 수정 성공", response)
}

func (h *MemberHandler) DeleteProfileImage(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	if err := h.memberService.DeleteProfileImage(c.Request.Context(), memberID); err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondNoContent(c)
}
