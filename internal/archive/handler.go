package archive

import (
	"github.com/gin-gonic/gin"
	sharedContext "github.com/histolook/go-api-server/internal/shared/context"
	"github.com/histolook/go-api-server/internal/shared/handler"
	"github.com/histolook/go-api-server/internal/shared/pagination"
)

type ArchiveHandler struct {
	archiveService *ArchiveService
	lookupService  *LookupService
}

func NewArchiveHandler(archiveService *ArchiveService, lookupService *LookupService) *ArchiveHandler {
	return &ArchiveHandler{
		archiveService: archiveService,
		lookupService:  lookupService,
	}
}

func (h *ArchiveHandler) GetBrands(c *gin.Context) {
	h.listLookup(c, LookupBrand, "브랜드 목록 조회 성공")
}

func (h *ArchiveHandler) GetTimelines(c *gin.Context) {
	h.listLookup(c, LookupTimeline, "시대 목록 조회 성공")
}

func (h *ArchiveHandler) GetCategories(c *gin.Context) {
	h.listLookup(c, LookupCategory, "카테고리 목록 조회 성공")
}

func (h *ArchiveHandler) listLookup(c *gin.Context, kind LookupKind, message string) {
	items, err := h.lookupService.List(c.Request.Context(), kind)
	if err != nil {
		handler.HandleError(c, err)
		return
	}
	handler.RespondOK(c, message, items)
}

func (h *ArchiveHandler) IssueUploadURLs(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var query UploadURLsQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := h.archiveService.IssueUploadURLs(c.Request.Context(), memberID, query.Count)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "업로드 URL 발급 성공", response)
}

func (h *ArchiveHandler) CreateArchive(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request ArchiveRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.archiveService.CreateArchive(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondCreated(c, "아카이브 등록 성공", response)
}

func (h *ArchiveHandler) UpdateArchive(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	archiveID, ok := handler.UUIDParam(c, "archiveId")
	if !ok {
		return
	}

	var request ArchiveRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.archiveService.UpdateArchive(c.Request.Context(), memberID, archiveID, &request)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "아카이브 수정 성공", response)
}

func (h *ArchiveHandler) DeleteArchive(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	archiveID, ok := handler.UUIDParam(c, "archiveId")
	if !ok {
		return
	}

	if err := h.archiveService.DeleteArchive(c.Request.Context(), memberID, archiveID); err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondNoContent(c)
}

func (h *ArchiveHandler) GetArchiveDetail(c *gin.Context) {
	archiveID, ok := handler.UUIDParam(c, "archiveId")
	if !ok {
		return
	}

	response, err := h.archiveService.GetArchiveDetail(c.Request.Context(), archiveID, sharedContext.OptionalMemberID(c))
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "아카이브 조회 성공", response)
}

func (h *ArchiveHandler) GetArchives(c *gin.Context) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	page, ok := handler.PageQuery(c, pagination.DefaultSize)
	if !ok {
		return
	}

	result, err := h.archiveService.GetArchives(c.Request.Context(), query, page)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "아카이브 목록 조회 성공", result)
}

func (h *ArchiveHandler) GetMyArchives(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	page, ok := handler.PageQuery(c, pagination.DefaultSize)
	if !ok {
		return
	}

	result, err := h.archiveService.GetMyArchives(c.Request.Context(), memberID, page)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "내 아카이브 목록 조회 성공", result)
}

func (h *ArchiveHandler) GetInterestArchives(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	page, ok := handler.PageQuery(c, pagination.DefaultSize)
	if !ok {
		return
	}

	result, err := h.archiveService.GetInterestArchives(c.Request.Context(), memberID, page)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "관심 아카이브 목록 조회 성공", result)
}

func (h *ArchiveHandler) GetComments(c *gin.Context) {
	archiveID, ok := handler.UUIDParam(c, "archiveId")
	if !ok {
		return
	}

	var query CommentQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	page, ok := handler.PageQuery(c, pagination.DefaultSize)
	if !ok {
		return
	}

	result, err := h.archiveService.GetComments(c.Request.Context(), archiveID, sharedContext.OptionalMemberID(c),
		query.IsArchive, page)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "코멘트 목록 조회 성공", result)
}

func (h *ArchiveHandler) CreateJudgement(c *gin.Context) {
	principal, ok := sharedContext.RequirePrincipal(c)
	if !ok {
		return
	}

	archiveID, ok := handler.UUIDParam(c, "archiveId")
	if !ok {
		return
	}

	var request JudgementRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.archiveService.CreateJudgement(c.Request.Context(), principal.MemberID, principal.Nickname, archiveID, &request)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondCreated(c, "판정 등록 성공", response)
}

func (h *ArchiveHandler) CreateInterest(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	archiveID, ok := handler.UUIDParam(c, "archiveId")
	if !ok {
		return
	}

	response, err := h.archiveService.CreateInterest(c.Request.Context(), memberID, archiveID)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "관심 등록 성공", response)
}

func (h *ArchiveHandler) DeleteInterest(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	archiveID, ok := handler.UUIDParam(c, "archiveId")
	if !ok {
		return
	}

	if err := h.archiveService.DeleteInterest(c.Request.Context(), memberID, archiveID); err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondNoContent(c)
}
