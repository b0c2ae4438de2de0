package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/histolook/go-api-server/internal/model"
	sharedContext "github.com/histolook/go-api-server/internal/shared/context"
	"github.com/histolook/go-api-server/internal/shared/handler"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(authService *AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (a *AuthHandler) InitAuth(c *gin.Context) {
	var request InitAuthRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.InitAuth(c.Request.Context(), &request)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondCreated(c, "인증 정보 저장 성공", response)
}

func (a *AuthHandler) KakaoCallback(c *gin.Context) {
	a.oauthCallback(c, model.ProviderKakao)
}

func (a *AuthHandler) GoogleCallback(c *gin.Context) {
	a.oauthCallback(c, model.ProviderGoogle)
}

func (a *AuthHandler) oauthCallback(c *gin.Context, provider model.Provider) {
	var query CallbackQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := a.authService.OAuthCallback(c.Request.Context(), provider, query.Code)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "소셜 로그인 성공", response)
}

func (a *AuthHandler) CheckNickname(c *gin.Context) {
	var query NicknameQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := a.authService.CheckNickname(c.Request.Context(), query.Nickname)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "닉네임 중복 확인 성공", response)
}

func (a *AuthHandler) Join(c *gin.Context) {
	var request JoinRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Join(c.Request.Context(), &request)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondCreated(c, "회원가입 성공", response)
}

func (a *AuthHandler) JoinAdmin(c *gin.Context) {
	var request JoinAdminRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.JoinAdmin(c.Request.Context(), c.GetHeader(AdminKeyHeader), &request)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondCreated(c, "관리자 가입 성공", response)
}

func (a *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "로그인 성공", response)
}

func (a *AuthHandler) Refresh(c *gin.Context) {
	var request RefreshRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Refresh(c.Request.Context(), request.RefreshToken)
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondOK(c, "토큰 갱신 성공", response)
}

// Secession accepts an empty body; the reason is optional
func (a *AuthHandler) Secession(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request SecessionRequest
	if c.Request.ContentLength > 0 && !handler.BindJSON(c, &request) {
		return
	}

	if err := a.authService.Secession(c.Request.Context(), memberID, request.Reason); err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondNoContent(c)
}

func (a *AuthHandler) SecessionAdmin(c *gin.Context) {
	var request AdminSecessionRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	if err := a.authService.SecessionAdmin(c.Request.Context(), &request); err != nil {
		handler.HandleError(c, err)
		return
	}

	handler.RespondNoContent(c)
}
