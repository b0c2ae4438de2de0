package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/histolook/go-api-server/internal/alarm"
	"github.com/histolook/go-api-server/internal/archive"
	"github.com/histolook/go-api-server/internal/auth"
	"github.com/histolook/go-api-server/internal/auth/oauth"
	"github.com/histolook/go-api-server/internal/config"
	"github.com/histolook/go-api-server/internal/member"
	"github.com/histolook/go-api-server/internal/meta"
	"github.com/histolook/go-api-server/internal/shared/cache"
	"github.com/histolook/go-api-server/internal/shared/database"
	"github.com/histolook/go-api-server/internal/shared/middleware"
	"github.com/histolook/go-api-server/internal/shared/push"
	"github.com/histolook/go-api-server/internal/shared/storage"
	"github.com/histolook/go-api-server/internal/shared/token"
	"github.com/histolook/go-api-server/internal/support"
)

// Setup configures all application-specific routes using dependency injection.
// lookupCache and pusher own connections and are closed by the caller.
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB, lookupCache *cache.Cache, pusher push.Pusher) {
	// Meta handler (health check, app version, legal documents)
	metaHandler := meta.NewHandler(cfg, db, lookupCache)
	router.GET("/health", metaHandler.Health)

	// repository
	authUserRepository := auth.NewAuthUserRepository()
	memberRepository := member.NewMemberRepository()
	deviceTokenRepository := alarm.NewDeviceTokenRepository()
	alarmRepository := alarm.NewAlarmRepository()
	archiveRepository := archive.NewArchiveRepository()
	judgementRepository := archive.NewJudgementRepository()
	interestRepository := archive.NewInterestRepository()
	lookupRepository := archive.NewLookupRepository()
	supportRepository := support.NewSupportRepository()

	// shared services
	tokenManager := token.NewJWTManager(cfg)
	objectStorage := storage.NewS3Storage(cfg.Storage)
	providers := oauthProviders(cfg.OAuth)

	// service
	alarmService := alarm.NewAlarmService(db.DB, deviceTokenRepository, alarmRepository, pusher)
	lookupService := archive.NewLookupService(db.DB, lookupRepository, lookupCache)
	archiveService := archive.NewArchiveService(
		db.DB,
		archiveRepository,
		judgementRepository,
		interestRepository,
		lookupService,
		objectStorage,
		cfg.Storage.UploadURLTTL,
		alarmService,
	)
	authService := auth.NewAuthService(
		db.DB,
		authUserRepository,
		memberRepository,
		deviceTokenRepository,
		interestRepository,
		tokenManager,
		providers,
		cfg.Admin.KeyHash,
	)
	memberService := member.NewMemberService(db.DB, memberRepository, objectStorage, cfg.Storage.UploadURLTTL)
	supportService := support.NewSupportService(db.DB, supportRepository, alarmService)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	memberHandler := member.NewMemberHandler(memberService)
	archiveHandler := archive.NewArchiveHandler(archiveService, lookupService)
	supportHandler := support.NewSupportHandler(supportService)
	alarmHandler := alarm.NewAlarmHandler(alarmService)

	requireJWT := middleware.JWT(tokenManager)
	optionalJWT := middleware.OptionalJWT(tokenManager)
	requireAdmin := middleware.RequireAdmin()

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/init", authHandler.InitAuth)
		authGroup.GET("/kakao/callback", authHandler.KakaoCallback)
		authGroup.GET("/google/callback", authHandler.GoogleCallback)
		authGroup.GET("/nickname", authHandler.CheckNickname)
		authGroup.POST("/join", authHandler.Join)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.DELETE("/secession", requireJWT, authHandler.Secession)
		authGroup.POST("/admin/join", authHandler.JoinAdmin)
		authGroup.DELETE("/admin/secession", requireJWT, requireAdmin, authHandler.SecessionAdmin)
	}

	memberGroup := router.Group("/member", requireJWT)
	{
		memberGroup.GET("/me", memberHandler.GetProfile)
		memberGroup.PATCH("/me", memberHandler.UpdateProfile)
		memberGroup.GET("/me/image/upload-url", memberHandler.IssueProfileImageUploadURL)
		memberGroup.PUT("/me/image", memberHandler.UpdateProfileImage)
		memberGroup.DELETE("/me/image", memberHandler.DeleteProfileImage)
	}

	archiveGroup := router.Group("/archive")
	{
		archiveGroup.GET("/brands", archiveHandler.GetBrands)
		archiveGroup.GET("/timelines", archiveHandler.GetTimelines)
		archiveGroup.GET("/categories", archiveHandler.GetCategories)
		archiveGroup.GET("/upload-urls", requireJWT, archiveHandler.IssueUploadURLs)
		archiveGroup.GET("", optionalJWT, archiveHandler.GetArchives)
		archiveGroup.GET("/me", requireJWT, archiveHandler.GetMyArchives)
		archiveGroup.GET("/interest", requireJWT, archiveHandler.GetInterestArchives)
		archiveGroup.POST("", requireJWT, archiveHandler.CreateArchive)
		archiveGroup.GET("/:archiveId", optionalJWT, archiveHandler.GetArchiveDetail)
		archiveGroup.PUT("/:archiveId", requireJWT, archiveHandler.UpdateArchive)
		archiveGroup.DELETE("/:archiveId", requireJWT, archiveHandler.DeleteArchive)
		archiveGroup.POST("/:archiveId/judgement", requireJWT, archiveHandler.CreateJudgement)
		archiveGroup.GET("/:archiveId/comments", optionalJWT, archiveHandler.GetComments)
		archiveGroup.POST("/:archiveId/interest", requireJWT, archiveHandler.CreateInterest)
		archiveGroup.DELETE("/:archiveId/interest", requireJWT, archiveHandler.DeleteInterest)
	}

	supportGroup := router.Group("/support", requireJWT)
	{
		supportGroup.POST("", supportHandler.CreateSupport)
		supportGroup.GET("", supportHandler.GetMySupports)
		// static admin paths are registered before the :supportId wildcard
		supportGroup.GET("/admin", requireAdmin, supportHandler.AdminGetSupports)
		supportGroup.PATCH("/admin/:supportId/reply", requireAdmin, supportHandler.AdminReplySupport)
		supportGroup.DELETE("/admin/:supportId", requireAdmin, supportHandler.AdminDeleteSupport)
		supportGroup.GET("/:supportId", supportHandler.GetSupport)
	}

	alarmGroup := router.Group("/alarm", requireJWT)
	{
		alarmGroup.POST("/device-token", alarmHandler.RegisterDeviceToken)
		alarmGroup.GET("", alarmHandler.GetAlarms)
		alarmGroup.PATCH("/:alarmId/read", alarmHandler.ReadAlarm)
	}
}

// oauthProviders registers only the providers with a configured client id
func oauthProviders(cfg config.OAuthConfig) oauth.Registry {
	var providers []oauth.Provider
	if cfg.Kakao.ClientID != "" {
		providers = append(providers, oauth.NewKakao(cfg.Kakao))
	}
	if cfg.Google.ClientID != "" {
		providers = append(providers, oauth.NewGoogle(cfg.Google))
	}
	if cfg.AppleClientID != "" {
		providers = append(providers, oauth.NewApple(cfg.AppleClientID))
	}

	registry := oauth.NewRegistry(providers...)
	slog.Info("소셜 로그인 제공자 등록", "count", len(registry))
	return registry
}
