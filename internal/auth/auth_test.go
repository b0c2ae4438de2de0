package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/histolook/go-api-server/internal/alarm"
	"github.com/histolook/go-api-server/internal/archive"
	"github.com/histolook/go-api-server/internal/auth"
	"github.com/histolook/go-api-server/internal/auth/oauth"
	"github.com/histolook/go-api-server/internal/member"
	"github.com/histolook/go-api-server/internal/model"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/testutil"
	"github.com/histolook/go-api-server/internal/shared/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const adminKey = "histolook-admin-bootstrap-key"

type testEnv struct {
	db      *gorm.DB
	handler *auth.AuthHandler
	kakao   *testutil.FakeProvider
	tokens  *token.JWTManager
}

// setupTestEnvironment wires AuthService with a fake kakao adapter and a real JWT manager
func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	kakao := testutil.NewFakeProvider(model.ProviderKakao)
	tokens := testutil.NewTestJWTManager()

	keyHash, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.MinCost)
	require.NoError(t, err)

	authService := auth.NewAuthService(
		db,
		auth.NewAuthUserRepository(),
		member.NewMemberRepository(),
		alarm.NewDeviceTokenRepository(),
		archive.NewInterestRepository(),
		tokens,
		oauth.NewRegistry(kakao),
		string(keyHash),
	)

	return &testEnv{
		db:      db,
		handler: auth.NewAuthHandler(authService),
		kakao:   kakao,
		tokens:  tokens,
	}
}

// router registers the public auth routes; a non-nil caller also gets the authenticated ones
func (e *testEnv) router(caller *model.Member) *gin.Engine {
	router := testutil.SetupTestRouter()
	group := router.Group("/auth")
	group.POST("/init", e.handler.InitAuth)
	group.GET("/kakao/callback", e.handler.KakaoCallback)
	group.GET("/google/callback", e.handler.GoogleCallback)
	group.GET("/nickname", e.handler.CheckNickname)
	group.POST("/join", e.handler.Join)
	group.POST("/login", e.handler.Login)
	group.POST("/refresh", e.handler.Refresh)
	group.POST("/admin/join", e.handler.JoinAdmin)

	if caller != nil {
		authed := group.Group("", testutil.AuthAs(caller.ID, caller.Nickname, string(caller.Role)))
		authed.DELETE("/secession", e.handler.Secession)
		authed.DELETE("/admin/secession", e.handler.SecessionAdmin)
	}
	return router
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	return errorResponse.Code
}

func initAuth(t *testing.T, router *gin.Engine, providerID string) string {
	t.Helper()
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/auth/init",
		Body: auth.InitAuthRequest{
			Provider:           "kakao",
			ProviderID:         providerID,
			SocialAccessToken:  "access-" + providerID,
			SocialRefreshToken: "refresh-" + providerID,
		},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response auth.InitAuthResponse
	testutil.ParseContent(t, recorder, &response)
	return response.AuthUserID
}

func join(t *testing.T, router *gin.Engine, authUserID, nickname string, brands []string) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/auth/join",
		Body: auth.JoinRequest{
			AuthUserID:     authUserID,
			Nickname:       nickname,
			BrandInterests: brands,
		},
	})
}

func TestInitAuth_Validation(t *testing.T) {
	env := setupTestEnvironment(t)
	router := env.router(nil)

	testCases := []struct {
		name     string
		body     auth.InitAuthRequest
		wantCode string
	}{
		{"unknown provider", auth.InitAuthRequest{Provider: "naver", ProviderID: "1", SocialAccessToken: "a", SocialRefreshToken: "r"}, "AUTH-002"},
		{"admin provider", auth.InitAuthRequest{Provider: "admin", ProviderID: "1", SocialAccessToken: "a", SocialRefreshToken: "r"}, "AUTH-002"},
		{"missing refresh token", auth.InitAuthRequest{Provider: "kakao", ProviderID: "1", SocialAccessToken: "a"}, "AUTH-003"},
		{"missing access token", auth.InitAuthRequest{Provider: "google", ProviderID: "1", SocialRefreshToken: "r"}, "AUTH-003"},
		{"missing provider id", auth.InitAuthRequest{Provider: "apple", SocialAccessToken: "a", SocialRefreshToken: "r"}, "AUTH-004"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/auth/init",
				Body:   tc.body,
			})

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, tc.wantCode, errorCode(t, recorder))
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&model.AuthUser{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInitAuth_ReusesExistingIdentity(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	router := env.router(nil)
	firstID := initAuth(t, router, "kakao-1")

	// When: the same identity is registered again with new tokens
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/auth/init",
		Body: auth.InitAuthRequest{
			Provider:           "kakao",
			ProviderID:         "kakao-1",
			SocialAccessToken:  "rotated-access",
			SocialRefreshToken: "rotated-refresh",
		},
	})

	// Then: same row, tokens refreshed
	require.Equal(t, http.StatusCreated, recorder.Code)
	var response auth.InitAuthResponse
	testutil.ParseContent(t, recorder, &response)
	assert.Equal(t, firstID, response.AuthUserID)

	var stored model.AuthUser
	require.NoError(t, env.db.First(&stored, "id = ?", firstID).Error)
	require.NotNil(t, stored.OAuthAccessToken)
	assert.Equal(t, "rotated-access", *stored.OAuthAccessToken)

	var count int64
	require.NoError(t, env.db.Model(&model.AuthUser{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestJoin_ScenarioA(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	router := env.router(nil)
	firstAuthUser := initAuth(t, router, "kakao-1")
	secondAuthUser := initAuth(t, router, "kakao-2")

	// When: the first identity joins as "foo"
	recorder := join(t, router, firstAuthUser, "foo", []string{"Nike"})

	// Then: member created and tokens issued in the same call
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var joined auth.JoinResponse
	testutil.ParseContent(t, recorder, &joined)
	require.NotEmpty(t, joined.MemberID)

	claims, err := env.tokens.ValidateToken(joined.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, joined.MemberID, claims.MemberID)
	assert.Equal(t, firstAuthUser, claims.AuthUserID)
	assert.Equal(t, "foo", claims.Nickname)
	assert.Equal(t, string(model.RoleUser), claims.Role)
	assert.Equal(t, token.ACCESS, claims.TokenType)

	// When: a different identity tries the same nickname
	recorder = join(t, router, secondAuthUser, "foo", []string{"Nike"})

	// Then
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MEMBER-002", errorCode(t, recorder))
}

func TestJoin_Rejections(t *testing.T) {
	env := setupTestEnvironment(t)
	router := env.router(nil)
	joinedAuthUser := initAuth(t, router, "kakao-1")
	require.Equal(t, http.StatusCreated, join(t, router, joinedAuthUser, "taken", []string{"Nike"}).Code)
	freshAuthUser := initAuth(t, router, "kakao-2")

	eleven := make([]string, auth.MaxJoinBrandInterests+1)
	for i := range eleven {
		eleven[i] = "Brand"
	}

	testCases := []struct {
		name       string
		authUserID string
		nickname   string
		brands     []string
		wantStatus int
		wantCode   string
	}{
		{"unknown auth user", "00000000-0000-0000-0000-000000000000", "newbie", []string{"Nike"}, http.StatusNotFound, "AUTH-007"},
		{"already joined", joinedAuthUser, "another", []string{"Nike"}, http.StatusConflict, "AUTH-008"},
		{"malformed nickname", freshAuthUser, "a", []string{"Nike"}, http.StatusBadRequest, "MEMBER-002"},
		{"no brand interests", freshAuthUser, "newbie", nil, http.StatusBadRequest, "MEMBER-004"},
		{"too many brand interests", freshAuthUser, "newbie", eleven, http.StatusBadRequest, "MEMBER-004"},
		{"brand interest containing a comma", freshAuthUser, "newbie", []string{"Comme des Garcons, Homme"}, http.StatusBadRequest, "MEMBER-004"},
		{"malformed auth user id", "not-a-uuid", "newbie", []string{"Nike"}, http.StatusBadRequest, "ERROR-001"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := join(t, router, tc.authUserID, tc.nickname, tc.brands)

			assert.Equal(t, tc.wantStatus, recorder.Code)
			assert.Equal(t, tc.wantCode, errorCode(t, recorder))
		})
	}

	// ten brands is the upper bound
	recorder := join(t, router, freshAuthUser, "newbie", eleven[:auth.MaxJoinBrandInterests])
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestCheckNickname(t *testing.T) {
	env := setupTestEnvironment(t)
	testutil.CreateMember(t, env.db, "taken")
	router := env.router(nil)

	check := func(nickname string) bool {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodGet,
			URL:    "/auth/nickname?nickname=" + nickname,
		})
		require.Equal(t, http.StatusOK, recorder.Code)
		var response auth.NicknameCheckResponse
		testutil.ParseContent(t, recorder, &response)
		return response.IsDuplicated
	}

	assert.True(t, check("taken"))
	assert.False(t, check("free"))
}

func TestOAuthCallback(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	env.kakao.Register("code-1", "kakao-access", "kakao-1")
	env.kakao.Register("code-2", "kakao-access-2", "kakao-1")
	router := env.router(nil)

	callback := func(url string) *httptest.ResponseRecorder {
		return testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: url})
	}

	// When: first callback for a new identity
	recorder := callback("/auth/kakao/callback?code=code-1")

	// Then: AuthUser created, not registered yet
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var first auth.LoginResponse
	testutil.ParseContent(t, recorder, &first)
	assert.False(t, first.IsRegistered)
	assert.NotEmpty(t, first.AuthUserID)
	assert.Empty(t, first.AccessToken)

	// When: the identity joins and calls back again
	require.Equal(t, http.StatusCreated, join(t, router, first.AuthUserID, "foo", []string{"Nike"}).Code)
	recorder = callback("/auth/kakao/callback?code=code-2")

	// Then: same AuthUser, now registered with tokens
	require.Equal(t, http.StatusOK, recorder.Code)
	var second auth.LoginResponse
	testutil.ParseContent(t, recorder, &second)
	assert.True(t, second.IsRegistered)
	assert.Equal(t, first.AuthUserID, second.AuthUserID)
	assert.NotEmpty(t, second.AccessToken)
	assert.NotEmpty(t, second.RefreshToken)

	var stored model.AuthUser
	require.NoError(t, env.db.First(&stored, "id = ?", first.AuthUserID).Error)
	require.NotNil(t, stored.OAuthAccessToken)
	assert.Equal(t, "kakao-access-2", *stored.OAuthAccessToken)

	// unknown code
	recorder = callback("/auth/kakao/callback?code=bogus")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "AUTH-006", errorCode(t, recorder))

	// provider without a configured adapter
	recorder = callback("/auth/google/callback?code=code-1")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "AUTH-002", errorCode(t, recorder))

	// missing code
	assert.Equal(t, http.StatusBadRequest, callback("/auth/kakao/callback").Code)
}

func TestLogin_MatchesProviderIdentity(t *testing.T) {
	// Given: two kakao identities, only the second one joined
	env := setupTestEnvironment(t)
	router := env.router(nil)
	pendingAuthUser := initAuth(t, router, "kakao-1")
	joinedAuthUser := initAuth(t, router, "kakao-2")
	require.Equal(t, http.StatusCreated, join(t, router, joinedAuthUser, "joined", []string{"Nike"}).Code)

	env.kakao.Register("unused-1", "token-for-1", "kakao-1")
	env.kakao.Register("unused-2", "token-for-2", "kakao-2")
	env.kakao.Register("unused-3", "token-for-stranger", "kakao-3")

	login := func(provider, accessToken string) *httptest.ResponseRecorder {
		return testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/auth/login",
			Body:   auth.LoginRequest{Provider: provider, SocialAccessToken: accessToken},
		})
	}

	t.Run("joined identity gets tokens", func(t *testing.T) {
		recorder := login("kakao", "token-for-2")

		require.Equal(t, http.StatusOK, recorder.Code)
		var response auth.LoginResponse
		testutil.ParseContent(t, recorder, &response)
		assert.True(t, response.IsRegistered)
		assert.Equal(t, joinedAuthUser, response.AuthUserID)

		claims, err := env.tokens.ValidateToken(response.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "joined", claims.Nickname)
	})

	t.Run("identity without member resumes at join", func(t *testing.T) {
		recorder := login("kakao", "token-for-1")

		require.Equal(t, http.StatusOK, recorder.Code)
		var response auth.LoginResponse
		testutil.ParseContent(t, recorder, &response)
		assert.False(t, response.IsRegistered)
		assert.Equal(t, pendingAuthUser, response.AuthUserID)
		assert.Empty(t, response.AccessToken)
	})

	t.Run("valid token for an unknown identity", func(t *testing.T) {
		recorder := login("kakao", "token-for-stranger")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "AUTH-006", errorCode(t, recorder))
	})

	t.Run("token rejected by provider", func(t *testing.T) {
		recorder := login("kakao", "forged")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "AUTH-006", errorCode(t, recorder))
	})

	t.Run("unsupported provider", func(t *testing.T) {
		recorder := login("naver", "token-for-2")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "AUTH-002", errorCode(t, recorder))
	})
}

func TestRefresh_UsesCurrentMemberData(t *testing.T) {
	// Given: a joined member whose nickname changed after the tokens were issued
	env := setupTestEnvironment(t)
	router := env.router(nil)
	authUserID := initAuth(t, router, "kakao-1")
	recorder := join(t, router, authUserID, "before", []string{"Nike"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var joined auth.JoinResponse
	testutil.ParseContent(t, recorder, &joined)

	require.NoError(t, env.db.Model(&model.Member{}).Where("id = ?", joined.MemberID).Update("nickname", "after").Error)

	refresh := func(refreshToken string) *httptest.ResponseRecorder {
		return testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/auth/refresh",
			Body:   auth.RefreshRequest{RefreshToken: refreshToken},
		})
	}

	// When
	recorder = refresh(joined.RefreshToken)

	// Then: the new pair carries the new nickname
	require.Equal(t, http.StatusOK, recorder.Code)
	var pair auth.TokenResponse
	testutil.ParseContent(t, recorder, &pair)

	accessClaims, err := env.tokens.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "after", accessClaims.Nickname)
	assert.Equal(t, token.ACCESS, accessClaims.TokenType)

	refreshClaims, err := env.tokens.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "after", refreshClaims.Nickname)
	assert.Equal(t, token.REFRESH, refreshClaims.TokenType)

	// access tokens are not accepted as refresh tokens
	recorder = refresh(joined.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "AUTH-011", errorCode(t, recorder))

	recorder = refresh("garbage")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// a withdrawn member cannot refresh
	require.NoError(t, env.db.Delete(&model.Member{}, "id = ?", joined.MemberID).Error)
	recorder = refresh(joined.RefreshToken)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "MEMBER-001", errorCode(t, recorder))
}

func TestSecession_Cascade(t *testing.T) {
	// Given: a member with a device token and an interest
	env := setupTestEnvironment(t)
	target := testutil.CreateMember(t, env.db, "leaving")
	author := testutil.CreateMember(t, env.db, "author")
	favorite := testutil.CreateArchive(t, env.db, author.ID)
	authUserID := *target.AuthUserID

	require.NoError(t, env.db.Create(&model.DeviceToken{MemberID: target.ID, Token: "device-1"}).Error)
	require.NoError(t, env.db.Create(&model.DeviceToken{MemberID: author.ID, Token: "device-2"}).Error)
	require.NoError(t, env.db.Create(&model.ArchiveInterest{MemberID: target.ID, ArchiveID: favorite.ID}).Error)

	// When
	recorder := testutil.ExecuteRequest(t, env.router(target), testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/auth/secession",
		Body:   auth.SecessionRequest{Reason: stringPtr("안 써요")},
	})

	// Then
	require.Equal(t, http.StatusNoContent, recorder.Code)

	var withdrawn model.Member
	require.NoError(t, env.db.Unscoped().First(&withdrawn, "id = ?", target.ID).Error)
	assert.True(t, withdrawn.DeletedAt.Valid)
	assert.Nil(t, withdrawn.AuthUserID)
	require.NotNil(t, withdrawn.SecessionReason)
	assert.Equal(t, "안 써요", *withdrawn.SecessionReason)

	var count int64
	require.NoError(t, env.db.Model(&model.AuthUser{}).Where("id = ?", authUserID).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, env.db.Model(&model.DeviceToken{}).Where("member_id = ?", target.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Model(&model.DeviceToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, env.db.Unscoped().Model(&model.ArchiveInterest{}).Where("member_id = ?", target.ID).Count(&count).Error)
	assert.Zero(t, count)

	// the nickname is free again
	router := env.router(nil)
	freshAuthUser := initAuth(t, router, "kakao-new")
	assert.Equal(t, http.StatusCreated, join(t, router, freshAuthUser, "leaving", []string{"Nike"}).Code)
}

func TestSecession_WithoutBody(t *testing.T) {
	env := setupTestEnvironment(t)
	target := testutil.CreateMember(t, env.db, "leaving")

	recorder := testutil.ExecuteRequest(t, env.router(target), testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/auth/secession",
	})

	require.Equal(t, http.StatusNoContent, recorder.Code)

	var withdrawn model.Member
	require.NoError(t, env.db.Unscoped().First(&withdrawn, "id = ?", target.ID).Error)
	assert.True(t, withdrawn.DeletedAt.Valid)
	assert.Nil(t, withdrawn.SecessionReason)
}

func TestJoinAdmin(t *testing.T) {
	env := setupTestEnvironment(t)
	router := env.router(nil)

	joinAdmin := func(key, nickname string) *httptest.ResponseRecorder {
		return testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method:  http.MethodPost,
			URL:     "/auth/admin/join",
			Body:    auth.JoinAdminRequest{Nickname: nickname},
			Headers: map[string]string{auth.AdminKeyHeader: key},
		})
	}

	t.Run("wrong key", func(t *testing.T) {
		recorder := joinAdmin("guess", "admin")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "AUTH-010", errorCode(t, recorder))
	})

	t.Run("malformed nickname", func(t *testing.T) {
		recorder := joinAdmin(adminKey, "a!")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "ERROR-001", errorCode(t, recorder))
	})

	t.Run("creates admin with synthetic identity", func(t *testing.T) {
		recorder := joinAdmin(adminKey, "admin")

		require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
		var response auth.JoinResponse
		testutil.ParseContent(t, recorder, &response)

		var admin model.Member
		require.NoError(t, env.db.First(&admin, "id = ?", response.MemberID).Error)
		assert.Equal(t, model.RoleAdmin, admin.Role)
		assert.Len(t, admin.BrandInterests, 3)

		var authUser model.AuthUser
		require.NoError(t, env.db.First(&authUser, "id = ?", *admin.AuthUserID).Error)
		assert.Equal(t, model.ProviderAdmin, authUser.Provider)

		claims, err := env.tokens.ValidateToken(response.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, string(model.RoleAdmin), claims.Role)
	})

	t.Run("nickname taken", func(t *testing.T) {
		recorder := joinAdmin(adminKey, "admin")

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, "MEMBER-003", errorCode(t, recorder))
	})
}

func TestSecessionAdmin(t *testing.T) {
	env := setupTestEnvironment(t)
	caller := testutil.CreateAdmin(t, env.db, "boss")
	target := testutil.CreateAdmin(t, env.db, "retiring")
	user := testutil.CreateMember(t, env.db, "user")
	router := env.router(caller)

	secede := func(memberID, nickname string) *httptest.ResponseRecorder {
		return testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodDelete,
			URL:    "/auth/admin/secession",
			Body:   auth.AdminSecessionRequest{MemberID: memberID, Nickname: nickname},
		})
	}

	recorder := secede(target.ID, "wrong")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "MEMBER-001", errorCode(t, recorder))

	recorder = secede(user.ID, "user")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = secede(target.ID, "retiring")
	require.Equal(t, http.StatusNoContent, recorder.Code)

	var withdrawn model.Member
	require.NoError(t, env.db.Unscoped().First(&withdrawn, "id = ?", target.ID).Error)
	assert.True(t, withdrawn.DeletedAt.Valid)
	assert.Nil(t, withdrawn.AuthUserID)

	// already withdrawn
	assert.Equal(t, http.StatusNotFound, secede(target.ID, "retiring").Code)
}

func stringPtr(s string) *string {
	return &s
}
