package support_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/histolook/go-api-server/internal/alarm"
	"github.com/histolook/go-api-server/internal/model"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/pagination"
	"github.com/histolook/go-api-server/internal/shared/testutil"
	"github.com/histolook/go-api-server/internal/support"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db      *gorm.DB
	handler *support.SupportHandler
}

func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	alarmService := alarm.NewAlarmService(db, alarm.NewDeviceTokenRepository(), alarm.NewAlarmRepository(), testutil.NewFakePusher())
	supportService := support.NewSupportService(db, support.NewSupportRepository(), alarmService)

	return &testEnv{
		db:      db,
		handler: support.NewSupportHandler(supportService),
	}
}

// routerFor mounts the member routes and, for admins, the admin routes
func (e *testEnv) routerFor(caller *model.Member) *gin.Engine {
	router := testutil.SetupTestRouter()
	group := router.Group("/support", testutil.AuthAs(caller.ID, caller.Nickname, string(caller.Role)))
	group.POST("", e.handler.CreateSupport)
	group.GET("", e.handler.GetMySupports)
	group.GET("/admin", e.handler.AdminGetSupports)
	group.PATCH("/admin/:supportId/reply", e.handler.AdminReplySupport)
	group.DELETE("/admin/:supportId", e.handler.AdminDeleteSupport)
	group.GET("/:supportId", e.handler.GetSupport)
	return router
}

func createSupport(t *testing.T, router *gin.Engine, title string) uint32 {
	t.Helper()
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/support",
		Body: support.CreateSupportRequest{
			SupportType: "ACCOUNT",
			Title:       title,
			Content:     "닉네임을 바꾸고 싶어요",
		},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response support.SupportIDResponse
	testutil.ParseContent(t, recorder, &response)
	return response.SupportID
}

func getSupport(t *testing.T, router *gin.Engine, id uint32) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("/support/%d", id),
	})
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	return errorResponse.Code
}

func TestCreateSupport_StartsPending(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	owner := testutil.CreateMember(t, env.db, "owner")
	router := env.routerFor(owner)

	// When
	id := createSupport(t, router, "닉네임 변경")

	// Then
	recorder := getSupport(t, router, id)
	require.Equal(t, http.StatusOK, recorder.Code)
	var response support.SupportResponse
	testutil.ParseContent(t, recorder, &response)
	assert.Equal(t, string(model.SupportStatusPending), response.Status)
	assert.Equal(t, "ACCOUNT", response.SupportType)
	assert.Nil(t, response.Reply)
}

func TestCreateSupport_Validation(t *testing.T) {
	env := setupTestEnvironment(t)
	owner := testutil.CreateMember(t, env.db, "owner")
	router := env.routerFor(owner)

	testCases := []struct {
		name string
		body support.CreateSupportRequest
	}{
		{"unknown type", support.CreateSupportRequest{SupportType: "REFUND", Title: "환불", Content: "환불해 주세요"}},
		{"title too long", support.CreateSupportRequest{SupportType: "ETC", Title: strings.Repeat("가", 31), Content: "내용"}},
		{"content too long", support.CreateSupportRequest{SupportType: "ETC", Title: "제목", Content: strings.Repeat("a", 301)}},
		{"missing content", support.CreateSupportRequest{SupportType: "ETC", Title: "제목"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/support",
				Body:   tc.body,
			})

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, "ERROR-001", errorCode(t, recorder))
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&model.SupportPost{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetSupport_OwnerOnly(t *testing.T) {
	env := setupTestEnvironment(t)
	owner := testutil.CreateMember(t, env.db, "owner")
	stranger := testutil.CreateMember(t, env.db, "stranger")
	id := createSupport(t, env.routerFor(owner), "문의")

	recorder := getSupport(t, env.routerFor(stranger), id)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "SUPPORT-001", errorCode(t, recorder))

	recorder = getSupport(t, env.routerFor(owner), id+100)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = testutil.ExecuteRequest(t, env.routerFor(owner), testutil.TestRequest{Method: http.MethodGet, URL: "/support/abc"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "ERROR-005", errorCode(t, recorder))
}

func TestGetMySupports(t *testing.T) {
	// Given: 21 tickets of the owner and one of someone else
	env := setupTestEnvironment(t)
	owner := testutil.CreateMember(t, env.db, "owner")
	other := testutil.CreateMember(t, env.db, "other")
	for i := 0; i < pagination.DefaultSize+1; i++ {
		require.NoError(t, env.db.Create(model.NewSupportPost(owner.ID, model.SupportTypeEtc, fmt.Sprintf("문의 %d", i), "내용")).Error)
	}
	require.NoError(t, env.db.Create(model.NewSupportPost(other.ID, model.SupportTypeEtc, "남의 문의", "내용")).Error)
	router := env.routerFor(owner)

	list := func(url string) pagination.Result[support.SupportSummary] {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: url})
		require.Equal(t, http.StatusOK, recorder.Code)
		var result pagination.Result[support.SupportSummary]
		testutil.ParseContent(t, recorder, &result)
		return result
	}

	// When / Then
	first := list("/support?page=1")
	assert.Len(t, first.Items, pagination.DefaultSize)
	assert.True(t, first.HasNext)

	second := list("/support?page=2")
	require.Len(t, second.Items, 1)
	assert.False(t, second.HasNext)
	assert.NotEqual(t, "남의 문의", second.Items[0].Title)
}

func TestAdminReplySupport_ScenarioD(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	owner := testutil.CreateMember(t, env.db, "owner")
	admin := testutil.CreateAdmin(t, env.db, "admin")
	id := createSupport(t, env.routerFor(owner), "문의")
	adminRouter := env.routerFor(admin)

	reply := func(text string) *httptest.ResponseRecorder {
		return testutil.ExecuteRequest(t, adminRouter, testutil.TestRequest{
			Method: http.MethodPatch,
			URL:    fmt.Sprintf("/support/admin/%d/reply", id),
			Body:   support.ReplySupportRequest{Reply: text},
		})
	}

	// When: first reply
	recorder := reply("확인했습니다")

	// Then: answered
	require.Equal(t, http.StatusOK, recorder.Code)
	var answered support.SupportResponse
	testutil.ParseContent(t, recorder, &answered)
	assert.Equal(t, string(model.SupportStatusAnswered), answered.Status)

	// When: second reply
	recorder = reply("처리 완료했습니다")

	// Then: accepted again and overwritten
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = getSupport(t, env.routerFor(owner), id)
	require.Equal(t, http.StatusOK, recorder.Code)
	var stored support.SupportResponse
	testutil.ParseContent(t, recorder, &stored)
	assert.Equal(t, string(model.SupportStatusAnswered), stored.Status)
	require.NotNil(t, stored.Reply)
	assert.Equal(t, "처리 완료했습니다", *stored.Reply)

	// the owner got an alarm per reply
	var alarms int64
	require.NoError(t, env.db.Model(&model.Alarm{}).Where("member_id = ?", owner.ID).Count(&alarms).Error)
	assert.Equal(t, int64(2), alarms)

	// unknown ticket
	recorder = testutil.ExecuteRequest(t, adminRouter, testutil.TestRequest{
		Method: http.MethodPatch,
		URL:    "/support/admin/9999/reply",
		Body:   support.ReplySupportRequest{Reply: "?"},
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAdminGetSupports_OnePerPage(t *testing.T) {
	env := setupTestEnvironment(t)
	owner := testutil.CreateMember(t, env.db, "owner")
	other := testutil.CreateMember(t, env.db, "other")
	admin := testutil.CreateAdmin(t, env.db, "admin")
	createSupport(t, env.routerFor(owner), "첫 문의")
	createSupport(t, env.routerFor(other), "두번째 문의")
	router := env.routerFor(admin)

	list := func(url string) pagination.Result[support.SupportResponse] {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: url})
		require.Equal(t, http.StatusOK, recorder.Code)
		var result pagination.Result[support.SupportResponse]
		testutil.ParseContent(t, recorder, &result)
		return result
	}

	first := list("/support/admin?page=1")
	require.Len(t, first.Items, 1)
	assert.True(t, first.HasNext)

	second := list("/support/admin?page=2")
	require.Len(t, second.Items, 1)
	assert.False(t, second.HasNext)
	assert.NotEqual(t, first.Items[0].ID, second.Items[0].ID)
}

func TestAdminDeleteSupport(t *testing.T) {
	env := setupTestEnvironment(t)
	owner := testutil.CreateMember(t, env.db, "owner")
	admin := testutil.CreateAdmin(t, env.db, "admin")
	id := createSupport(t, env.routerFor(owner), "문의")
	router := env.routerFor(admin)
	url := fmt.Sprintf("/support/admin/%d", id)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: url})
	require.Equal(t, http.StatusNoContent, recorder.Code)

	var count int64
	require.NoError(t, env.db.Model(&model.SupportPost{}).Where("id = ?", id).Count(&count).Error)
	assert.Zero(t, count)

	assert.Equal(t, http.StatusNotFound, getSupport(t, env.routerFor(owner), id).Code)
	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: url})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
