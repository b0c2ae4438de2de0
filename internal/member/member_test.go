package member_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/histolook/go-api-server/internal/member"
	"github.com/histolook/go-api-server/internal/model"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/storage"
	"github.com/histolook/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestEnvironment wires the member handler against an in-memory database
// and registers routes authenticated as the given member
func setupTestEnvironment(t *testing.T) (*gorm.DB, func(m *model.Member) *gin.Engine) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	memberService := member.NewMemberService(db, member.NewMemberRepository(), testutil.NewFakeStorage(), 10*time.Minute)
	memberHandler := member.NewMemberHandler(memberService)

	routerFor := func(m *model.Member) *gin.Engine {
		router := testutil.SetupTestRouter()
		group := router.Group("/member", testutil.AuthAs(m.ID, m.Nickname, string(m.Role)))
		group.GET("/me", memberHandler.GetProfile)
		group.PATCH("/me", memberHandler.UpdateProfile)
		group.GET("/me/image/upload-url", memberHandler.IssueProfileImageUploadURL)
		group.PUT("/me/image", memberHandler.UpdateProfileImage)
		group.DELETE("/me/image", memberHandler.DeleteProfileImage)
		return router
	}
	return db, routerFor
}

func TestGetProfile_Success(t *testing.T) {
	// Given
	db, routerFor := setupTestEnvironment(t)
	foo := testutil.CreateMember(t, db, "foo")

	// When
	recorder := testutil.ExecuteRequest(t, routerFor(foo), testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/member/me",
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)

	var profile member.ProfileResponse
	testutil.ParseContent(t, recorder, &profile)
	assert.Equal(t, foo.ID, profile.ID)
	assert.Equal(t, "foo", profile.Nickname)
	assert.Equal(t, "USER", profile.Role)
	assert.Equal(t, "kakao", profile.Provider)
	assert.Equal(t, []string{"Nike"}, profile.BrandInterests)
	assert.Nil(t, profile.ImageURL)
}

func TestGetProfile_StaleTokenNicknameStillServed(t *testing.T) {
	// Given: token still carries the nickname from before a rename
	db, routerFor := setupTestEnvironment(t)
	foo := testutil.CreateMember(t, db, "foo")
	require.NoError(t, db.Model(&model.Member{}).Where("id = ?", foo.ID).Update("nickname", "renamed").Error)

	// When
	recorder := testutil.ExecuteRequest(t, routerFor(foo), testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/member/me",
	})

	// Then: stored data wins, request is not rejected
	require.Equal(t, http.StatusOK, recorder.Code)

	var profile member.ProfileResponse
	testutil.ParseContent(t, recorder, &profile)
	assert.Equal(t, "renamed", profile.Nickname)
}

func TestUpdateProfile(t *testing.T) {
	db, routerFor := setupTestEnvironment(t)
	foo := testutil.CreateMember(t, db, "foo")
	testutil.CreateMember(t, db, "bar")

	t.Run("nickname held by another live member", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, routerFor(foo), testutil.TestRequest{
			Method: http.MethodPatch,
			URL:    "/member/me",
			Body:   map[string]any{"nickname": "bar"},
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var errorResponse sharedError.ErrorResponse
		testutil.ParseResponse(t, recorder, &errorResponse)
		assert.Equal(t, "MEMBER-002", errorResponse.Code)
	})

	t.Run("too many brand interests", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, routerFor(foo), testutil.TestRequest{
			Method: http.MethodPatch,
			URL:    "/member/me",
			Body:   map[string]any{"brandInterests": []string{"Nike", "Adidas", "Stussy", "Supreme"}},
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var errorResponse sharedError.ErrorResponse
		testutil.ParseResponse(t, recorder, &errorResponse)
		assert.Equal(t, "MEMBER-004", errorResponse.Code)
	})

	t.Run("brand interest containing a comma", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, routerFor(foo), testutil.TestRequest{
			Method: http.MethodPatch,
			URL:    "/member/me",
			Body:   map[string]any{"brandInterests": []string{"Nike", "Comme des Garcons, Homme"}},
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var errorResponse sharedError.ErrorResponse
		testutil.ParseResponse(t, recorder, &errorResponse)
		assert.Equal(t, "MEMBER-004", errorResponse.Code)

		var stored model.Member
		require.NoError(t, db.First(&stored, "id = ?", foo.ID).Error)
		assert.Equal(t, model.BrandInterests{"Nike"}, stored.BrandInterests)
	})

	t.Run("nickname too short", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, routerFor(foo), testutil.TestRequest{
			Method: http.MethodPatch,
			URL:    "/member/me",
			Body:   map[string]any{"nickname": "f"},
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("success", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, routerFor(foo), testutil.TestRequest{
			Method: http.MethodPatch,
			URL:    "/member/me",
			Body:   map[string]any{"nickname": "newfoo", "brandInterests": []string{"Stussy", "Supreme"}},
		})

		require.Equal(t, http.StatusOK, recorder.Code)

		var stored model.Member
		require.NoError(t, db.First(&stored, "id = ?", foo.ID).Error)
		assert.Equal(t, "newfoo", stored.Nickname)
		assert.Equal(t, model.BrandInterests{"Stussy", "Supreme"}, stored.BrandInterests)
	})
}

func TestNicknameUniqueAmongLiveMembers(t *testing.T) {
	// Given: "foo" is taken by a live member
	db, _ := setupTestEnvironment(t)
	first := testutil.CreateMember(t, db, "foo")

	// When: a second live member takes the same nickname at the storage level
	duplicate := model.NewMember("other-auth-user", "foo", model.RoleUser, []string{"Nike"})
	err := db.Create(duplicate).Error

	// Then
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// When: the first member is soft-deleted, the nickname frees up
	require.NoError(t, db.Delete(&model.Member{}, "id = ?", first.ID).Error)
	reuse := model.NewMember("another-auth-user", "foo", model.RoleUser, []string{"Nike"})

	// Then
	assert.NoError(t, db.Create(reuse).Error)
}

func TestProfileImage(t *testing.T) {
	db, routerFor := setupTestEnvironment(t)
	foo := testutil.CreateMember(t, db, "foo")
	bar := testutil.CreateMember(t, db, "bar")
	router := routerFor(foo)

	t.Run("issue upload url under own prefix", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodGet,
			URL:    "/member/me/image/upload-url",
		})

		require.Equal(t, http.StatusOK, recorder.Code)
		var response member.ProfileImageUploadURLResponse
		testutil.ParseContent(t, recorder, &response)
		assert.True(t, storage.IsOwnedBy(response.ObjectName, storage.PrefixProfile, foo.ID))
		assert.NotEmpty(t, response.URL)
	})

	t.Run("reject object name of another member", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPut,
			URL:    "/member/me/image",
			Body:   member.UpdateProfileImageRequest{ObjectName: storage.NewObjectName(storage.PrefixProfile, bar.ID)},
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var errorResponse sharedError.ErrorResponse
		testutil.ParseResponse(t, recorder, &errorResponse)
		assert.Equal(t, "MEMBER-005", errorResponse.Code)
	})

	t.Run("set then delete own image", func(t *testing.T) {
		objectName := storage.NewObjectName(storage.PrefixProfile, foo.ID)
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPut,
			URL:    "/member/me/image",
			Body:   member.UpdateProfileImageRequest{ObjectName: objectName},
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		var stored model.Member
		require.NoError(t, db.First(&stored, "id = ?", foo.ID).Error)
		require.NotNil(t, stored.ImageURL)
		assert.Equal(t, testutil.PublicBaseURL+"/"+objectName, *stored.ImageURL)

		recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodDelete,
			URL:    "/member/me/image",
		})
		require.Equal(t, http.StatusNoContent, recorder.Code)

		var cleared model.Member
		require.NoError(t, db.First(&cleared, "id = ?", foo.ID).Error)
		assert.Nil(t, cleared.ImageURL)
	})
}
