package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/histolook/go-api-server/internal/shared/context"
	"github.com/histolook/go-api-server/internal/shared/validator"
)

// SetupTestRouter creates a test Gin router without middleware
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	// Register custom validators for testing
	_ = validator.RegisterAll()

	return gin.New()
}

// AuthAs stands in for the JWT middleware by storing a fixed principal
func AuthAs(memberID, nickname, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sharedContext.MemberIDKey, memberID)
		c.Set(sharedContext.NicknameKey, nickname)
		c.Set(sharedContext.RoleKey, role)
		c.Next()
	}
}

// TestRequest describes one HTTP call made through ExecuteRequest
type TestRequest struct {
	Method  string
	URL     string
	Body    interface{}
	Headers map[string]string
}

// ExecuteRequest executes a test HTTP request and returns the response
func ExecuteRequest(t *testing.T, router *gin.Engine, req TestRequest) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.URL, bodyReader)
	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httpReq)

	return recorder
}

// ParseResponse parses the JSON response body into the given struct
func ParseResponse(t *testing.T, recorder *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(recorder.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to parse response body: %v", err)
	}
}

// ParseContent unwraps the success envelope and decodes its content
func ParseContent(t *testing.T, recorder *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	var envelope struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Content json.RawMessage `json:"content"`
	}
	ParseResponse(t, recorder, &envelope)

	if err := json.Unmarshal(envelope.Content, v); err != nil {
		t.Fatalf("Failed to parse response content: %v (body=%s)", err, recorder.Body.String())
	}
}
