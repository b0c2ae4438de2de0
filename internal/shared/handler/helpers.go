package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
	"github.com/histolook/go-api-server/internal/shared/pagination"
	"github.com/histolook/go-api-server/internal/shared/validator"
)

// Response is the success envelope returned by every endpoint with a body
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req JoinRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	return bind(c, obj, c.ShouldBindJSON)
}

// BindQuery is BindJSON for query strings
func BindQuery(c *gin.Context, obj any) bool {
	return bind(c, obj, c.ShouldBindQuery)
}

func bind(c *gin.Context, obj any, binder func(any) error) bool {
	if err := binder(obj); err != nil {
		// Add error to context for middleware logging
		c.Error(err)

		// Check if it's a validation error
		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(http.StatusBadRequest, resp)
		} else {
			// JSON parsing error or other binding errors
			c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
		}
		return false
	}
	return true
}

// RespondError sends an error response with logging
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging
	c.Error(err)

	// Send error response
	c.JSON(errResp.Status, errResp)
}

// HandleError resolves a registered domain error or falls back to 500
func HandleError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		RespondError(c, err, resp)
		return
	}
	RespondError(c, err, sharedError.InternalServerError)
}

func RespondOK(c *gin.Context, message string, content any) {
	c.JSON(http.StatusOK, Response{Status: http.StatusOK, Message: message, Content: content})
}

func RespondCreated(c *gin.Context, message string, content any) {
	c.JSON(http.StatusCreated, Response{Status: http.StatusCreated, Message: message, Content: content})
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// UUIDParam reads a path parameter that must be a UUID
// Returns false if malformed (response already sent)
func UUIDParam(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		HandleError(c, fmt.Errorf("%s=%q: %w", name, raw, sharedError.ErrInvalidID))
		return "", false
	}
	return raw, true
}

// UintParam reads a numeric path parameter
// Returns false if malformed (response already sent)
func UintParam(c *gin.Context, name string) (uint32, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		HandleError(c, fmt.Errorf("%s=%q: %w", name, raw, sharedError.ErrInvalidID))
		return 0, false
	}
	return uint32(id), true
}

// PageQuery reads the 1-indexed "page" query parameter. Non-numeric values
// fall back to page 1; numbers past pagination.MaxOffset get a 400.
func PageQuery(c *gin.Context, size int) (pagination.Page, bool) {
	raw := c.DefaultQuery("page", "1")
	number, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		HandleError(c, fmt.Errorf("page=%q: %w", raw, sharedError.ErrInvalidID))
		return pagination.Page{}, false
	}
	if err != nil {
		number = 1
	}

	page := pagination.New(number, size)
	if !page.InRange() {
		HandleError(c, fmt.Errorf("page=%d: %w", number, sharedError.ErrInvalidID))
		return pagination.Page{}, false
	}
	return page, true
}
