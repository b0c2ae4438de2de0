package error

import (
	"errors"
	"net/http"
)

type DomainError interface {
	error // Embed standard error interface
	Info() string
}

type domainSentinel struct {
	errInfo string
}

func (e *domainSentinel) Error() string {
	return e.errInfo
}

func (e *domainSentinel) Info() string {
	return e.errInfo
}

// ErrorResponse is the JSON response structure for errors
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"` // client message
}

const (
	retryRequested = "RETRY_REQUESTED" // errInfo
	invalidID      = "INVALID_ID"      // errInfo
	adminOnly      = "ADMIN_ONLY"      // errInfo
)

// Common errors
var (
	domainErrorResponses = map[string]ErrorResponse{}

	// ValidationFailed indicates the request payload failed validation
	ValidationFailed = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-001", // METHOD_ARGUMENT_NOT_VALID
		Message: "잘못된 요청입니다.",
	}

	// InvalidRequest indicates the request format is invalid (e.g., JSON parsing error)
	InvalidRequest = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-002", // INVALID_REQUEST
		Message: "잘못된 요청 형식입니다.",
	}

	// InternalServerError indicates an unexpected server error
	InternalServerError = ErrorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "ERROR-003", // INTERNAL_SERVER_ERROR
		Message: "서버 내부 오류가 발생했습니다.",
	}

	// ErrRetryRequested replaces unexpected persistence failures on write paths
	ErrRetryRequested = NewDomainError(retryRequested)
	// ErrInvalidID is returned for malformed path/query identifiers
	ErrInvalidID = NewDomainError(invalidID)
	// ErrAdminOnly is returned when a non-admin calls an admin route
	ErrAdminOnly = NewDomainError(adminOnly)
)

func init() {
	RegisterDomainErrorResponse(retryRequested, ErrorResponse{
		Status:  http.StatusServiceUnavailable,
		Code:    "ERROR-004",
		Message: "일시적으로 요청을 처리할 수 없습니다. 잠시 후 다시 시도해 주세요.",
	})

	RegisterDomainErrorResponse(invalidID, ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-005",
		Message: "잘못된 식별자입니다.",
	})

	RegisterDomainErrorResponse(adminOnly, ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "ERROR-006",
		Message: "관리자만 접근할 수 있습니다.",
	})
}

// NewDomainError creates a sentinel error that can participate in error chains.
func NewDomainError(errInfo string) DomainError {
	return &domainSentinel{errInfo: errInfo}
}

// RegisterDomainErrorResponse registers a mapping between a domain error errInfo and a shared error response.
func RegisterDomainErrorResponse(errInfo string, resp ErrorResponse) {
	domainErrorResponses[errInfo] = resp
}

// ResolveDomainError converts a domain error into a shared error response if a mapping exists.
func ResolveDomainError(err error) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}

	var domainErr DomainError
	if errors.As(err, &domainErr) {
		if resp, ok := domainErrorResponses[domainErr.Info()]; ok {
			return resp, true
		}
	}
	return ErrorResponse{}, false
}

// IsDomainError reports whether err wraps a registered domain error
func IsDomainError(err error) bool {
	_, ok := ResolveDomainError(err)
	return ok
}

// MaskUnexpected lets declared domain errors through unchanged and replaces
// anything else with ErrRetryRequested. The original cause stays in the chain
// text for logging but is never resolved to the client.
func MaskUnexpected(err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return &maskedError{cause: err}
}

type maskedError struct {
	cause error
}

func (e *maskedError) Error() string {
	return retryRequested + ": " + e.cause.Error()
}

func (e *maskedError) Unwrap() error {
	return ErrRetryRequested
}
