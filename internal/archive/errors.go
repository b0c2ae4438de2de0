package archive

import (
	"net/http"

	sharedError "github.com/histolook/go-api-server/internal/shared/error"
)

const (
	archiveNotFound            = "ARCHIVE_NOT_FOUND"            // errInfo
	archiveForbidden           = "ARCHIVE_FORBIDDEN"            // errInfo
	lookupNotFound             = "LOOKUP_NOT_FOUND"             // errInfo
	invalidFilter              = "INVALID_FILTER"               // errInfo
	invalidObjectName          = "INVALID_ARCHIVE_OBJECT_NAME"  // errInfo
	invalidJudgementPermission = "INVALID_JUDGEMENT_PERMISSION" // errInfo
	judgementNotAllowed        = "JUDGEMENT_NOT_ALLOWED"        // errInfo
	invalidPrice               = "INVALID_PRICE"                // errInfo
	alreadyJudged              = "ALREADY_JUDGED"               // errInfo
	interestNotFound           = "INTEREST_NOT_FOUND"           // errInfo
)

var (
	ErrArchiveNotFound            = sharedError.NewDomainError(archiveNotFound)
	ErrArchiveForbidden           = sharedError.NewDomainError(archiveForbidden)
	ErrLookupNotFound             = sharedError.NewDomainError(lookupNotFound)
	ErrInvalidFilter              = sharedError.NewDomainError(invalidFilter)
	ErrInvalidObjectName          = sharedError.NewDomainError(invalidObjectName)
	ErrInvalidJudgementPermission = sharedError.NewDomainError(invalidJudgementPermission)
	ErrJudgementNotAllowed        = sharedError.NewDomainError(judgementNotAllowed)
	ErrInvalidPrice               = sharedError.NewDomainError(invalidPrice)
	ErrAlreadyJudged              = sharedError.NewDomainError(alreadyJudged)
	ErrInterestNotFound           = sharedError.NewDomainError(interestNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(archiveNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "ARCHIVE-001",
		Message: "아카이브를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(archiveForbidden, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "ARCHIVE-002",
		Message: "작성자만 수정하거나 삭제할 수 있습니다.",
	})

	sharedError.RegisterDomainErrorResponse(lookupNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "ARCHIVE-003",
		Message: "존재하지 않는 브랜드, 시대 또는 카테고리입니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidFilter, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ARCHIVE-004",
		Message: "잘못된 필터입니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidObjectName, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ARCHIVE-005",
		Message: "업로드되지 않은 이미지입니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidJudgementPermission, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ARCHIVE-006",
		Message: "판정을 허용해야 가격 판정을 허용할 수 있습니다.",
	})

	sharedError.RegisterDomainErrorResponse(judgementNotAllowed, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "JUDGEMENT-001",
		Message: "판정이 허용되지 않은 아카이브입니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidPrice, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "JUDGEMENT-002",
		Message: "가격을 입력할 수 없는 판정입니다.",
	})

	sharedError.RegisterDomainErrorResponse(alreadyJudged, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "JUDGEMENT-003",
		Message: "이미 판정한 아카이브입니다.",
	})

	sharedError.RegisterDomainErrorResponse(interestNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "INTEREST-001",
		Message: "관심 등록된 아카이브가 아닙니다.",
	})
}
