package validator

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	sharedError "github.com/histolook/go-api-server/internal/shared/error"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	// 첫 번째 항목만 응답한다
	resp := sharedError.ValidationFailed
	resp.Message = getErrorMessage(validationErrors[0])
	return &resp, true
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "필수 항목을 입력해 주세요."
	case "email":
		return "이메일 형식이 올바르지 않습니다."
	case "uuid":
		return fmt.Sprintf("'%s' 항목은 UUID 형식이어야 합니다.", fe.Field())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("'%s' 항목은 최소 %s개 이상이어야 합니다.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("'%s' 항목은 최소 %s 이상이어야 합니다.", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("'%s' 항목은 최대 %s개까지 가능합니다.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("'%s' 항목은 최대 %s자까지 입력 가능합니다.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("'%s' 값은 %s 중 하나여야 합니다.", fe.Field(), fe.Param())
	case "nickname":
		return fmt.Sprintf("닉네임은 %d~%d자의 한글, 영문, 숫자, _ 만 사용할 수 있습니다.", NicknameMinLength, NicknameMaxLength)
	default:
		return fmt.Sprintf("'%s' 필드가 올바르지 않습니다.", fe.Field())
	}
}
