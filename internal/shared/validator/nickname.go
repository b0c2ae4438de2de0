package validator

import (
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	NicknameMinLength = 2
	NicknameMaxLength = 10
)

var (
	// nicknameRegex allows Hangul syllables, latin letters, digits and underscore
	nicknameRegex = regexp.MustCompile(`^[가-힣a-zA-Z0-9_]+$`)
)

// IsValidNickname checks length (2-10 characters, not bytes) and charset
func IsValidNickname(nickname string) bool {
	length := utf8.RuneCountInString(nickname)
	if length < NicknameMinLength || length > NicknameMaxLength {
		return false
	}
	return nicknameRegex.MatchString(nickname)
}

// ValidateNickname is the "nickname" binding tag
func ValidateNickname(fl validator.FieldLevel) bool {
	return IsValidNickname(fl.Field().String())
}
