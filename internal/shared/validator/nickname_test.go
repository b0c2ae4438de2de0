package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidNickname(t *testing.T) {
	testCases := []struct {
		nickname string
		valid    bool
	}{
		{"foo", true},
		{"빈티지러버", true},
		{"archive_99", true},
		{"a", false},
		{"열글자를넘는아주긴닉네임", false},
		{"공백 있음", false},
		{"emoji🙂", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.nickname, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidNickname(tc.nickname))
		})
	}
}
