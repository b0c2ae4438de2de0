package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDomainError_Wrapped(t *testing.T) {
	err := fmt.Errorf("archive id=abc: %w", ErrInvalidID)

	resp, ok := ResolveDomainError(err)

	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "ERROR-005", resp.Code)
}

func TestResolveDomainError_Unregistered(t *testing.T) {
	_, ok := ResolveDomainError(NewDomainError("NOT_REGISTERED"))
	assert.False(t, ok)

	_, ok = ResolveDomainError(errors.New("plain"))
	assert.False(t, ok)
}

func TestMaskUnexpected(t *testing.T) {
	t.Run("domain error passes through", func(t *testing.T) {
		domainErr := fmt.Errorf("wrap: %w", ErrAdminOnly)
		assert.Same(t, domainErr, MaskUnexpected(domainErr))
	})

	t.Run("unexpected error becomes retry requested", func(t *testing.T) {
		masked := MaskUnexpected(errors.New("connection reset by peer"))

		assert.ErrorIs(t, masked, ErrRetryRequested)
		resp, ok := ResolveDomainError(masked)
		require.True(t, ok)
		assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
		assert.NotContains(t, resp.Message, "connection reset")
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, MaskUnexpected(nil))
	})
}
