package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrInvalidInput, ErrInternal, ErrServiceUnavail}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("db connection lost")
	appErr := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "something broke")
	assert.Contains(t, appErr.Error(), "db connection lost")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "settings not found"}
	assert.Equal(t, "NOT_FOUND: settings not found", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "nope", Err: ErrNotFound}
	assert.True(t, errors.Is(appErr, ErrNotFound))
}

func TestNotFound(t *testing.T) {
	err := NotFound("settings", "42")
	require.NotNil(t, err)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Contains(t, err.Message, "settings")
	assert.Contains(t, err.Message, "42")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("shop key is malformed")
	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("product", "1"), http.StatusNotFound},
		{"wrapped app error", Wrap(ServiceUnavailable("down"), "search"), http.StatusServiceUnavailable},
		{"sentinel not found", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"sentinel invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
