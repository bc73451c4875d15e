package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewValidationError("bad schema"),
			want: "[VALIDATION] bad schema",
		},
		{
			name: "with cause",
			err:  NewStorageError("write snapshot", fmt.Errorf("disk full")),
			want: "[STORAGE] write snapshot: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := NewAcquisitionError("pull failed", cause)

	assert.True(t, stderrors.Is(err, cause))

	var appErr *AppError
	require.True(t, stderrors.As(fmt.Errorf("stage: %w", err), &appErr))
	assert.Equal(t, ErrTypeAcquisition, appErr.Type)
}

func TestNewMissingCurrencyError(t *testing.T) {
	err := NewMissingCurrencyError("spot", []string{"CHF", "SEK"})

	assert.Equal(t, ErrTypeValidation, err.Type)
	assert.Equal(t, "spot", err.Context["table"])
	assert.Equal(t, []string{"CHF", "SEK"}, err.Context["missing"])
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        NewNotFoundError("returns dataset"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "validation",
			err:        NewMissingCurrencyError("rates", []string{"JPY"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "storage maps to 500",
			err:        NewStorageError("open", fmt.Errorf("no such file")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "STORAGE",
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("plain"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "wrapped app error",
			err:        fmt.Errorf("calc stage: %w", NewNotFoundError("spot snapshot")),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ToAPIError(tt.err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}
