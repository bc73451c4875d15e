package errors

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// NewAPIError creates a new APIError with the given parameters
func NewAPIError(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Predefined error types for common scenarios
var (
	ErrInvalidRequest  = NewAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrInvalidParam    = NewAPIError(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value")
	ErrResourceMissing = NewAPIError(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrInternalServer  = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ToAPIError maps an application error onto its HTTP representation. Unknown
// errors surface as an internal server error without leaking internals.
func ToAPIError(err error) *APIError {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return ErrInternalServer
	}

	switch appErr.Type {
	case ErrTypeNotFound:
		return &APIError{
			StatusCode: http.StatusNotFound,
			ErrorCode:  "NOT_FOUND",
			Message:    appErr.Message,
		}
	case ErrTypeValidation:
		return &APIError{
			StatusCode: http.StatusUnprocessableEntity,
			ErrorCode:  "VALIDATION_FAILED",
			Message:    appErr.Message,
			Details:    appErr.Context,
		}
	default:
		return &APIError{
			StatusCode: http.StatusInternalServerError,
			ErrorCode:  string(appErr.Type),
			Message:    appErr.Message,
		}
	}
}
