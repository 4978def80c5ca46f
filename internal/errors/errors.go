package errors

import (
	"errors"
	"fmt"
	"net/http"

	"minihr/internal/model"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrLeaveNotFound is returned when a leave request is not found.
	ErrLeaveNotFound = errors.New("leave request not found")
	// ErrNotOwner is returned when a user acts on a leave request they do not own.
	ErrNotOwner = errors.New("not authorized to modify this leave request")
	// ErrDuplicateAttendance is returned when attendance was already marked for the day.
	ErrDuplicateAttendance = errors.New("attendance already marked for today")
	// ErrOverlap is returned when a new request conflicts with an active one.
	ErrOverlap = errors.New("a pending or approved leave already covers part of this period")
)

// ValidationError reports missing or malformed input to the accounting core.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientBalanceError reports a leave balance below the requested days.
// It carries both counts so callers can render them.
type InsufficientBalanceError struct {
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: %d days available, %d requested", e.Available, e.Requested)
}

// InvalidStateError reports a status transition attempted from a terminal state.
type InvalidStateError struct {
	Current model.LeaveStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("leave request is already %s", e.Current)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	var balanceErr *InsufficientBalanceError
	var stateErr *InvalidStateError

	switch {
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Error(), "VALIDATION_ERROR")
	case errors.As(err, &balanceErr):
		return NewHTTPError(http.StatusBadRequest, balanceErr.Error(), "INSUFFICIENT_BALANCE")
	case errors.As(err, &stateErr):
		return NewHTTPError(http.StatusBadRequest, stateErr.Error(), "INVALID_STATE")
	case errors.Is(err, ErrOverlap):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "LEAVE_OVERLAP")
	case errors.Is(err, ErrDuplicateAttendance):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_ATTENDANCE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrLeaveNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "LEAVE_NOT_FOUND")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NOT_OWNER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
