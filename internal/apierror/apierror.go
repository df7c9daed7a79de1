// Package apierror defines the error taxonomy returned by the HTTP
// surface. Handlers build these, the server error handler renders them.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common failure classes.
var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrBadRequest is returned when the request payload or parameters are invalid.
	ErrBadRequest = errors.New("invalid request")

	// ErrUnauthorized is returned when the caller is not authenticated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when a write collides with existing data.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable is returned when the backend cannot be reached.
	ErrUnavailable = errors.New("service unavailable")
)

// Error carries an HTTP status, a message safe to show callers, and the
// underlying cause.
type Error struct {
	Status  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with an explicit status.
func New(status int, message string, cause error) *Error {
	return &Error{Status: status, Message: message, Cause: cause}
}

// NotFound creates a 404 error.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message, Cause: ErrNotFound}
}

// BadRequest creates a 400 error.
func BadRequest(message string, cause error) *Error {
	if cause == nil {
		cause = ErrBadRequest
	}
	return &Error{Status: http.StatusBadRequest, Message: message, Cause: cause}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message, Cause: ErrUnauthorized}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message, Cause: ErrForbidden}
}

// Conflict creates a 409 error.
func Conflict(message string, cause error) *Error {
	if cause == nil {
		cause = ErrConflict
	}
	return &Error{Status: http.StatusConflict, Message: message, Cause: cause}
}

// Internal creates a 500 error. The cause is logged, never shown.
func Internal(message string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Cause: cause}
}

// Unavailable creates a 503 error.
func Unavailable(message string, cause error) *Error {
	if cause == nil {
		cause = ErrUnavailable
	}
	return &Error{Status: http.StatusServiceUnavailable, Message: message, Cause: cause}
}

// StatusOf extracts the HTTP status from err, defaulting to 500.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsBadRequest checks if an error is an invalid request error.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}
