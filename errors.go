package medichat

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates input failed client-side validation. No
	// network call is made when it is returned.
	ErrValidation = errors.New("validation error")

	// ErrBusy indicates a chat turn was submitted while another is pending.
	ErrBusy = errors.New("chat request already in flight")

	// ErrUnauthorized indicates the server rejected the session token (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the identity lacks the required role (403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotLoggedIn indicates an operation needed a token and none is stored.
	ErrNotLoggedIn = errors.New("not logged in")
)

// Error is a non-OK response from the MediChat API. Detail holds the
// server-provided "detail" field when the body carried one.
type Error struct {
	Status int
	Detail string
}

// Is maps 401 to ErrUnauthorized and 403 to ErrForbidden so callers can
// branch on status class with errors.Is.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == 401
	case ErrForbidden:
		return e.Status == 403
	}
	return false
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Detail)
}

// ErrorDetail returns the server-provided detail of err, or fallback when err
// is not an *Error or carries no detail.
func ErrorDetail(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// ValidationError carries a user-facing message for a rejected form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
