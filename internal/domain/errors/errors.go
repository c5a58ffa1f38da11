package errors

import (
	"errors"
	"fmt"
)

// Closed set of domain errors. Handlers branch on these with errors.Is;
// anything outside the set is surfaced as an opaque internal error.
var (
	ErrInternal   = errors.New("internal server error")
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("invalid request")

	// Authentication errors. A missing user and a wrong password both map
	// to ErrInvalidCredentials so the response never reveals which one it
	// was. ErrInvalidToken covers every refresh failure the same way: a
	// forged, expired, rotated-away or revoked token is indistinguishable
	// to the caller.
	ErrEmailNotAllowed    = errors.New("school email required")
	ErrEmailExists        = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrRateLimitExceeded  = errors.New("too many requests")

	ErrSubjectNotFound = errors.New("subject not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSessionNotFound = errors.New("study session not found")
	ErrUserNotFound    = errors.New("user not found")
)

// AppError enriches a domain error with a user-facing message and a stable
// API error code.
type AppError struct {
	Err     error
	Message string
	Code    string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, code string) *AppError {
	return &AppError{Err: err, Message: message, Code: code}
}

// IsNotFound reports whether err denotes a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsUnauthorized reports whether err must map to a 401.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken)
}
