package gitscribe

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyInput is returned when a chat request carries no messages.
var ErrEmptyInput = errors.New("empty input")

// ErrorCategory says whether a failed backend call is worth repeating.
type ErrorCategory string

const (
	// ErrorTransient covers rate limits, overloaded backends and dropped
	// connections. The call is retried.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent covers rejected credentials and unknown model codes.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput means the backend refused this prompt, usually because
	// the diff overflowed the context window.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is implemented by backend failures that know their category.
type CategorizedError interface {
	error
	Category() ErrorCategory
	Retryable() bool
	StatusCode() int           // 0 when no HTTP exchange took place
	RetryAfter() time.Duration // 0 when the backend sent no hint
}

// Error is the categorized failure returned by every chat backend.
type Error struct {
	Msg        string
	Cat        ErrorCategory
	Code       int
	RetryDelay time.Duration // Retry-After, if sent
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Msg {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Category() ErrorCategory { return e.Cat }

func (e *Error) Retryable() bool { return e.Cat == ErrorTransient }

func (e *Error) StatusCode() int { return e.Code }

func (e *Error) RetryAfter() time.Duration { return e.RetryDelay }

// NewUserInputError reports a prompt the backend refused.
func NewUserInputError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorUserInput, Code: statusCode, Cause: cause}
}

// CategorizeStatus maps an HTTP status code to an error category.
func CategorizeStatus(code int) ErrorCategory {
	switch {
	case code == 429, code >= 500 && code < 600:
		return ErrorTransient
	case code == 400, code == 404, code == 413, code == 422:
		return ErrorUserInput
	default:
		return ErrorPermanent
	}
}

// NewStatusError builds a categorized error from an HTTP status code. A
// Retry-After hint makes the error transient whatever the status.
func NewStatusError(msg string, statusCode int, retryAfter time.Duration, cause error) *Error {
	cat := CategorizeStatus(statusCode)
	if retryAfter > 0 {
		cat = ErrorTransient
	}
	return &Error{Msg: msg, Cat: cat, Code: statusCode, RetryDelay: retryAfter, Cause: cause}
}

func categoryOf(err error) (CategorizedError, bool) {
	var ce CategorizedError
	ok := errors.As(err, &ce)
	return ce, ok
}

// IsTransient reports whether err, or any error it wraps, is transient.
func IsTransient(err error) bool {
	ce, ok := categoryOf(err)
	return ok && ce.Category() == ErrorTransient
}

// IsPermanent reports whether err, or any error it wraps, is permanent.
func IsPermanent(err error) bool {
	ce, ok := categoryOf(err)
	return ok && ce.Category() == ErrorPermanent
}

// IsUserInput reports whether err, or any error it wraps, was a refused prompt.
func IsUserInput(err error) bool {
	ce, ok := categoryOf(err)
	return ok && ce.Category() == ErrorUserInput
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	if ce, ok := categoryOf(err); ok {
		return ce.StatusCode()
	}
	return 0
}

// RetryAfterOf returns the retry hint carried by err, or 0.
func RetryAfterOf(err error) time.Duration {
	if ce, ok := categoryOf(err); ok {
		return ce.RetryAfter()
	}
	return 0
}
