package common

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents application-specific errors
type AppError struct {
	Kind    error // one of the sentinel errors below
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) Is(target error) bool {
	return target == e.Kind
}

// Pipeline error kinds. Every failure surfaced to a caller is one of these.
var (
	ErrMissingInput       = errors.New("missing input")
	ErrResolutionFailed   = errors.New("url resolution failed")
	ErrNoRecipeFound      = errors.New("no recipe found")
	ErrUpstreamEmpty      = errors.New("model returned no content")
	ErrInvalidModelOutput = errors.New("model output is not valid JSON")
	ErrRateLimited        = errors.New("upstream rate limited")
	ErrUpstreamAuth       = errors.New("upstream authentication failed")
	ErrTransientNetwork   = errors.New("transient network error")
)

// NewAppError builds a classified error. Message is safe to show to callers;
// Cause is for logs only.
func NewAppError(kind error, message string, cause error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus maps a classified error to the response status for the HTTP boundary.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingInput),
		errors.Is(err, ErrResolutionFailed),
		errors.Is(err, ErrNoRecipeFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the caller-facing message for an error. Raw upstream
// detail (model output, wrapped causes) stays in logs.
func UserMessage(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Internal server error"
}
