// Package apperror defines the domain error taxonomy shared by the service
// and handler layers. Services return *AppError values; handlers map the
// wrapped sentinel to an HTTP status and a stable error code.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrValidation      = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrPathNotFound    = errors.New("career path not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInternal        = errors.New("internal")
)

type AppError struct {
	Err     error  // sentinel, matched with errors.Is
	Message string // Human-readable error message, shown to the client verbatim
	Field   string // Optional: request field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Unauthenticated means no usable session identity was presented.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// PathNotFound is returned when a career path slug does not resolve.
func PathNotFound(slug string) *AppError {
	return &AppError{
		Err:     ErrPathNotFound,
		Message: fmt.Sprintf("career path %q not found", slug),
		Field:   "careerPathSlug",
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Internal marks a failure that is the server's fault but was detected
// explicitly (as opposed to a store error bubbling up untyped).
func Internal(message string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrInternal, cause),
		Message: message,
	}
}

// IsNotFound reports whether err carries ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
