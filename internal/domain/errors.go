package domain

import (
	"errors"
	"fmt"
)

// Error sentinels. Handlers map these onto HTTP status codes; everything
// else surfaces as an internal error with a generic message.
var (
	// ErrValidation marks malformed or semantically invalid input. 400.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a uniqueness or state conflict, e.g. a duplicate
	// twitter handle. Reported as 400 to match the public API contract.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a missing entity. 404.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks missing or invalid credentials. 401.
	ErrUnauthorized = errors.New("unauthorized")
)

// Validationf builds an ErrValidation with a caller-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// Conflictf builds an ErrConflict with a caller-facing message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

// NotFoundf builds an ErrNotFound with a caller-facing message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}
