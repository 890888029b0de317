// Package apperr defines the error taxonomy shared by repositories and
// HTTP handlers: validation, not-found, conflict and authentication
// failures each map to a distinct status code at the boundary.
package apperr

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a record does not exist (or no longer
// exists) for the requested id.
var ErrNotFound = errors.New("record not found")

// ValidationError carries one message per failing field. Messages are
// joined into a single human-readable string, the same way the API
// reports them.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "، ")
}

// NewValidation builds a ValidationError from field messages.
func NewValidation(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// ConflictError reports a uniqueness violation, e.g. a duplicate SKU.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
