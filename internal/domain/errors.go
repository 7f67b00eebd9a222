package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated signals a missing or invalid session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotOwner signals a caller writing a record it is not linked to.
	ErrNotOwner = errors.New("not owner of target record")
	// ErrUnknownRole signals a role value outside the known set.
	ErrUnknownRole = errors.New("unknown role")
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate record.
	ErrAlreadyExists = errors.New("already exists")
	// ErrStoreUnavailable signals that the record store could not be reached.
	ErrStoreUnavailable = errors.New("record store unavailable")
	// ErrValidation signals a recoverable input validation failure.
	ErrValidation = errors.New("validation failed")
)

// FieldError wraps ErrValidation with the offending field and a message
// suitable for returning to the caller as-is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// NewFieldError creates a field-level validation error.
func NewFieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}
