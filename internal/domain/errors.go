package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation signals malformed caller input.
	ErrValidation = errors.New("validation failed")
)

// ValidationError wraps ErrValidation with the offending field and a
// user-facing message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a field-level validation error.
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
