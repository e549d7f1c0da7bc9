package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("vegetable not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError reports a missing or malformed input field. Nothing is
// written when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
