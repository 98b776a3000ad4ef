package domain

import (
	"errors"
	"strings"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("the provided credentials are incorrect")
	ErrEmailTaken         = errors.New("the email has already been taken")
	ErrUserHasTasks       = errors.New("cannot delete user because they have assigned tasks")
	ErrTokenRevoked       = errors.New("token is no longer valid")
)

// ValidationError carries per-field messages for malformed or out-of-range
// input. The central error handler renders it as a 422 with the field map as
// the envelope data.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, m := range e.Fields {
		msgs = append(msgs, m)
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
