package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrLoginTaken      = errors.New("login already taken")
)

type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates every input problem found for one operation.
type ValidationError struct {
	Errors []FieldError
}

func NewValidationError(errs ...FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		messages = append(messages, fe.Message)
	}

	return "Invalid input: " + strings.Join(messages, "; ") + "."
}

// UnauthenticatedError carries the reason shown to the client.
type UnauthenticatedError struct {
	Reason string
}

func (e *UnauthenticatedError) Error() string {
	return e.Reason
}

func (e *UnauthenticatedError) Is(target error) bool {
	return target == ErrUnauthenticated
}

func Unauthenticated(reason string) error {
	return &UnauthenticatedError{Reason: reason}
}
