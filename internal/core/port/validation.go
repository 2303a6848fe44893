package port

import "todos/internal/core/domain"

type Validator interface {
	// Validate returns one FieldError per failing field, or nil.
	Validate(s any) []domain.FieldError
}
