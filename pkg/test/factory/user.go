package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const DefaultPassword = "12345678"

// NewUser builds a user with a fresh id and a bcrypt hash of DefaultPassword
// unless the overrides say otherwise.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	defaults := map[string]any{
		"ID":        uuid.New(),
		"CreatedAt": time.Now().UTC(),
	}

	hasPassword := false

	for _, data := range customData {
		if _, exists := data["PasswordHash"]; exists {
			hasPassword = true
			break
		}
	}

	if !hasPassword {
		hash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		defaults["PasswordHash"] = string(hash)
	}

	return instance.Build(merge(defaults, customData))
}
