package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Login        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
