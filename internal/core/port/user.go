package port

import (
	"context"

	"github.com/google/uuid"

	"todos/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByLogin(ctx context.Context, login string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

type UserService interface {
	Create(ctx context.Context, login, name, passwordHash string) (domain.User, error)
	GetByLogin(ctx context.Context, login string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}
