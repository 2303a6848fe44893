package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"todos/internal/core/domain"
	"todos/internal/core/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo}
}

// Create relies on the store's unique index on login; a duplicate comes back
// as domain.ErrLoginTaken.
func (us *UserService) Create(ctx context.Context, login, name, passwordHash string) (domain.User, error) {
	return us.repo.Create(ctx, domain.User{
		ID:           uuid.New(),
		Login:        login,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
}

func (us *UserService) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	return us.repo.GetByLogin(ctx, login)
}

func (us *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return us.repo.GetByID(ctx, id)
}
