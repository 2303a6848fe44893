package port

import (
	"context"

	"github.com/google/uuid"

	"todos/internal/core/domain"
	"todos/internal/core/model/request"
)

type CredentialService interface {
	HashPassword(plain string) (string, error)
	VerifyPassword(plain, hash string) bool
	IssueToken(userID uuid.UUID) (string, error)
	VerifyToken(token string) (uuid.UUID, error)
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (string, error)
	Login(ctx context.Context, req *request.LoginRequest) (string, error)
	// Resolve maps a bearer token to its live user. Any failure is ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (domain.User, error)
}
