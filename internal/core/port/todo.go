package port

import (
	"context"

	"github.com/google/uuid"

	"todos/internal/core/domain"
	"todos/internal/core/model/request"
)

// TodoRepository scopes every query by the owning user. A todo owned by
// someone else is reported as domain.ErrNotFound.
type TodoRepository interface {
	Get(ctx context.Context, userID, id uuid.UUID) (domain.Todo, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	Update(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	SwitchCompleted(ctx context.Context, userID, id uuid.UUID) (domain.Todo, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (domain.Todo, error)
}

type TodoService interface {
	Get(ctx context.Context, userID uuid.UUID, todoID string) (domain.Todo, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Todo, error)
	Upsert(ctx context.Context, userID uuid.UUID, req *request.UpsertTodoRequest) (domain.Todo, error)
	SwitchCompleted(ctx context.Context, userID uuid.UUID, todoID string) (domain.Todo, error)
	Delete(ctx context.Context, userID uuid.UUID, todoID string) (domain.Todo, error)
}
