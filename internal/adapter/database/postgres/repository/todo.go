package repository

import (
	"context"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"todos/internal/adapter/database/postgres"
	"todos/internal/core/domain"
	"todos/internal/core/port"
	tel "todos/internal/core/telemetry"
)

var todoColumns = []string{"id", "title", "completed", "target_date", "user_id", "created_at"}

type TodoRepository struct {
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewTodoRepository(db *postgres.DB, telemetry port.Telemetry) port.TodoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpTelemetry()
	}

	return &TodoRepository{db: db, telemetry: telemetry}
}

func owned(userID, id uuid.UUID) sq.Eq {
	return sq.Eq{"id": id, "user_id": userID}
}

func (tr *TodoRepository) Get(ctx context.Context, userID, id uuid.UUID) (todo domain.Todo, err error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Get", "todos")
	defer span.End()
	defer tr.record(ctx, "Get", time.Now(), &err)

	stmt, args, err := tr.db.QueryBuilder.
		Select(todoColumns...).
		From("todos").
		Where(owned(userID, id)).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	todo, err = scanTodo(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		return domain.Todo{}, postgres.MapError(err)
	}

	return todo, nil
}

func (tr *TodoRepository) List(ctx context.Context, userID uuid.UUID) (todos []domain.Todo, err error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "List", "todos")
	defer span.End()
	defer tr.record(ctx, "List", time.Now(), &err)

	stmt, args, err := tr.db.QueryBuilder.
		Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("target_date ASC", "created_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		slog.Error("TodoRepository#List", "error", err)
		return nil, err
	}

	defer rows.Close()

	todos = make([]domain.Todo, 0)

	for rows.Next() {
		todo, err := scanTodo(rows)

		if err != nil {
			return nil, err
		}

		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (created domain.Todo, err error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Create", "todos")
	defer span.End()
	defer tr.record(ctx, "Create", time.Now(), &err)

	stmt, args, err := tr.db.QueryBuilder.
		Insert("todos").
		Columns(todoColumns...).
		Values(todo.ID, todo.Title, todo.Completed, todo.TargetDate.UTC(), todo.UserID, todo.CreatedAt.UTC()).
		Suffix("RETURNING " + columnList(todoColumns)).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	created, err = scanTodo(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		slog.Error("TodoRepository#Create", "error", err)
		return domain.Todo{}, postgres.MapError(err)
	}

	return created, nil
}

// Update overwrites the mutable fields only. id, user_id and created_at are
// never written.
func (tr *TodoRepository) Update(ctx context.Context, todo domain.Todo) (updated domain.Todo, err error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Update", "todos")
	defer span.End()
	defer tr.record(ctx, "Update", time.Now(), &err)

	stmt, args, err := tr.db.QueryBuilder.
		Update("todos").
		Set("title", todo.Title).
		Set("completed", todo.Completed).
		Set("target_date", todo.TargetDate.UTC()).
		Where(owned(todo.UserID, todo.ID)).
		Suffix("RETURNING " + columnList(todoColumns)).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	updated, err = scanTodo(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		return domain.Todo{}, postgres.MapError(err)
	}

	return updated, nil
}

// SwitchCompleted flips the flag in a single statement so concurrent
// switches each apply exactly once.
func (tr *TodoRepository) SwitchCompleted(ctx context.Context, userID, id uuid.UUID) (todo domain.Todo, err error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "SwitchCompleted", "todos")
	defer span.End()
	defer tr.record(ctx, "SwitchCompleted", time.Now(), &err)

	stmt, args, err := tr.db.QueryBuilder.
		Update("todos").
		Set("completed", sq.Expr("NOT completed")).
		Where(owned(userID, id)).
		Suffix("RETURNING " + columnList(todoColumns)).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	todo, err = scanTodo(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		return domain.Todo{}, postgres.MapError(err)
	}

	return todo, nil
}

func (tr *TodoRepository) Delete(ctx context.Context, userID, id uuid.UUID) (todo domain.Todo, err error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Delete", "todos")
	defer span.End()
	defer tr.record(ctx, "Delete", time.Now(), &err)

	stmt, args, err := tr.db.QueryBuilder.
		Delete("todos").
		Where(owned(userID, id)).
		Suffix("RETURNING " + columnList(todoColumns)).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	todo, err = scanTodo(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		return domain.Todo{}, postgres.MapError(err)
	}

	return todo, nil
}

func (tr *TodoRepository) record(ctx context.Context, operation string, start time.Time, err *error) {
	tr.telemetry.RecordRepositoryOperation(ctx, operation, "todos", time.Since(start), *err)
}
