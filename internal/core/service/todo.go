package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"todos/internal/core/domain"
	"todos/internal/core/model/request"
	"todos/internal/core/port"
	tel "todos/internal/core/telemetry"
)

type TodoService struct {
	repo      port.TodoRepository
	validator port.Validator
	telemetry port.Telemetry
	now       func() time.Time
}

func NewTodoService(repo port.TodoRepository, validator port.Validator, telemetry port.Telemetry) *TodoService {
	if telemetry == nil {
		telemetry = tel.NewNoOpTelemetry()
	}

	return &TodoService{
		repo:      repo,
		validator: validator,
		telemetry: telemetry,
		now:       time.Now,
	}
}

func parseTodoID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)

	if err != nil {
		return uuid.Nil, domain.NewValidationError(domain.FieldError{Field: "todoId", Message: "todoId must be a UUID"})
	}

	return id, nil
}

func (ts *TodoService) Get(ctx context.Context, userID uuid.UUID, todoID string) (todo domain.Todo, err error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "Get", userID)
	defer span.End()
	defer ts.record(ctx, "Get", time.Now(), &err)

	id, err := parseTodoID(todoID)

	if err != nil {
		return domain.Todo{}, err
	}

	return ts.repo.Get(ctx, userID, id)
}

func (ts *TodoService) List(ctx context.Context, userID uuid.UUID) (todos []domain.Todo, err error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "List", userID)
	defer span.End()
	defer ts.record(ctx, "List", time.Now(), &err)

	return ts.repo.List(ctx, userID)
}

func (ts *TodoService) Upsert(ctx context.Context, userID uuid.UUID, req *request.UpsertTodoRequest) (todo domain.Todo, err error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "Upsert", userID)
	defer span.End()
	defer ts.record(ctx, "Upsert", time.Now(), &err)

	verr := domain.NewValidationError()

	var existing *domain.Todo

	if req.TodoID != "" {
		id, parseErr := uuid.Parse(req.TodoID)

		if parseErr != nil {
			verr.Add("todoId", "todoId must be a UUID")
		} else {
			found, getErr := ts.repo.Get(ctx, userID, id)

			switch {
			case errors.Is(getErr, domain.ErrNotFound):
				verr.Add("todoId", "todo not found")
			case getErr != nil:
				slog.Error("TodoService#Upsert", "get", getErr)
				return domain.Todo{}, fmt.Errorf("load todo: %w", getErr)
			default:
				existing = &found
			}
		}
	}

	verr.Errors = append(verr.Errors, ts.validator.Validate(req)...)

	if verr.HasErrors() {
		return domain.Todo{}, verr
	}

	targetDate, err := domain.ParseTargetDate(req.TargetDate)

	if err != nil {
		return domain.Todo{}, domain.NewValidationError(domain.FieldError{Field: "targetDate", Message: "targetDate must be an ISO 8601 date or timestamp"})
	}

	completed, _ := req.Completed.(bool)

	if existing != nil {
		existing.Title = req.Title
		existing.Completed = completed
		existing.TargetDate = targetDate

		updated, err := ts.repo.Update(ctx, *existing)

		// Deleted between the ownership check and the write.
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Todo{}, domain.NewValidationError(domain.FieldError{Field: "todoId", Message: "todo not found"})
		}

		return updated, err
	}

	return ts.repo.Create(ctx, domain.Todo{
		ID:         uuid.New(),
		Title:      req.Title,
		Completed:  completed,
		TargetDate: targetDate,
		UserID:     userID,
		CreatedAt:  ts.now().UTC(),
	})
}

func (ts *TodoService) SwitchCompleted(ctx context.Context, userID uuid.UUID, todoID string) (todo domain.Todo, err error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "SwitchCompleted", userID)
	defer span.End()
	defer ts.record(ctx, "SwitchCompleted", time.Now(), &err)

	id, err := parseTodoID(todoID)

	if err != nil {
		return domain.Todo{}, err
	}

	return ts.repo.SwitchCompleted(ctx, userID, id)
}

func (ts *TodoService) Delete(ctx context.Context, userID uuid.UUID, todoID string) (todo domain.Todo, err error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "Delete", userID)
	defer span.End()
	defer ts.record(ctx, "Delete", time.Now(), &err)

	id, err := parseTodoID(todoID)

	if err != nil {
		return domain.Todo{}, err
	}

	return ts.repo.Delete(ctx, userID, id)
}

func (ts *TodoService) record(ctx context.Context, operation string, start time.Time, err *error) {
	ts.telemetry.RecordServiceOperation(ctx, "todo", operation, time.Since(start), *err)
}
