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

var userColumns = []string{"id", "login", "name", "password_hash", "created_at"}

type UserRepository struct {
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *postgres.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpTelemetry()
	}

	return &UserRepository{db: db, telemetry: telemetry}
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (created domain.User, err error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "Create", "users")
	defer span.End()
	defer ur.record(ctx, "Create", time.Now(), &err)

	stmt, args, err := ur.db.QueryBuilder.
		Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Login, user.Name, user.PasswordHash, user.CreatedAt.UTC()).
		Suffix("RETURNING " + columnList(userColumns)).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	created, err = scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		slog.Error("UserRepository#Create", "error", err)
		return domain.User{}, postgres.MapError(err)
	}

	return created, nil
}

func (ur *UserRepository) GetByLogin(ctx context.Context, login string) (user domain.User, err error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "GetByLogin", "users")
	defer span.End()
	defer ur.record(ctx, "GetByLogin", time.Now(), &err)

	return ur.getBy(ctx, sq.Eq{"login": login})
}

func (ur *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user domain.User, err error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "GetByID", "users")
	defer span.End()
	defer ur.record(ctx, "GetByID", time.Now(), &err)

	return ur.getBy(ctx, sq.Eq{"id": id})
}

func (ur *UserRepository) getBy(ctx context.Context, where sq.Eq) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.
		Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	user, err := scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		return domain.User{}, postgres.MapError(err)
	}

	return user, nil
}

func (ur *UserRepository) record(ctx context.Context, operation string, start time.Time, err *error) {
	ur.telemetry.RecordRepositoryOperation(ctx, operation, "users", time.Since(start), *err)
}
