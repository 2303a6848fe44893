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

const loginTakenMessage = "user with this login already exists"

type AuthService struct {
	users       port.UserService
	credentials port.CredentialService
	validator   port.Validator
	telemetry   port.Telemetry
}

func NewAuthService(users port.UserService, credentials port.CredentialService, validator port.Validator, telemetry port.Telemetry) *AuthService {
	if telemetry == nil {
		telemetry = tel.NewNoOpTelemetry()
	}

	return &AuthService{
		users:       users,
		credentials: credentials,
		validator:   validator,
		telemetry:   telemetry,
	}
}

func (as *AuthService) Register(ctx context.Context, req *request.RegisterRequest) (token string, err error) {
	ctx, span := as.telemetry.StartServiceSpan(ctx, "auth", "Register", uuid.Nil)
	defer span.End()
	defer as.record(ctx, "Register", time.Now(), &err)

	verr := domain.NewValidationError(as.validator.Validate(req)...)

	if req.Login != "" {
		_, lookupErr := as.users.GetByLogin(ctx, req.Login)

		switch {
		case lookupErr == nil:
			verr.Add("login", loginTakenMessage)
		case !errors.Is(lookupErr, domain.ErrNotFound):
			slog.Error("Auth#Register", "get_by_login", lookupErr)
			return "", fmt.Errorf("lookup login: %w", lookupErr)
		}
	}

	if verr.HasErrors() {
		return "", verr
	}

	hash, err := as.credentials.HashPassword(req.Password)

	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := as.users.Create(ctx, req.Login, req.Name, hash)

	if errors.Is(err, domain.ErrLoginTaken) {
		return "", domain.NewValidationError(domain.FieldError{Field: "login", Message: loginTakenMessage})
	}

	if err != nil {
		slog.Error("Auth#Register", "create", err)
		return "", fmt.Errorf("create user: %w", err)
	}

	return as.credentials.IssueToken(user.ID)
}

func (as *AuthService) Login(ctx context.Context, req *request.LoginRequest) (token string, err error) {
	ctx, span := as.telemetry.StartServiceSpan(ctx, "auth", "Login", uuid.Nil)
	defer span.End()
	defer as.record(ctx, "Login", time.Now(), &err)

	if errs := as.validator.Validate(req); len(errs) > 0 {
		return "", domain.NewValidationError(errs...)
	}

	user, err := as.users.GetByLogin(ctx, req.Login)

	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.Unauthenticated("user not found")
	}

	if err != nil {
		slog.Error("Auth#Login", "get_by_login", err)
		return "", fmt.Errorf("lookup login: %w", err)
	}

	if !as.credentials.VerifyPassword(req.Password, user.PasswordHash) {
		return "", domain.Unauthenticated("wrong password")
	}

	return as.credentials.IssueToken(user.ID)
}

func (as *AuthService) Resolve(ctx context.Context, token string) (user domain.User, err error) {
	userID, err := as.credentials.VerifyToken(token)

	if err != nil {
		return domain.User{}, err
	}

	ctx, span := as.telemetry.StartServiceSpan(ctx, "auth", "Resolve", userID)
	defer span.End()

	user, err = as.users.GetByID(ctx, userID)

	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.Unauthenticated("Current session user not found")
	}

	if err != nil {
		slog.Error("Auth#Resolve", "get_by_id", err)
		return domain.User{}, fmt.Errorf("resolve session user: %w", err)
	}

	return user, nil
}

func (as *AuthService) record(ctx context.Context, operation string, start time.Time, err *error) {
	as.telemetry.RecordServiceOperation(ctx, "auth", operation, time.Since(start), *err)
}
