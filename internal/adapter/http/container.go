package http

import (
	"context"
	"fmt"
	"strings"

	"todos/internal/adapter/database/postgres"
	pgrepository "todos/internal/adapter/database/postgres/repository"
	"todos/internal/adapter/database/sqlite"
	sqliterepository "todos/internal/adapter/database/sqlite/repository"
	"todos/internal/adapter/http/handler"
	"todos/internal/adapter/http/routes"
	"todos/internal/adapter/http/validation"
	"todos/internal/core/port"
	"todos/internal/core/service"
	"todos/pkg/auth"
	"todos/pkg/config"
)

// Store is the persistence side picked from DATABASE_URL.
type Store struct {
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository
	Ping     func(ctx context.Context) error
	Close    func()
}

// OpenStore connects to PostgreSQL for postgres:// URLs and to SQLite for
// anything else (sqlite://path, file: URIs, bare paths).
func OpenStore(ctx context.Context, cfg *config.AppConfig, telemetry port.Telemetry) (*Store, error) {
	url := cfg.DatabaseURL

	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		db, err := postgres.NewDB(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}

		return &Store{
			UserRepo: pgrepository.NewUserRepository(db, telemetry),
			TodoRepo: pgrepository.NewTodoRepository(db, telemetry),
			Ping:     db.Ping,
			Close:    db.Close,
		}, nil
	}

	db, err := sqlite.NewDB(sqlite.Options{
		Path:  sqlite.PathFromURL(url),
		Debug: !cfg.IsRelease(),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	return NewSQLiteStore(db, telemetry), nil
}

func NewSQLiteStore(db *sqlite.DB, telemetry port.Telemetry) *Store {
	return &Store{
		UserRepo: sqliterepository.NewUserRepository(db, telemetry),
		TodoRepo: sqliterepository.NewTodoRepository(db, telemetry),
		Ping:     db.PingContext,
		Close:    func() { db.Close() },
	}
}

type Container struct {
	Store *Store

	UserService       port.UserService
	TodoService       port.TodoService
	AuthService       port.AuthService
	CredentialService port.CredentialService

	AuthHandler   *handler.AuthHandler
	TodoHandler   *handler.TodoHandler
	HealthHandler *handler.HealthHandler
}

func NewContainer(store *Store, cfg *config.AppConfig, telemetry port.Telemetry) *Container {
	validator := validation.New()

	credentialSvc := service.NewCredentialService(auth.NewJWT(cfg.JWTSecret, cfg.JWTExpires), cfg.BcryptCost)
	userSvc := service.NewUserService(store.UserRepo)
	authSvc := service.NewAuthService(userSvc, credentialSvc, validator, telemetry)
	todoSvc := service.NewTodoService(store.TodoRepo, validator, telemetry)

	return &Container{
		Store: store,

		UserService:       userSvc,
		TodoService:       todoSvc,
		AuthService:       authSvc,
		CredentialService: credentialSvc,

		AuthHandler:   handler.NewAuthHandler(authSvc),
		TodoHandler:   handler.NewTodoHandler(todoSvc),
		HealthHandler: handler.NewHealthHandler(store.Ping),
	}
}

func (c *Container) Handlers() routes.HandlersConfig {
	return routes.HandlersConfig{
		AuthHandler:   c.AuthHandler,
		TodoHandler:   c.TodoHandler,
		HealthHandler: c.HealthHandler,
		Authenticator: c.AuthService,
	}
}
