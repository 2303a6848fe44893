package service

import (
	"context"
	"time"

	"todos/internal/adapter/database/sqlite"
	"todos/internal/adapter/database/sqlite/repository"
	"todos/internal/adapter/http/validation"
	"todos/pkg/auth"
	. "todos/pkg/test"
)

var ctx = context.Background()

const testSecret = "test-secret"

type fixture struct {
	DB          *sqlite.DB
	JWT         *auth.JWT
	Users       *UserService
	Credentials *CredentialService
	Auth        *AuthService
	Todos       *TodoService
}

func newFixture() fixture {
	db := InitTestDB()
	validator := validation.New()

	jwt := auth.NewJWT(testSecret, time.Hour)
	users := NewUserService(repository.NewUserRepository(db, nil))
	credentials := NewCredentialService(jwt, 4)

	return fixture{
		DB:          db,
		JWT:         jwt,
		Users:       users,
		Credentials: credentials,
		Auth:        NewAuthService(users, credentials, validator, nil),
		Todos:       NewTodoService(repository.NewTodoRepository(db, nil), validator, nil),
	}
}
