package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"todos/internal/adapter/database/postgres"
	"todos/internal/adapter/database/postgres/repository"
	"todos/internal/core/domain"
	"todos/internal/core/port"
	"todos/pkg/test/factory"
)

var ctx = context.Background()

type PostgresRepositorySuite struct {
	suite.Suite
	container testcontainers.Container
	DB        *postgres.DB
	TodoRepo  port.TodoRepository
	UserRepo  port.UserRepository
}

func TestPostgresRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres suite needs docker")
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	RegisterTestingT(t)
	suite.Run(t, new(PostgresRepositorySuite))
}

func (s *PostgresRepositorySuite) SetupSuite() {
	req := testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "todos",
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
	}

	container, err := testcontainers.GenericContainer(ctx, req)
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	mapped, err := container.MappedPort(ctx, "5432")
	s.Require().NoError(err)

	url := fmt.Sprintf("postgres://test:test@%s:%s/todos?sslmode=disable", host, mapped.Port())

	s.DB, err = postgres.NewDB(ctx, url)
	s.Require().NoError(err)

	s.TodoRepo = repository.NewTodoRepository(s.DB, nil)
	s.UserRepo = repository.NewUserRepository(s.DB, nil)
}

func (s *PostgresRepositorySuite) TearDownSuite() {
	if s.DB != nil {
		s.DB.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(ctx)
	}
}

func (s *PostgresRepositorySuite) SetupTest() {
	_, err := s.DB.Exec(ctx, "TRUNCATE todos, users")
	s.Require().NoError(err)
}

func (s *PostgresRepositorySuite) user(login string) domain.User {
	user, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Login": login, "Name": login}))
	s.Require().NoError(err)
	return user
}

func (s *PostgresRepositorySuite) TestDuplicateLogin() {
	s.user("alice")

	_, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Login": "alice", "Name": "x"}))
	Expect(err).To(MatchError(domain.ErrLoginTaken))

	_, err = s.UserRepo.GetByID(ctx, uuid.New())
	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *PostgresRepositorySuite) TestOwnershipScopedCrud() {
	alice := s.user("alice")
	bob := s.user("bobby")
	target := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)

	todo, err := s.TodoRepo.Create(ctx, factory.NewTodo[domain.Todo](map[string]any{
		"Title":      "Buy milk",
		"UserID":     alice.ID,
		"TargetDate": target,
	}))
	Expect(err).To(BeNil())
	Expect(todo.TargetDate.Equal(target)).To(BeTrue())

	_, err = s.TodoRepo.Get(ctx, bob.ID, todo.ID)
	Expect(err).To(MatchError(domain.ErrNotFound))

	list, err := s.TodoRepo.List(ctx, bob.ID)
	Expect(err).To(BeNil())
	Expect(list).To(BeEmpty())

	switched, err := s.TodoRepo.SwitchCompleted(ctx, alice.ID, todo.ID)
	Expect(err).To(BeNil())
	Expect(switched.Completed).To(BeTrue())

	_, err = s.TodoRepo.Delete(ctx, bob.ID, todo.ID)
	Expect(err).To(MatchError(domain.ErrNotFound))

	deleted, err := s.TodoRepo.Delete(ctx, alice.ID, todo.ID)
	Expect(err).To(BeNil())
	Expect(deleted.Completed).To(BeTrue())
}

func (s *PostgresRepositorySuite) TestListOrdering() {
	alice := s.user("alice")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	later, err := s.TodoRepo.Create(ctx, factory.NewTodo[domain.Todo](map[string]any{
		"Title": "later", "UserID": alice.ID, "TargetDate": base.Add(time.Hour), "CreatedAt": base,
	}))
	Expect(err).To(BeNil())
	sooner, err := s.TodoRepo.Create(ctx, factory.NewTodo[domain.Todo](map[string]any{
		"Title": "sooner", "UserID": alice.ID, "TargetDate": base, "CreatedAt": base,
	}))
	Expect(err).To(BeNil())

	list, err := s.TodoRepo.List(ctx, alice.ID)
	Expect(err).To(BeNil())
	Expect(list).To(HaveLen(2))
	Expect(list[0].ID).To(Equal(sooner.ID))
	Expect(list[1].ID).To(Equal(later.ID))
}
