package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"todos/internal/adapter/database/sqlite"
	"todos/internal/core/domain"
	"todos/internal/core/port"
	. "todos/pkg/test"
	"todos/pkg/test/factory"
)

var ctx = context.Background()

type UserRepositorySuite struct {
	suite.Suite
	DB   *sqlite.DB
	Repo port.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.DB = InitTestDB()
	s.Repo = NewUserRepository(s.DB, nil)
}

func (s *UserRepositorySuite) TearDownTest() {
	s.DB.Close()
}

func TestUserRepositorySuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) TestCreateAndFind() {
	user := factory.NewUser[domain.User](map[string]any{"Login": "alice", "Name": "Alice"})

	created, err := s.Repo.Create(ctx, user)
	Expect(err).To(BeNil())
	Expect(created.ID).To(Equal(user.ID))
	Expect(created.PasswordHash).To(Equal(user.PasswordHash))

	byLogin, err := s.Repo.GetByLogin(ctx, "alice")
	Expect(err).To(BeNil())
	Expect(byLogin.ID).To(Equal(user.ID))
	Expect(byLogin.Name).To(Equal("Alice"))

	byID, err := s.Repo.GetByID(ctx, user.ID)
	Expect(err).To(BeNil())
	Expect(byID.Login).To(Equal("alice"))
	Expect(byID.CreatedAt.Unix()).To(Equal(user.CreatedAt.Unix()))
}

func (s *UserRepositorySuite) TestDuplicateLogin() {
	_, err := s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Login": "alice", "Name": "Alice"}))
	Expect(err).To(BeNil())

	_, err = s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Login": "alice", "Name": "Other"}))
	Expect(err).To(MatchError(domain.ErrLoginTaken))

	var count int
	Expect(s.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)).To(Succeed())
	Expect(count).To(Equal(1))
}

func (s *UserRepositorySuite) TestNotFound() {
	_, err := s.Repo.GetByLogin(ctx, "nobody")
	Expect(err).To(MatchError(domain.ErrNotFound))

	_, err = s.Repo.GetByID(ctx, uuid.New())
	Expect(err).To(MatchError(domain.ErrNotFound))
}
