package repository

import (
	"strings"

	"github.com/jackc/pgx/v5"

	"todos/internal/core/domain"
)

func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User

	err := row.Scan(&user.ID, &user.Login, &user.Name, &user.PasswordHash, &user.CreatedAt)
	user.CreatedAt = user.CreatedAt.UTC()

	return user, err
}

func scanTodo(row pgx.Row) (domain.Todo, error) {
	var todo domain.Todo

	err := row.Scan(&todo.ID, &todo.Title, &todo.Completed, &todo.TargetDate, &todo.UserID, &todo.CreatedAt)
	todo.TargetDate = todo.TargetDate.UTC()
	todo.CreatedAt = todo.CreatedAt.UTC()

	return todo, err
}
