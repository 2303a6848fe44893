package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"todos/internal/core/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}

// timestamp scans DATETIME columns. Rows produced by RETURNING carry no
// declared column type, so the driver hands back the stored text.
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (ts timestamp) parse(value string) error {
	value = strings.TrimSuffix(value, "Z")

	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			*ts.t = parsed.UTC()
			return nil
		}
	}

	return fmt.Errorf("cannot parse %q as timestamp", value)
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User

	err := row.Scan(&user.ID, &user.Login, &user.Name, &user.PasswordHash, timestamp{&user.CreatedAt})

	return user, err
}

func scanTodo(row rowScanner) (domain.Todo, error) {
	var todo domain.Todo

	err := row.Scan(&todo.ID, &todo.Title, &todo.Completed, timestamp{&todo.TargetDate}, &todo.UserID, timestamp{&todo.CreatedAt})

	return todo, err
}
