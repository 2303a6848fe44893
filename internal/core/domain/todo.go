package domain

import (
	"time"

	"github.com/google/uuid"
)

type Todo struct {
	ID         uuid.UUID
	Title      string
	Completed  bool
	TargetDate time.Time
	UserID     uuid.UUID
	CreatedAt  time.Time
}

const dateOnly = "2006-01-02"

// ParseTargetDate accepts an RFC 3339 timestamp or a bare calendar date,
// which is read as midnight UTC.
func ParseTargetDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(dateOnly, value)
	if err != nil {
		return time.Time{}, err
	}

	return t.UTC(), nil
}

func (t *Todo) BelongsTo(userID uuid.UUID) bool {
	return t.UserID == userID
}
