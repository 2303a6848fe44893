package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
)

func NewTodo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	now := time.Now().UTC()

	defaults := map[string]any{
		"ID":         uuid.New(),
		"Completed":  false,
		"TargetDate": now.Add(24 * time.Hour).Truncate(time.Millisecond),
		"CreatedAt":  now,
	}

	return instance.Build(merge(defaults, customData))
}
