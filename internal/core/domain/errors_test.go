package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorJoinsMessages(t *testing.T) {
	verr := NewValidationError()
	assert.False(t, verr.HasErrors())

	verr.Add("title", "title must be at least 3 characters long")
	verr.Add("completed", "completed must be a boolean")

	assert.True(t, verr.HasErrors())
	assert.Equal(t, "Invalid input: title must be at least 3 characters long; completed must be a boolean.", verr.Error())
}

func TestUnauthenticatedMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("resolve: %w", Unauthenticated("token expired"))

	assert.True(t, errors.Is(err, ErrUnauthenticated))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "resolve: token expired", err.Error())
}

func TestTodoBelongsTo(t *testing.T) {
	todo := Todo{UserID: [16]byte{1}}

	assert.True(t, todo.BelongsTo([16]byte{1}))
	assert.False(t, todo.BelongsTo([16]byte{2}))
}

func TestParseTargetDate(t *testing.T) {
	parsed, err := ParseTargetDate("2024-01-04T12:00:00+02:00")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC), parsed)

	parsed, err = ParseTargetDate("2024-01-04")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseTargetDate("tomorrow")
	assert.Error(t, err)
	_, err = ParseTargetDate("2024-13-01")
	assert.Error(t, err)
}
