package context

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"todos/internal/core/domain"
)

func TestCurrentTypedGetters(t *testing.T) {
	current := NewCurrent()
	current.Set("request_id", "abc")
	current.Set("count", 3)

	assert.Equal(t, "abc", current.RequestID())

	_, ok := current.GetString("count")
	assert.False(t, ok)

	_, ok = current.User()
	assert.False(t, ok)
}

func TestCurrentTravelsInContext(t *testing.T) {
	user := domain.User{ID: uuid.New(), Login: "alice"}
	current := NewCurrent()
	current.SetUser(user)

	ctx := WithCurrent(context.Background(), current)

	got, ok := UserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, user.ID, got.ID)

	_, ok = UserFromContext(context.Background())
	assert.False(t, ok)
}

func TestCurrentConcurrentAccess(t *testing.T) {
	current := NewCurrent()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			current.Set("k", i)
			current.Get("k")
			current.RequestID()
		})
	}
	wg.Wait()

	assert.IsType(t, 0, current.Get("k"))
}
