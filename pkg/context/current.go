package context

import (
	"context"
	"sync"

	"todos/internal/core/domain"
)

type currentKey struct{}

// Current is the per-request state shared by middleware and handlers. It is
// created by the request middleware and travels in the request context.
type Current struct {
	mu   sync.RWMutex
	data map[string]any
	user *domain.User
}

func NewCurrent() *Current {
	return &Current{
		data: make(map[string]any),
	}
}

func (c *Current) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *Current) Get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key]
}

func (c *Current) GetString(key string) (string, bool) {
	str, ok := c.Get(key).(string)
	return str, ok
}

func (c *Current) RequestID() string {
	id, _ := c.GetString("request_id")
	return id
}

func (c *Current) SetUser(user domain.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = &user
}

// User returns the authenticated user, if the request passed authorization.
func (c *Current) User() (domain.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.user == nil {
		return domain.User{}, false
	}

	return *c.user, true
}

func WithCurrent(ctx context.Context, current *Current) context.Context {
	return context.WithValue(ctx, currentKey{}, current)
}

func FromContext(ctx context.Context) (*Current, bool) {
	current, ok := ctx.Value(currentKey{}).(*Current)
	return current, ok
}

// UserFromContext is a shortcut for services that only need the caller.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	current, ok := FromContext(ctx)
	if !ok {
		return domain.User{}, false
	}

	return current.User()
}
