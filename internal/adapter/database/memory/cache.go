package memory

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"todos/internal/core/port"
)

type window struct {
	Count   int64
	ResetAt time.Time
}

type CacheRepository struct {
	cache *cache.Cache
	mutex sync.Mutex
	now   func() time.Time
}

func NewCacheRepository() port.CacheRepository {
	return &CacheRepository{
		cache: cache.New(5*time.Minute, 10*time.Minute),
		now:   time.Now,
	}
}

func (c *CacheRepository) Increment(ctx context.Context, key string, ttl time.Duration) (int64, time.Time, error) {
	now := c.now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if item, found := c.cache.Get(key); found {
		entry := item.(window)

		if now.Before(entry.ResetAt) {
			entry.Count++
			c.cache.Set(key, entry, entry.ResetAt.Sub(now))
			return entry.Count, entry.ResetAt, nil
		}
	}

	entry := window{Count: 1, ResetAt: now.Add(ttl)}
	c.cache.Set(key, entry, ttl)

	return entry.Count, entry.ResetAt, nil
}
