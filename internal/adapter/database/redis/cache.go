package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"todos/internal/core/port"
)

// incrementScript starts the window on the first hit and keeps its expiry
// for the following ones.
var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {count, redis.call("PTTL", KEYS[1])}
`)

type CacheRepository struct {
	client *redis.Client
	prefix string
}

func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)

	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// NewCacheRepository namespaces every key with prefix, e.g. "todos-api:".
func NewCacheRepository(client *redis.Client, prefix string) port.CacheRepository {
	if prefix != "" {
		prefix += ":"
	}

	return &CacheRepository{client: client, prefix: prefix}
}

func (c *CacheRepository) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	res, err := incrementScript.Run(ctx, c.client, []string{c.prefix + key}, window.Milliseconds()).Int64Slice()

	if err != nil {
		return 0, time.Time{}, err
	}

	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected increment reply %v", res)
	}

	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = window
	}

	return res[0], time.Now().Add(ttl), nil
}
