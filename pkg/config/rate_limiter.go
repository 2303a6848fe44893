package config

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todos/internal/core/model/response"
	"todos/internal/core/port"
	"todos/internal/core/telemetry"
	. "todos/pkg"
)

const defaultRateLimit = "default"

type RateLimitEndpointConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(*gin.Context) string
}

// RateLimiter applies fixed-window limits keyed by "METHOD /route". Counters
// live in a port.CacheRepository so several instances can share them.
type RateLimiter struct {
	store   port.CacheRepository
	config  map[string]RateLimitEndpointConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
	mutex   sync.RWMutex
}

func NewRateLimiter(store port.CacheRepository, logger *zap.Logger, metrics *telemetry.AppMetrics) *RateLimiter {
	configs := map[string]RateLimitEndpointConfig{
		"POST /auth/register": {
			Requests: 5,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
		"POST /auth/login": {
			Requests: 10,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
		defaultRateLimit: {
			Requests: 60,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
	}

	return &RateLimiter{
		store:   store,
		config:  configs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) endpointConfig(methodPath string) RateLimitEndpointConfig {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	if config, exists := rl.config[methodPath]; exists {
		return config
	}

	return rl.config[defaultRateLimit]
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path
		config := rl.endpointConfig(methodPath)
		key := fmt.Sprintf("rate_limit:%s:%s", methodPath, config.KeyFunc(c))

		count, resetTime, err := rl.store.Increment(c.Request.Context(), key, config.Window)
		if err != nil {
			// fail open
			rl.logger.Error("Rate limit check failed",
				zap.String("key", key),
				zap.Error(err))
			c.Next()
			return
		}

		remaining := config.Requests - int(count)
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if int(count) > config.Requests {
			rl.metrics.RecordRateLimitHit(c.Request.Context(), path)

			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.Int("limit", config.Requests),
				zap.Duration("window", config.Window))

			retryAfter := int(time.Until(resetTime).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorResponse{
				Error: response.ResponseError{
					Code:    "TOO_MANY_REQUESTS",
					Message: fmt.Sprintf("Too many requests. Limit: %d per %v", config.Requests, config.Window),
					Errors:  []response.ValidationError{{Field: "rate_limit", Message: "Rate limit exceeded"}},
				},
			})
			return
		}

		rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path)

		c.Next()
	}
}

func (rl *RateLimiter) SetConfig(methodPath string, config RateLimitEndpointConfig) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.config[methodPath] = config
}
