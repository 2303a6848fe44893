package config

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"todos/internal/adapter/database/memory"
	"todos/internal/core/telemetry"
	. "todos/pkg"
)

func newTestRateLimiter() *RateLimiter {
	return NewRateLimiter(memory.NewCacheRepository(), zap.NewNop(), telemetry.NewAppMetrics(prometheus.NewRegistry()))
}

func rateLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	Expect(router.SetTrustedProxies(nil)).To(Succeed())
	router.Use(rl.RateLimitMiddleware())

	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.POST("/auth/register", func(c *gin.Context) {
		c.String(200, "token")
	})

	return router
}

func TestNewRateLimiter(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	Expect(rl).ToNot(BeNil())
	Expect(rl.store).ToNot(BeNil())
	Expect(rl.config).To(HaveKey("POST /auth/register"))
	Expect(rl.config).To(HaveKey("POST /auth/login"))
}

func TestRateLimitMiddleware_AllowedRequests(t *testing.T) {
	RegisterTestingT(t)
	router := rateLimitedRouter(newTestRateLimiter())

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
		Expect(w.Header().Get("X-RateLimit-Limit")).To(Equal("60"))
		Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal(strconv.Itoa(59 - i)))
		Expect(w.Header().Get("X-RateLimit-Reset")).ToNot(BeEmpty())
	}
}

func TestRateLimitMiddleware_ExceedLimit(t *testing.T) {
	RegisterTestingT(t)
	router := rateLimitedRouter(newTestRateLimiter())

	for i := 0; i < 65; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		if i < 60 {
			Expect(w.Code).To(Equal(200))
		} else {
			Expect(w.Code).To(Equal(429))
			Expect(w.Body.String()).To(ContainSubstring("TOO_MANY_REQUESTS"))
			Expect(w.Header().Get("Retry-After")).ToNot(BeEmpty())
		}
	}
}

func TestRateLimitMiddleware_RegisterLimit(t *testing.T) {
	RegisterTestingT(t)
	router := rateLimitedRouter(newTestRateLimiter())

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/auth/register", nil)
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	Expect(codes).To(Equal([]int{200, 200, 200, 200, 200, 429}))
}

func TestRateLimitMiddleware_SeparateClients(t *testing.T) {
	RegisterTestingT(t)
	router := rateLimitedRouter(newTestRateLimiter())

	for _, addr := range []string{"10.0.0.1:1234", "10.0.0.2:1234"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)

		Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("59"))
	}
}

func TestRateLimitMiddleware_IgnoresSpoofedForwardedFor(t *testing.T) {
	RegisterTestingT(t)
	router := rateLimitedRouter(newTestRateLimiter())

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/auth/register", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113."+strconv.Itoa(i))
		req.Header.Set("X-Real-IP", "198.51.100."+strconv.Itoa(i))
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	Expect(codes).To(Equal([]int{200, 200, 200, 200, 200, 429}))
}

func TestRateLimitMiddleware_TrustedProxyForwardsClient(t *testing.T) {
	RegisterTestingT(t)
	router := rateLimitedRouter(newTestRateLimiter())
	Expect(router.SetTrustedProxies([]string{"10.0.0.1"})).To(Succeed())

	for _, client := range []string{"203.0.113.1", "203.0.113.2"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", client)
		router.ServeHTTP(w, req)

		Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("59"))
	}
}

func TestRateLimitMiddleware_WindowReset(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()
	rl.SetConfig("GET /test", RateLimitEndpointConfig{Requests: 2, Window: 50 * time.Millisecond, KeyFunc: GetClientIP})
	router := rateLimitedRouter(rl)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)
	}

	time.Sleep(100 * time.Millisecond)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)
	Expect(w.Code).To(Equal(200))
	Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("1"))
}

func TestRateLimitMiddleware_NoDoubleCounting(t *testing.T) {
	RegisterTestingT(t)
	router := rateLimitedRouter(newTestRateLimiter())

	numRequests := 10
	results := make([]int, numRequests)
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Go(func() {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/test", nil)
			router.ServeHTTP(w, req)

			remaining, _ := strconv.Atoi(w.Header().Get("X-RateLimit-Remaining"))
			results[i] = remaining
		})
	}

	wg.Wait()

	expected := []int{50, 51, 52, 53, 54, 55, 56, 57, 58, 59}
	sort.Ints(results)

	Expect(results).To(Equal(expected))
}
