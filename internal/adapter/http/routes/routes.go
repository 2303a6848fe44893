package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"todos/internal/adapter/http/handler"
	"todos/internal/adapter/http/middleware"
	"todos/internal/core/port"
	"todos/internal/core/telemetry"
	"todos/pkg/config"
)

type HandlersConfig struct {
	AuthHandler   *handler.AuthHandler
	TodoHandler   *handler.TodoHandler
	HealthHandler *handler.HealthHandler
	// Authenticator resolves bearer tokens for every non-public route.
	Authenticator port.AuthService
}

type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Public  bool
}

// Table lists every route the API serves. Anything not marked Public goes
// through middleware.Authenticate.
func Table(handlers HandlersConfig) []Route {
	routes := []Route{
		{Method: http.MethodPost, Path: "/auth/register", Handler: handlers.AuthHandler.Register, Public: true},
		{Method: http.MethodPost, Path: "/auth/login", Handler: handlers.AuthHandler.Login, Public: true},
		{Method: http.MethodGet, Path: "/auth/me", Handler: handlers.AuthHandler.Me},

		{Method: http.MethodGet, Path: "/todos", Handler: handlers.TodoHandler.List},
		{Method: http.MethodGet, Path: "/todos/:id", Handler: handlers.TodoHandler.Get},
		{Method: http.MethodPost, Path: "/todos", Handler: handlers.TodoHandler.Upsert},
		{Method: http.MethodPatch, Path: "/todos/switch/:id", Handler: handlers.TodoHandler.SwitchCompleted},
		{Method: http.MethodDelete, Path: "/todos/:id", Handler: handlers.TodoHandler.Delete},
	}

	if handlers.HealthHandler != nil {
		routes = append(routes, Route{Method: http.MethodGet, Path: "/health", Handler: handlers.HealthHandler.Check, Public: true})
	}

	return routes
}

func register(router *gin.Engine, handlers HandlersConfig) {
	authenticate := middleware.Authenticate(handlers.Authenticator)

	for _, route := range Table(handlers) {
		if route.Public {
			router.Handle(route.Method, route.Path, route.Handler)
			continue
		}

		router.Handle(route.Method, route.Path, authenticate, route.Handler)
	}
}

type Options struct {
	Config      *config.AppConfig
	Metrics     *telemetry.AppMetrics
	Logger      *config.LokiLogger
	RateLimiter *config.RateLimiter
}

func SetupRouter(handlers HandlersConfig, opts Options) *gin.Engine {
	if opts.Config.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	if err := router.SetTrustedProxies(opts.Config.TrustedProxies); err != nil {
		opts.Logger.Zap().Error("Invalid trusted proxies, forwarding headers ignored", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(opts.Config.ServiceName))
	router.Use(middleware.CurrentMiddleware())
	router.Use(middleware.LoggingMiddleware(opts.Logger))
	router.Use(middleware.MetricsMiddleware(opts.Metrics))
	router.Use(middleware.CORSMiddleware(opts.Config.CORSOrigin))
	router.Use(config.NewHTTPSEnforcer(opts.Config, opts.Logger.Zap()).HTTPSMiddleware())

	if opts.RateLimiter != nil {
		router.Use(opts.RateLimiter.RateLimitMiddleware())
	}

	register(router, handlers)

	return router
}

// SetupRouterForTests skips transport concerns so handlers can be exercised
// with httptest.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	_ = router.SetTrustedProxies(nil)

	router.Use(gin.Recovery())
	router.Use(middleware.CurrentMiddleware())
	router.Use(middleware.CORSMiddleware("*"))

	register(router, handlers)

	return router
}
