package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"todos/internal/adapter/http/routes"
	"todos/internal/core/port"
	"todos/internal/core/telemetry"
	"todos/pkg/config"
)

const shutdownTimeout = 10 * time.Second

type ServerOptions struct {
	Config    *config.AppConfig
	Logger    *config.LokiLogger
	Metrics   *telemetry.AppMetrics
	Telemetry port.Telemetry
	RateStore port.CacheRepository
}

// StartServer serves the API until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func StartServer(ctx context.Context, opts ServerOptions) error {
	store, err := OpenStore(ctx, opts.Config, opts.Telemetry)
	if err != nil {
		return err
	}
	defer store.Close()

	container := NewContainer(store, opts.Config, opts.Telemetry)

	var rateLimiter *config.RateLimiter
	if opts.Config.RateLimitEnabled && opts.RateStore != nil {
		rateLimiter = config.NewRateLimiter(opts.RateStore, opts.Logger.Zap(), opts.Metrics)
	}

	router := routes.SetupRouter(container.Handlers(), routes.Options{
		Config:      opts.Config,
		Metrics:     opts.Metrics,
		Logger:      opts.Logger,
		RateLimiter: rateLimiter,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Config.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	slog.Info("Server starting",
		"port", opts.Config.Port,
		"environment", opts.Config.Environment,
		"rate_limit_enabled", rateLimiter != nil,
		"https_enforced", opts.Config.EnforceHTTPS)

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
