package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"todos/internal/adapter/database/memory"
	"todos/internal/adapter/database/redis"
	api "todos/internal/adapter/http"
	"todos/internal/adapter/telemetry"
	"todos/internal/core/port"
	"todos/pkg/config"
)

const serviceVersion = "1.0.0"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	logger, err := config.NewLokiLogger(cfg.ServiceName, cfg.LokiURL, !cfg.IsRelease())
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.NewContainer(ctx, telemetry.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	}, slog.Default())
	if err != nil {
		log.Fatal("Failed to initialize telemetry: ", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("Telemetry shutdown failed", "error", err)
		}
	}()

	err = api.StartServer(ctx, api.ServerOptions{
		Config:    cfg,
		Logger:    logger,
		Metrics:   tel.AppMetrics,
		Telemetry: tel.NewTelemetry(slog.Default()),
		RateStore: rateStore(ctx, cfg, logger),
	})
	if err != nil {
		logger.Error(ctx, "Server stopped", zap.Error(err))
		os.Exit(1)
	}

	logger.Info(ctx, "Shut down gracefully")
}

// rateStore shares counters through Redis when REDIS_URL is set and falls
// back to process memory otherwise.
func rateStore(ctx context.Context, cfg *config.AppConfig, logger *config.LokiLogger) port.CacheRepository {
	if cfg.RedisURL == "" {
		return memory.NewCacheRepository()
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn(ctx, "Redis unavailable, using in-memory rate limits", zap.Error(err))
		return memory.NewCacheRepository()
	}

	return redis.NewCacheRepository(client, cfg.ServiceName)
}
