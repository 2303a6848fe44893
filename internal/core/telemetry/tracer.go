package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"todos/internal/core/port"
)

const tracerName = "todos"

// OTELTelemetry implements port.Telemetry with the global tracer provider and,
// when set, Prometheus counters.
type OTELTelemetry struct {
	logger  *slog.Logger
	metrics *AppMetrics
}

func NewOTELTelemetry(logger *slog.Logger, metrics *AppMetrics) port.Telemetry {
	if logger == nil {
		logger = slog.Default()
	}

	return &OTELTelemetry{logger: logger, metrics: metrics}
}

func (p *OTELTelemetry) StartRepositorySpan(ctx context.Context, operation, entity string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.String("component", "repository"),
	)

	return otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("repository.%s.%s", entity, operation), trace.WithAttributes(attrs...))
}

func (p *OTELTelemetry) StartServiceSpan(ctx context.Context, service, operation string, userID uuid.UUID, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	)

	if userID != uuid.Nil {
		attrs = append(attrs, attribute.String("user.id", userID.String()))
	}

	return otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("service.%s.%s", service, operation), trace.WithAttributes(attrs...))
}

func (p *OTELTelemetry) RecordRepositoryOperation(ctx context.Context, operation, entity string, duration time.Duration, err error) {
	p.metrics.RecordDatabaseOperation(ctx, operation, entity, err)

	if err != nil {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	p.logger.DebugContext(ctx, "repository operation",
		"entity", entity,
		"operation", operation,
		"duration", duration,
		"error", err,
	)
}

func (p *OTELTelemetry) RecordServiceOperation(ctx context.Context, service, operation string, duration time.Duration, err error) {
	switch service {
	case "todo":
		p.metrics.RecordTodoOperation(ctx, operation, err)
	default:
		p.metrics.RecordUserOperation(ctx, operation, err)
	}

	if err != nil {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// NoOpTelemetry is used by tests and whenever telemetry is disabled.
type NoOpTelemetry struct{}

func NewNoOpTelemetry() port.Telemetry {
	return &NoOpTelemetry{}
}

func (p *NoOpTelemetry) StartRepositorySpan(ctx context.Context, operation, entity string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

func (p *NoOpTelemetry) StartServiceSpan(ctx context.Context, service, operation string, userID uuid.UUID, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

func (p *NoOpTelemetry) RecordRepositoryOperation(ctx context.Context, operation, entity string, duration time.Duration, err error) {
}

func (p *NoOpTelemetry) RecordServiceOperation(ctx context.Context, service, operation string, duration time.Duration, err error) {
}
