package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry lets the core emit spans and counters without knowing the exporter.
type Telemetry interface {
	StartRepositorySpan(ctx context.Context, operation, entity string, attrs ...attribute.KeyValue) (context.Context, trace.Span)
	StartServiceSpan(ctx context.Context, service, operation string, userID uuid.UUID, attrs ...attribute.KeyValue) (context.Context, trace.Span)

	RecordRepositoryOperation(ctx context.Context, operation, entity string, duration time.Duration, err error)
	RecordServiceOperation(ctx context.Context, service, operation string, duration time.Duration, err error)
}
