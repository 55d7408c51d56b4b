package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability/attr"
)

// Telemetry is the per-service bundle used by WithTelemetry.
type Telemetry struct {
	Service string
	Logger  *slog.Logger
	Metrics OperationRecorder
	Tracer  trace.Tracer
}

// WithTelemetry runs op inside a span, records attempt, outcome and duration,
// and converts a panic into an error.
func WithTelemetry[T any](
	ctx context.Context,
	tel Telemetry,
	operationName string,
	identifier string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	// Start span
	var span trace.Span
	if tel.Tracer != nil {
		ctx, span = tel.Tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("service", tel.Service),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	logger := tel.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if tel.Metrics != nil {
		tel.Metrics.RecordOperationAttempt(ctx, operationName, tel.Service)
	}

	startTime := time.Now()
	defer func() {
		if tel.Metrics != nil {
			tel.Metrics.RecordOperationDuration(ctx, operationName, tel.Service, time.Since(startTime))
		}
	}()

	logger.DebugContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if tel.Metrics != nil {
				tel.Metrics.RecordOperationFailure(ctx, operationName, tel.Service)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(err),
		)
		if tel.Metrics != nil {
			tel.Metrics.RecordOperationFailure(ctx, operationName, tel.Service)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	if tel.Metrics != nil {
		tel.Metrics.RecordOperationSuccess(ctx, operationName, tel.Service)
	}
	return result, nil
}
