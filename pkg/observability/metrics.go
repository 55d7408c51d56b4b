package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records service operation attempts, outcomes and latency,
// labelled by operation and service.
type OperationMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewOperationMetrics registers the operation collectors on reg.
func NewOperationMetrics(reg prometheus.Registerer) (*OperationMetrics, error) {
	labels := []string{"operation", "service"}
	m := &OperationMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "standings_operation_attempts_total",
			Help: "Service operations started",
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "standings_operation_success_total",
			Help: "Service operations that completed without error",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "standings_operation_failures_total",
			Help: "Service operations that returned an error or panicked",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "standings_operation_duration_seconds",
			Help:    "Service operation latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}, labels),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.successes, m.failures, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *OperationMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *OperationMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *OperationMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *OperationMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(d.Seconds())
}

// OperationRecorder is what services record operation telemetry into.
type OperationRecorder interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
}

var _ OperationRecorder = (*OperationMetrics)(nil)

type noopRecorder struct{}

// NewNoopMetrics returns a recorder that drops everything.
func NewNoopMetrics() OperationRecorder { return noopRecorder{} }

func (noopRecorder) RecordOperationAttempt(context.Context, string, string)                 {}
func (noopRecorder) RecordOperationSuccess(context.Context, string, string)                 {}
func (noopRecorder) RecordOperationFailure(context.Context, string, string)                 {}
func (noopRecorder) RecordOperationDuration(context.Context, string, string, time.Duration) {}
