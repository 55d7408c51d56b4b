// Package observability wires the logger, prometheus registry and tracer used
// by every module.
package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the observability bootstrap settings.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	MetricsAddress string
}

// Provider owns the process-level sinks.
type Provider struct {
	Logger        *slog.Logger
	metricsServer *http.Server
}

// Registry holds what modules record into.
type Registry struct {
	Prometheus *prometheus.Registry
	Tracer     trace.Tracer
	Operations *OperationMetrics
}

// Observability bundles the provider and registry handed to each module.
type Observability struct {
	Provider *Provider
	Registry *Registry
}

// Init builds the logger, a private prometheus registry with go and process
// collectors, and a tracer from the global otel provider.
func Init(cfg Config) (*Observability, error) {
	if cfg.ServiceName == "" {
		return nil, errors.New("observability: service name is required")
	}

	logger := NewLogger(cfg.Environment, cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"environment", cfg.Environment,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ops, err := NewOperationMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register operation metrics: %w", err)
	}

	obs := &Observability{
		Provider: &Provider{Logger: logger},
		Registry: &Registry{
			Prometheus: reg,
			Tracer:     otel.Tracer(cfg.ServiceName),
			Operations: ops,
		},
	}

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		obs.Provider.metricsServer = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return obs, nil
}

// NewNop returns an Observability that discards logs and records into a
// throwaway registry. Used by tests and CLI tools.
func NewNop() *Observability {
	reg := prometheus.NewRegistry()
	ops, _ := NewOperationMetrics(reg)
	return &Observability{
		Provider: &Provider{Logger: slog.New(slog.DiscardHandler)},
		Registry: &Registry{
			Prometheus: reg,
			Tracer:     otel.Tracer("nop"),
			Operations: ops,
		},
	}
}

// StartMetricsServer serves /metrics until ctx is cancelled. It is a no-op when
// no metrics address was configured.
func (o *Observability) StartMetricsServer(ctx context.Context) {
	srv := o.Provider.metricsServer
	if srv == nil {
		return
	}
	logger := o.Provider.Logger

	go func() {
		logger.InfoContext(ctx, "Metrics server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "Metrics server failed", "error", err)
		}
	}()
}

// Shutdown stops the metrics server.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o.Provider.metricsServer == nil {
		return nil
	}
	return o.Provider.metricsServer.Shutdown(ctx)
}
