package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Start serves the API until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout and closes the database pool.
func (app *App) Start(ctx context.Context) error {
	logger := app.Observability.Provider.Logger

	app.Observability.StartMetricsServer(ctx)

	server := &http.Server{
		Addr:              app.Config.HTTP.Addr,
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.InfoContext(ctx, "Shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			_ = app.Close()
			return fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Error shutting down HTTP server", "error", err)
	}
	if err := app.Observability.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Error shutting down metrics server", "error", err)
	}

	if err := app.Close(); err != nil {
		return err
	}
	logger.Info("Graceful shutdown complete")
	return nil
}

// Close releases the database pool.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	if err := app.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
