package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phrazzld/lola-users/internal/api"
	"github.com/phrazzld/lola-users/internal/config"
	"github.com/phrazzld/lola-users/internal/platform/lola"
	"github.com/phrazzld/lola-users/internal/platform/telemetry"
	"github.com/phrazzld/lola-users/internal/query"
)

// shutdownTimeout bounds graceful shutdown of the server and telemetry.
const shutdownTimeout = 10 * time.Second

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	registry  *prometheus.Registry
	telemetry *telemetry.Provider

	executor    query.Executor
	userHandler *api.UserHandler
}

// newApplication wires the query client and handlers from cfg.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	registry := newRegistry()

	tp, err := telemetry.Setup(cfg.Tracing, logger.With("component", "telemetry"))
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	client, err := lola.NewClient(
		cfg.Query,
		logger,
		lola.WithTracer(tp.Tracer()),
		lola.WithMetrics(lola.NewMetrics(registry)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create query client: %w", err)
	}
	logger.Info("Query client initialized", "base_url", cfg.Query.BaseURL)

	return newApplicationWithExecutor(cfg, logger, client, registry, tp), nil
}

// newApplicationWithExecutor assembles an application around an existing
// executor.
func newApplicationWithExecutor(
	cfg *config.Config,
	logger *slog.Logger,
	executor query.Executor,
	registry *prometheus.Registry,
	tp *telemetry.Provider,
) *application {
	return &application{
		config:      cfg,
		logger:      logger,
		registry:    registry,
		telemetry:   tp,
		executor:    executor,
		userHandler: api.NewUserHandler(executor, cfg.Operations, logger),
	}
}

// newRegistry returns a registry with the standard process and Go collectors.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Run serves HTTP until ctx is canceled or the process is signaled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup flushes telemetry.
func (app *application) cleanup() {
	if app.telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.telemetry.Shutdown(ctx); err != nil {
			app.logger.Error("Error shutting down tracing", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
