package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace/noop"

	apiMiddleware "github.com/phrazzld/lola-users/internal/api/middleware"
)

// setupRouter creates the router with middleware, user routes, the health
// check and, when enabled, the metrics endpoint.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	tracer := noop.NewTracerProvider().Tracer("")
	if app.telemetry != nil {
		tracer = app.telemetry.Tracer()
	}
	r.Use(apiMiddleware.NewTracingMiddleware(tracer))

	if app.config.Metrics.Enabled && app.registry != nil {
		r.Use(apiMiddleware.NewHTTPMetrics(app.registry).Middleware)
	}

	// Recoverer must stay inside the observers for panics to be recorded as 500s.
	r.Use(middleware.Recoverer)

	app.userHandler.RegisterRoutes(r)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	if app.config.Metrics.Enabled && app.registry != nil {
		r.Handle(app.config.Metrics.Path, promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))
	}

	return r
}
