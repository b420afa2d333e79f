// Package telemetry configures OpenTelemetry tracing for the service.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/phrazzld/lola-users/internal/config"
)

// InstrumentationName identifies spans created by this service.
const InstrumentationName = "github.com/phrazzld/lola-users"

// Provider owns the tracer provider and its shutdown.
type Provider struct {
	provider trace.TracerProvider
	shutdown func(context.Context) error
}

// Setup builds a Provider from cfg. When tracing is disabled every tracer is
// a no-op. When enabled without a Jaeger endpoint, spans are created (so
// trace IDs propagate) but not exported.
func Setup(cfg config.TracingConfig, logger *slog.Logger) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{
			provider: noop.NewTracerProvider(),
			shutdown: func(context.Context) error { return nil },
		}, nil
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	}

	if cfg.JaegerEndpoint != "" {
		exporter, err := jaeger.New(
			jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create jaeger exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
		logger.Info("trace export enabled", "jaeger_endpoint", cfg.JaegerEndpoint)
	} else {
		logger.Info("tracing enabled without exporter")
	}

	tp := sdktrace.NewTracerProvider(opts...)
	return newProvider(tp), nil
}

// NewProvider wraps an existing SDK tracer provider, e.g. one backed by a
// span recorder in tests.
func NewProvider(tp *sdktrace.TracerProvider) *Provider {
	return newProvider(tp)
}

func newProvider(tp *sdktrace.TracerProvider) *Provider {
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Provider{
		provider: tp,
		shutdown: tp.Shutdown,
	}
}

// Tracer returns the service tracer.
func (p *Provider) Tracer() trace.Tracer {
	return p.provider.Tracer(InstrumentationName)
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.shutdown(ctx)
}
