package lola

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/phrazzld/lola-users/internal/config"
	"github.com/phrazzld/lola-users/internal/query"
)

const (
	executePath = "query/execute"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 10 << 20
)

// executeRequest is the wire form of a query.Request.
type executeRequest struct {
	QueryID string `json:"queryId"`
	Context any    `json:"context"`
}

// Client executes operations on the Lola query service. It is safe for
// concurrent use and is meant to be created once and shared.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    *Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTracer sets the tracer used for client spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// WithMetrics sets the collectors that observe each call.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Client from cfg.
//
// Parameters:
//   - cfg: API key, base URL and timeout for the query service
//   - logger: A structured logger for call logging
//   - opts: Optional overrides
//
// Returns:
//   - A ready Client or an error if the API key or base URL is unusable
func NewClient(cfg config.QueryConfig, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q needs a scheme and host", ErrInvalidBaseURL, cfg.BaseURL)
	}

	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		endpoint: base.JoinPath(executePath).String(),
		apiKey:   cfg.APIKey,
		logger:   logger.With("component", "lola_client"),
		tracer:   noop.NewTracerProvider().Tracer(""),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Execute runs req on the query service.
//
// A failure reported by the remote operation is returned as a Result with
// its Error payload set and a nil error. A success with no rows may carry a
// null or absent data payload. A non-nil error means the call could not be
// completed or the response body was not a JSON object.
func (c *Client) Execute(ctx context.Context, req query.Request) (result *query.Result, rerr error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "lola.query.execute",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("lola.query_id", req.OperationID)),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		outcome := OutcomeFailure
		switch {
		case rerr != nil:
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Error())
		case result.Failed():
			outcome = OutcomeError
		default:
			outcome = OutcomeData
		}
		span.SetAttributes(attribute.String("lola.outcome", outcome))

		elapsed := time.Since(start)
		c.metrics.observe(req.OperationID, outcome, elapsed)
		c.logger.DebugContext(ctx, "query executed",
			"query_id", req.OperationID,
			"outcome", outcome,
			"duration_ms", elapsed.Milliseconds())
	}()

	body, err := json.Marshal(executeRequest{QueryID: req.OperationID, Context: req.Context})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query context: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create query request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WarnContext(ctx, "failed closing response body", "error", err)
		}
	}()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed reading response body: %w", ErrTransport, err)
	}

	decoded, err := query.DecodeResult(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: status %d: %w", ErrUnexpectedResponse, resp.StatusCode, err)
	}

	return decoded, nil
}
