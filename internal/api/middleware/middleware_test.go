package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/phrazzld/lola-users/internal/api/shared"
	"github.com/phrazzld/lola-users/internal/platform/logger"
)

// newRouter mounts handler on GET /users/{id} behind mw.
func newRouter(mw func(http.Handler) http.Handler, handler http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(mw)
	r.Get("/users/{id}", handler)
	return r
}

func TestTraceMiddleware(t *testing.T) {
	base, logBuf := logger.NewTestLogger(t)

	var seenTraceID string
	router := newRouter(NewTraceMiddleware(base), func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("generates trace id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/1", nil))

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Len(t, seenTraceID, 32)
		assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))

		entries, err := logBuf.GetLogEntries()
		require.NoError(t, err)
		var handlerEntry map[string]interface{}
		for _, e := range entries {
			if e["msg"] == "inside handler" {
				handlerEntry = e
			}
		}
		require.NotNil(t, handlerEntry, "handler should log through the request logger")
		assert.Equal(t, seenTraceID, handlerEntry["trace_id"])
		logger.AssertLogContains(t, logBuf, `"status_code":418`)
	})

	t.Run("reuses caller trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
		req.Header.Set(shared.TraceIDHeader, "caller-trace")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "caller-trace", seenTraceID)
		assert.Equal(t, "caller-trace", w.Header().Get(shared.TraceIDHeader))
	})

	t.Run("ignores oversized caller trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
		req.Header.Set(shared.TraceIDHeader, strings.Repeat("x", maxTraceIDLength+1))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Len(t, seenTraceID, 32)
	})
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)

	router := newRouter(metrics.Middleware, func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("{}"))
	})

	for _, path := range []string{"/users/1", "/users/2", "/users/boom"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requestTotal.WithLabelValues("GET", "/users/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requestTotal.WithLabelValues("GET", "/users/{id}", "500")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.requestDuration, "http_request_duration_seconds"))
}

func TestTracingMiddleware(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	router := newRouter(NewTracingMiddleware(tp.Tracer("test")), func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/boom", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, "GET /users/{id}", span.Name())
	}
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
