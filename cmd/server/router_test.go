package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lola-users/internal/api/shared"
	"github.com/phrazzld/lola-users/internal/config"
	"github.com/phrazzld/lola-users/internal/mocks"
	"github.com/phrazzld/lola-users/internal/platform/logger"
	"github.com/phrazzld/lola-users/internal/query"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "debug", LogFormat: "json"},
		Query:  config.QueryConfig{APIKey: "test-key", BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1},
		Operations: config.OperationsConfig{
			ListUsers:  "q_list",
			GetUser:    "q_get",
			CreateUser: "q_create",
			UpdateUser: "q_update",
			DeleteUser: "q_delete",
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// newTestServer starts the full router in front of executor.
func newTestServer(t *testing.T, cfg *config.Config, executor query.Executor) *httptest.Server {
	t.Helper()

	log, _ := logger.NewTestLogger(t)
	app := newApplicationWithExecutor(cfg, log, executor, newRegistry(), nil)
	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestRouter_UserRoutes(t *testing.T) {
	tests := []struct {
		method      string
		path        string
		body        string
		operationID string
	}{
		{http.MethodGet, "/users", "", "q_list"},
		{http.MethodGet, "/users/1", "", "q_get"},
		{http.MethodPost, "/users", `{"firstName":"A"}`, "q_create"},
		{http.MethodPut, "/users/1", `{"lastName":"B"}`, "q_update"},
		{http.MethodDelete, "/users/1", "", "q_delete"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			executor := mocks.NewMockQueryExecutor(query.NewDataResult(json.RawMessage(`{"ok":true}`)))
			server := newTestServer(t, testConfig(), executor)

			resp, body := doRequest(t, tc.method, server.URL+tc.path, tc.body)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, `{"ok":true}`, body)
			assert.NotEmpty(t, resp.Header.Get(shared.TraceIDHeader))

			req, ok := executor.LastRequest()
			require.True(t, ok)
			assert.Equal(t, tc.operationID, req.OperationID)
		})
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	executor := mocks.NewMockQueryExecutor(nil)
	server := newTestServer(t, testConfig(), executor)

	resp, _ := doRequest(t, http.MethodPatch, server.URL+"/users/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, server.URL+"/accounts", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Empty(t, executor.Requests())
}

func TestRouter_RemoteFailure(t *testing.T) {
	payload := `{"message":"constraint violation"}`
	executor := mocks.NewMockQueryExecutor(query.NewErrorResult(json.RawMessage(payload)))
	server := newTestServer(t, testConfig(), executor)

	resp, body := doRequest(t, http.MethodDelete, server.URL+"/users/9", "")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, payload, body)
}

func TestRouter_ExecutorErrorEnvelope(t *testing.T) {
	executor := &mocks.MockQueryExecutor{Err: query.ErrUnavailable}
	server := newTestServer(t, testConfig(), executor)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/users", nil)
	require.NoError(t, err)
	req.Header.Set(shared.TraceIDHeader, "caller-trace-1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "caller-trace-1", resp.Header.Get(shared.TraceIDHeader))

	var envelope shared.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "Query service unavailable", envelope.Error)
	assert.Equal(t, "caller-trace-1", envelope.TraceID)
}

func TestRouter_PanicIsRecovered(t *testing.T) {
	calls := 0
	executor := &mocks.MockQueryExecutor{
		ExecuteFn: func(ctx context.Context, req query.Request) (*query.Result, error) {
			calls++
			if calls == 1 {
				panic("boom")
			}
			return query.NewDataResult(json.RawMessage(`[]`)), nil
		},
	}
	server := newTestServer(t, testConfig(), executor)

	resp, _ := doRequest(t, http.MethodGet, server.URL+"/users", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, body := doRequest(t, http.MethodGet, server.URL+"/users", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "server keeps serving after a panic")
	assert.Equal(t, `[]`, body)
}

func TestRouter_Health(t *testing.T) {
	executor := mocks.NewMockQueryExecutor(nil)
	server := newTestServer(t, testConfig(), executor)

	resp, body := doRequest(t, http.MethodGet, server.URL+"/health", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
	assert.Empty(t, executor.Requests())
}

func TestRouter_Metrics(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		executor := mocks.NewMockQueryExecutor(query.NewDataResult(json.RawMessage(`[]`)))
		server := newTestServer(t, testConfig(), executor)

		doRequest(t, http.MethodGet, server.URL+"/users/42", "")
		resp, body := doRequest(t, http.MethodGet, server.URL+"/metrics", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "http_requests_total")
		assert.Contains(t, body, `route="/users/{id}"`)
		assert.Contains(t, body, "go_goroutines")
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Metrics.Enabled = false
		server := newTestServer(t, cfg, mocks.NewMockQueryExecutor(nil))

		resp, _ := doRequest(t, http.MethodGet, server.URL+"/metrics", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRouter_QueryServiceOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		envelope   string
		wantStatus int
		wantBody   string
	}{
		{"null data and error", `{"data":null,"error":null}`, http.StatusOK, `null`},
		{"null data", `{"data":null}`, http.StatusOK, `null`},
		{"rows", `{"data":[{"id":"999"}]}`, http.StatusOK, `[{"id":"999"}]`},
		{"error next to data", `{"data":[],"error":"boom"}`, http.StatusInternalServerError, `"boom"`},
		{"not an envelope", `<html>bad gateway</html>`, http.StatusBadGateway, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			queryService := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.envelope))
			}))
			t.Cleanup(queryService.Close)

			cfg := testConfig()
			cfg.Query.BaseURL = queryService.URL
			log, _ := logger.NewTestLogger(t)
			app, err := newApplication(cfg, log)
			require.NoError(t, err)

			server := httptest.NewServer(app.setupRouter())
			t.Cleanup(server.Close)

			for _, method := range []string{http.MethodGet, http.MethodDelete} {
				resp, body := doRequest(t, method, server.URL+"/users/999", "")

				assert.Equal(t, tc.wantStatus, resp.StatusCode, method)
				if tc.wantBody != "" {
					assert.Equal(t, tc.wantBody, body, method)
				}
			}
		})
	}
}
