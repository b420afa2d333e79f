package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/users", nil)

	RespondWithJSON(w, r, http.StatusCreated, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"1"}`, w.Body.String())
}

func TestRespondWithRawJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/users", nil)
	payload := json.RawMessage(`{"affectedRows":1,  "insertId":42}`)

	RespondWithRawJSON(w, r, http.StatusOK, payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, string(payload), w.Body.String(), "payload must be written byte for byte")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	r = r.WithContext(WithTraceID(r.Context(), "trace-456"))

	RespondWithErrorAndLog(w, r, http.StatusBadGateway, "Query service unavailable",
		errors.New("dial tcp: password=hunter22 refused"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Query service unavailable", resp.Error)
	assert.Equal(t, "trace-456", resp.TraceID)
	assert.NotContains(t, w.Body.String(), "hunter22", "raw error must never reach the client")
}
