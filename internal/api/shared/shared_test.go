package shared

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, TraceIDLength*2)

	// Two contexts never share a trace ID.
	other := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, traceID, other)

	assert.Equal(t, "", GetTraceID(context.Background()))
}

func TestUserIDContext(t *testing.T) {
	t.Parallel()

	ctx := WithUserID(context.Background(), 42)
	userID, ok := UserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)

	_, ok = UserID(context.Background())
	assert.False(t, ok)
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, r, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	r := httptest.NewRequest(http.MethodGet, "/tasks", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithError(w, r, http.StatusNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Task not found")
	assert.Contains(t, w.Body.String(), GetTraceID(ctx))
}

func TestRespondWithErrorAndLog_SanitizesBody(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()

	internal := errors.New("pq: connection to postgres://u:hunter2@db failed")
	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", internal)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	var payload struct {
		Title string `json:"title"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Buy milk"}`))
	require.NoError(t, DecodeJSON(r, &payload))
	assert.Equal(t, "Buy milk", payload.Title)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	assert.Error(t, DecodeJSON(r, &payload))
}
