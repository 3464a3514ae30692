package respond_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailrelay/internal/respond"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respond.Success(rec, http.StatusOK, "Email sent successfully", map[string]any{"messageId": "id-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Email sent successfully", body["message"])
	require.Equal(t, map[string]any{"messageId": "id-1"}, body["data"])

	ts, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("without stack", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		respond.Error(rec, http.StatusUnauthorized, "invalid API key", "")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decode(t, rec)
		require.Equal(t, false, body["success"])
		require.Equal(t, "invalid API key", body["error"])
		require.NotContains(t, body, "stack")
	})

	t.Run("with stack", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		respond.Error(rec, http.StatusInternalServerError, "boom", "goroutine 1 [running]")

		body := decode(t, rec)
		require.Equal(t, "goroutine 1 [running]", body["stack"])
	})
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respond.NotFound(rec, "route GET /nope not found")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "Not Found", body["error"])
	require.Equal(t, "route GET /nope not found", body["message"])
	require.NotEmpty(t, body["timestamp"])
}
