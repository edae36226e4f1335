package sse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholar-metrics-go/internal/model"
)

func decodeEvents(t *testing.T, body string) []map[string]interface{} {
	t.Helper()
	var events []map[string]interface{}
	for _, chunk := range strings.Split(body, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		require.True(t, strings.HasPrefix(chunk, "data: "), "bad event %q", chunk)
		var ev map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(chunk, "data: ")), &ev))
		events = append(events, ev)
	}
	return events
}

func TestWriter_LoadingThenDone(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec)
	require.NoError(t, err)

	w.SetQuery("H7sOPf8AAAAJ")
	require.NoError(t, w.SetAction("Fetching Google Scholar page..."))
	require.NoError(t, w.Done("name: Jane Doe\n"))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := decodeEvents(t, rec.Body.String())
	require.Len(t, events, 2)
	assert.Equal(t, model.StatusLoading, events[0]["status"])
	assert.Equal(t, "H7sOPf8AAAAJ", events[0]["query"])
	assert.Equal(t, model.StatusCompleted, events[1]["status"])
	assert.Equal(t, "name: Jane Doe\n", events[1]["result"])
	assert.NotContains(t, events[1], "error")
}

func TestWriter_SendError(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec)
	require.NoError(t, err)

	require.NoError(t, w.SendError("name_not_found", "Failed to find the name on the website"))

	events := decodeEvents(t, rec.Body.String())
	require.Len(t, events, 1)
	assert.Equal(t, model.StatusError, events[0]["status"])
	assert.Equal(t, "name_not_found", events[0]["error_kind"])
	assert.Equal(t, "Failed to find the name on the website", events[0]["error"])
}

func TestWriter_Heartbeat(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriterWithHeartbeat(rec, 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Done("ok"))

	events := decodeEvents(t, rec.Body.String())
	require.GreaterOrEqual(t, len(events), 2)
	assert.Equal(t, model.StatusHeartbeat, events[0]["status"])
	assert.Equal(t, model.StatusCompleted, events[len(events)-1]["status"])
}

func TestWriter_StopHeartbeatIdempotent(t *testing.T) {
	w, err := NewWriter(httptest.NewRecorder())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		w.StopHeartbeat()
		w.StopHeartbeat()
		_ = w.Done("x")
	})
}

// nonFlusher 不支持流式输出的ResponseWriter
type nonFlusher struct {
	http.ResponseWriter
}

func TestNewWriter_StreamingNotSupported(t *testing.T) {
	_, err := NewWriter(nonFlusher{httptest.NewRecorder()})
	assert.EqualError(t, err, "streaming not supported")
}
