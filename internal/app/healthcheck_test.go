package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/specialistvlad/framegridgo/internal/renderer"
	"github.com/specialistvlad/framegridgo/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg, err := NewConfig(Config{ScenePath: "scene.hcl", Frames: 1, WorkerCount: 1, LogLevel: "debug", LogFormat: "json"})
	require.NoError(t, err)
	return NewApp(&buf, cfg, nil), &buf
}

func TestHealthEndpoint(t *testing.T) {
	a, logs := newTestApp(t)

	rec := httptest.NewRecorder()
	a.healthMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
	assert.Contains(t, logs.String(), "Health check endpoint hit.")
}

func TestStatsEndpoint(t *testing.T) {
	a, _ := newTestApp(t)
	mux := a.healthMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code, "no frame has completed yet")

	report := telemetry.Report{
		Stats: renderer.FrameStats{Frame: 7, Views: 1, Jobs: 25, Commands: 4},
		Views: []telemetry.ViewSummary{{Index: 0, Leaf: "main", Commands: 4}},
	}
	a.lastReport.Store(&report)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got telemetry.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, report, got)
}

func TestHealthCheckServerDisabled(t *testing.T) {
	a, _ := newTestApp(t)
	a.healthCheckServer()
	assert.Nil(t, a.httpServer)
	assert.NoError(t, a.closeHealthCheckServer())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{ScenePath: "scenes/basic.hcl", WorkerCount: 3, LogLevel: "warn", LogFormat: "json"}
	logger := newLogger(cfg, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"app":"framegridgo"`)
	assert.Contains(t, out, `"run":{"scene":"scenes/basic.hcl","workers":3}`)
	assert.NotContains(t, out, `"source"`, "source locations are for debug runs")

	buf.Reset()
	newLogger(&Config{LogLevel: "bogus", LogFormat: "text"}, &buf).Info("default level")
	assert.Contains(t, buf.String(), "msg=\"default level\"")

	buf.Reset()
	newLogger(&Config{LogLevel: "DEBUG", LogFormat: "json"}, &buf).Debug("traced")
	assert.Contains(t, buf.String(), `"msg":"traced"`)
	assert.Contains(t, buf.String(), `"source":`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "Info", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "WARN", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "debug+2", want: slog.LevelDebug + 2},
		{in: "", want: slog.LevelInfo},
		{in: "loud", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}
