package app

import (
	"io"
	"log/slog"
	"strings"
)

// parseLevel accepts slog's level names (case-insensitive, with offsets such
// as "debug+2") and "warning". Anything else logs at Info.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if strings.EqualFold(s, "warning") {
		s = "warn"
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// newLogger builds the app's logger from cfg without touching the global
// one. Every record carries the scene and worker count of the run; debug
// runs also record the source location.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler).With(
		"app", "framegridgo",
		slog.Group("run", "scene", cfg.ScenePath, "workers", cfg.WorkerCount),
	)
}
