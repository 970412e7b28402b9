package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/specialistvlad/framegridgo/internal/config"
	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/telemetry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	loader     config.Loader
	publishers []telemetry.Publisher
	httpServer *http.Server

	lastReport atomic.Pointer[telemetry.Report]
}

// NewApp is the constructor for the main application. Publishers replace
// the default ones (log, plus socket.io when a telemetry URL is set).
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, publishers ...telemetry.Publisher) *App {
	logger := newLogger(cfg, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		ctx:        ctxlog.WithLogger(context.Background(), logger),
		outW:       outW,
		logger:     logger,
		config:     cfg,
		loader:     loader,
		publishers: publishers,
	}
}

// LastReport returns the report of the most recent completed frame.
func (a *App) LastReport() (telemetry.Report, bool) {
	r := a.lastReport.Load()
	if r == nil {
		return telemetry.Report{}, false
	}
	return *r, true
}
