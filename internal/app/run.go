package app

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/renderer"
	"github.com/specialistvlad/framegridgo/internal/telemetry"
)

// Run loads the scene and renders the configured number of frames,
// publishing a report after each one.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()
	defer a.closeHealthCheckServer()

	sc, err := a.loader.Load(ctx, a.config.ScenePath)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}
	leaves := sc.Leaves()
	a.logger.Info("Scene loaded.", "entities", len(sc.Entities), "views", len(leaves))
	if len(leaves) == 0 {
		a.logger.Warn("Frame graph has no enabled leaves, frames will be empty.")
	}

	pub, err := a.publisher(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := pub.Close(); err != nil {
			a.logger.Warn("Closing publishers failed.", "error", err)
		}
	}()

	r := renderer.New(sc.Managers, sc.FrameGraph, renderer.Config{
		Workers:  a.config.WorkerCount,
		JobCount: a.config.JobCount,
	})
	a.logger.Info("🚀 Rendering frames...", "frames", a.config.Frames, "workers", r.Workers(), "jobCount", r.OptimalJobCount())

	for i := 0; i < a.config.Frames; i++ {
		if i > 0 && a.config.FrameInterval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(a.config.FrameInterval):
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := r.Frame(ctx)
		if err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		report := telemetry.NewReport(frame)
		a.lastReport.Store(&report)
		if err := pub.Publish(ctx, report); err != nil {
			a.logger.Warn("Publishing frame report failed.", "frame", report.Stats.Frame, "error", err)
		}
	}

	a.logger.Info("🏁 Rendering finished.", "frames", a.config.Frames)
	return nil
}

func (a *App) publisher(ctx context.Context) (telemetry.Publisher, error) {
	if len(a.publishers) > 0 {
		return telemetry.Multi(a.publishers), nil
	}
	pubs := telemetry.Multi{telemetry.LogPublisher{}}
	if a.config.TelemetryURL != "" {
		sio, err := telemetry.DialSocketIO(ctx, telemetry.SocketIOOptions{
			URL:                a.config.TelemetryURL,
			Namespace:          a.config.TelemetryNamespace,
			InsecureSkipVerify: a.config.InsecureSkipVerify,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect telemetry: %w", err)
		}
		pubs = append(pubs, sio)
	}
	return pubs, nil
}
