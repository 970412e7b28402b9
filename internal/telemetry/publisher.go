package telemetry

import (
	"context"
	"errors"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
)

// Publisher delivers frame reports somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, r Report) error
	Close() error
}

// LogPublisher writes every report to the logger carried by the context.
type LogPublisher struct{}

var _ Publisher = LogPublisher{}

func (LogPublisher) Publish(ctx context.Context, r Report) error {
	ctxlog.FromContext(ctx).Info("Frame published.",
		"frame", r.Stats.Frame,
		"views", r.Stats.Views,
		"jobs", r.Stats.Jobs,
		"commands", r.Stats.Commands,
		"rebuiltLayerCaches", r.Stats.RebuiltLayerCaches,
		"rebuiltMaterialCaches", r.Stats.RebuiltMaterialCache,
		"duration", r.Stats.Duration,
	)
	return nil
}

func (LogPublisher) Close() error { return nil }

// Multi fans every report out to all publishers. Publishing continues past
// a failing publisher and the errors are joined.
type Multi []Publisher

var _ Publisher = Multi(nil)

func (m Multi) Publish(ctx context.Context, r Report) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
