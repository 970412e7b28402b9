package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
)

// worker is the core processing loop for a single concurrent worker. It
// returns the first job failure it sees, which cancels ctx for the others;
// jobs that merely observed that cancellation are skipped, not failed.
func (e *Executor) worker(ctx context.Context, b *batch, workerID int) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)
	defer logger.Debug("Worker finished.", "workerID", workerID)

	for t := range b.readyChan {
		workerLogger := logger.With("workerID", workerID, "jobID", t.job.ID())

		if ctx.Err() != nil {
			t.skipOnce.Do(func() {
				workerLogger.Debug("Context canceled, skipping job.")
				b.resolve(t, failed, ctx.Err())
			})
			e.skipDependents(ctx, b, t)
			continue
		}

		t.state.Store(int32(running))
		err := runJob(ctx, t)
		if err != nil {
			e.skipDependents(ctx, b, t)
			b.resolve(t, failed, err)
			if ctx.Err() != nil && errors.Is(err, context.Canceled) {
				workerLogger.Debug("Job stopped by cancellation.")
				continue
			}
			workerLogger.Error("Job execution failed.", "type", t.job.Type(), "error", err)
			return err
		}

		for _, dependent := range t.dependents {
			if dependent.depCount.Add(-1) == 0 {
				b.readyChan <- dependent
			}
		}
		b.resolve(t, done, nil)
	}
	return nil
}

// runJob runs the job, turning a panic into an error so one broken job
// cannot take the frame down with it.
func runJob(ctx context.Context, t *task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", t.job.ID(), r)
		}
	}()
	return t.job.Run(ctx)
}

// skipDependents recursively marks all downstream jobs as skipped.
func (e *Executor) skipDependents(ctx context.Context, b *batch, t *task) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range t.dependents {
		dependent.skipOnce.Do(func() {
			logger.Debug("Skipping dependent job due to upstream failure.", "jobID", dependent.job.ID(), "dependency", t.job.ID())
			e.skipDependents(ctx, b, dependent)
			b.resolve(dependent, failed, fmt.Errorf("%w due to upstream failure of '%s'", ErrSkipped, t.job.ID()))
		})
	}
}
