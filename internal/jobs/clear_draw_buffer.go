package jobs

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/job"
)

// SetClearDrawBufferIndexJob resolves, for every clear of the view, the
// index of the draw buffer it targets among the render target outputs.
// Clears without a target color buffer keep index -1 (all buffers).
type SetClearDrawBufferIndexJob struct {
	job.Base
	source *RenderViewInitializerJob
}

func NewSetClearDrawBufferIndexJob(id string, source *RenderViewInitializerJob) *SetClearDrawBufferIndexJob {
	return &SetClearDrawBufferIndexJob{
		Base:   job.NewBase(id, job.ClearBufferDrawIndex),
		source: source,
	}
}

func (j *SetClearDrawBufferIndexJob) Run(ctx context.Context) error {
	rv := j.source.RenderView()
	if rv == nil {
		return fmt.Errorf("render view for %s has not been initialized", j.ID())
	}
	logger := ctxlog.FromContext(ctx)
	for i := range rv.Clears {
		c := &rv.Clears[i]
		c.DrawBufferIndex = -1
		if c.ColorBuffer == "" {
			continue
		}
		c.DrawBufferIndex = slices.Index(rv.RenderTargetOutputs, c.ColorBuffer)
		if c.DrawBufferIndex < 0 {
			logger.Warn("Clear targets an output missing from the render target.",
				"view", rv.Index(),
				"colorBuffer", c.ColorBuffer,
			)
		}
	}
	return nil
}
