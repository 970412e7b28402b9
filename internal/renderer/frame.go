package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/framegridgo/internal/builder"
	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/renderview"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// FrameStats describes one completed frame.
type FrameStats struct {
	Frame                uint64        `json:"frame"`
	Views                int           `json:"views"`
	Jobs                 int           `json:"jobs"`
	Commands             int           `json:"commands"`
	RebuiltLayerCaches   int           `json:"rebuiltLayerCaches"`
	RebuiltMaterialCache int           `json:"rebuiltMaterialCaches"`
	SkinningPalettes     int           `json:"skinningPalettes"`
	CompatibleTechniques int           `json:"compatibleTechniques"`
	IntrospectedShaders  int           `json:"introspectedShaders"`
	BuffersUploaded      int           `json:"buffersUploaded"`
	TexturesUploaded     int           `json:"texturesUploaded"`
	Duration             time.Duration `json:"duration"`
}

// Frame is the result of one call to Renderer.Frame.
type Frame struct {
	// Views are ordered by render-view index, i.e. frame-graph leaf order.
	Views []*renderview.RenderView
	Stats FrameStats
}

// Frame builds and runs the jobs of every render view of the frame graph.
// When the frame fails, the pending scene changes are kept so that the next
// frame rebuilds the same caches.
func (r *Renderer) Frame(ctx context.Context) (*Frame, error) {
	r.frameMu.Lock()
	defer r.frameMu.Unlock()

	start := time.Now()
	r.frame++
	logger := ctxlog.FromContext(ctx).With("frame", r.frame)
	ctx = ctxlog.WithLogger(ctx, logger)

	dirty := DirtyFlag(r.dirty.Swap(0))
	changes := cacheFlagsFor(dirty)
	leaves := framegraph.Leaves(r.frameGraph)
	r.counters.reset()

	liveIDs := make([]scene.NodeID, len(leaves))
	var newLeaves []scene.NodeID
	builders := make([]*builder.RenderViewBuilder, len(leaves))
	jobs := r.FixedJobs()
	stats := FrameStats{Frame: r.frame, Views: len(leaves)}

	for i, leaf := range leaves {
		liveIDs[i] = leaf.ID()
		flags := changes
		if !r.cache.Has(leaf.ID()) {
			flags = allCaches
			newLeaves = append(newLeaves, leaf.ID())
		}
		b := builder.New(leaf, i, r)
		b.SetLayerCacheNeedsToBeRebuilt(flags.layer)
		b.SetMaterialGathererCacheNeedsToBeRebuilt(flags.material)
		b.SetLightGathererCacheNeedsToBeRebuilt(flags.light)
		b.SetRenderableCacheNeedsToBeRebuilt(flags.renderable)
		b.SetComputableCacheNeedsToBeRebuilt(flags.computable)
		b.PrepareJobs()
		jobs = append(jobs, b.BuildJobHierarchy()...)
		builders[i] = b

		if flags.layer {
			stats.RebuiltLayerCaches++
		}
		if flags.material {
			stats.RebuiltMaterialCache++
		}
	}
	if removed := r.cache.Retain(liveIDs); removed > 0 {
		logger.Debug("Dropped cache entries of removed leaves.", "count", removed)
	}

	logger.Info("Frame started.", "views", len(leaves), "jobs", len(jobs), "dirty", fmt.Sprintf("%#x", uint32(dirty)))
	report, err := r.executor.Run(ctx, jobs)
	if err != nil {
		r.dirty.Or(uint32(dirty))
		for _, id := range newLeaves {
			r.cache.Remove(id)
		}
		logger.Error("Frame failed.", "error", err)
		return nil, fmt.Errorf("frame %d: %w", r.frame, err)
	}

	out := &Frame{Views: make([]*renderview.RenderView, len(builders))}
	for i, b := range builders {
		rv := b.RenderViewJob().RenderView()
		out.Views[i] = rv
		stats.Commands += len(rv.Commands)
	}
	stats.Jobs = report.Jobs
	stats.SkinningPalettes = int(r.counters.skinningPalettes.Load())
	stats.CompatibleTechniques = int(r.counters.compatibleTechniques.Load())
	stats.IntrospectedShaders = int(r.counters.introspectedShaders.Load())
	stats.BuffersUploaded = int(r.counters.buffersUploaded.Load())
	stats.TexturesUploaded = int(r.counters.texturesUploaded.Load())
	stats.Duration = time.Since(start)
	out.Stats = stats

	logger.Info("Frame complete.",
		"views", stats.Views,
		"jobs", stats.Jobs,
		"commands", stats.Commands,
		"duration", stats.Duration,
	)
	return out, nil
}
