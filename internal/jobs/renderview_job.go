package jobs

import (
	"context"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/renderview"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// RenderViewInitializerJob creates the render view of one frame-graph leaf
// and configures it from the leaf-to-root path.
type RenderViewInitializerJob struct {
	job.Base
	index      int
	leaf       *framegraph.Node
	managers   *scene.Managers
	renderView *renderview.RenderView
}

func NewRenderViewInitializerJob(id string, index int, leaf *framegraph.Node, managers *scene.Managers) *RenderViewInitializerJob {
	return &RenderViewInitializerJob{
		Base:     job.NewBase(id, job.RenderView),
		index:    index,
		leaf:     leaf,
		managers: managers,
	}
}

func (j *RenderViewInitializerJob) Run(ctx context.Context) error {
	rv := renderview.New(j.index, j.leaf, j.managers)
	renderview.ConfigureFromLeaf(rv)
	j.renderView = rv
	ctxlog.FromContext(ctx).Debug("Render view initialized.",
		"view", j.index,
		"leaf", j.leaf.Name,
		"layerFilters", len(rv.LayerFilters),
		"hasCamera", rv.HasCamera(),
	)
	return nil
}

// RenderView returns the view created by the last run, or nil before the
// first run.
func (j *RenderViewInitializerJob) RenderView() *renderview.RenderView { return j.renderView }

func (j *RenderViewInitializerJob) Index() int { return j.index }
