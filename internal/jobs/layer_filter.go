package jobs

import (
	"context"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// FilterLayerEntityJob selects the enabled entities accepted by every layer
// filter of a view. Without layer filters every enabled entity passes.
type FilterLayerEntityJob struct {
	job.Base
	managers *scene.Managers
	filters  []*framegraph.Node
	filtered []*scene.Entity
}

func NewFilterLayerEntityJob(id string, managers *scene.Managers) *FilterLayerEntityJob {
	return &FilterLayerEntityJob{
		Base:     job.NewBase(id, job.EntityLayerFiltering),
		managers: managers,
	}
}

func (j *FilterLayerEntityJob) SetLayerFilters(filters []*framegraph.Node) { j.filters = filters }

func (j *FilterLayerEntityJob) LayerFilters() []*framegraph.Node { return j.filters }

func (j *FilterLayerEntityJob) HasLayerFilter() bool { return len(j.filters) > 0 }

func (j *FilterLayerEntityJob) FilteredEntities() []*scene.Entity { return j.filtered }

func (j *FilterLayerEntityJob) Run(ctx context.Context) error {
	j.filtered = nil
	if j.managers == nil {
		return nil
	}
	entities := j.managers.EnabledEntities()
	for _, f := range j.filters {
		// A filter naming no layers constrains nothing.
		if len(f.Layers) == 0 {
			continue
		}
		kept := entities[:0:0]
		for _, e := range entities {
			if layerFilterAccepts(f.LayerMode, f.Layers, e) {
				kept = append(kept, e)
			}
		}
		entities = kept
	}
	j.filtered = entities
	ctxlog.FromContext(ctx).Debug("Layer filtering done.",
		"job", j.ID(),
		"filters", len(j.filters),
		"kept", len(j.filtered),
	)
	return nil
}

func layerFilterAccepts(mode framegraph.LayerFilterMode, layers []scene.NodeID, e *scene.Entity) bool {
	matched := 0
	for _, id := range layers {
		if e.HasLayer(id) {
			matched++
		}
	}
	switch mode {
	case framegraph.AcceptAllMatchingLayers:
		return matched == len(layers)
	case framegraph.DiscardAnyMatchingLayers:
		return matched == 0
	case framegraph.DiscardAllMatchingLayers:
		return matched < len(layers)
	default:
		return matched > 0
	}
}
