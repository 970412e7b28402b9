package jobs

import (
	"context"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// FilterProximityDistanceJob keeps the enabled entities lying within the
// distance of every proximity filter's target entity. Distances are
// measured between world bounding sphere centers.
type FilterProximityDistanceJob struct {
	job.Base
	managers *scene.Managers
	filters  []*framegraph.Node
	filtered []*scene.Entity
}

func NewFilterProximityDistanceJob(id string, managers *scene.Managers) *FilterProximityDistanceJob {
	return &FilterProximityDistanceJob{
		Base:     job.NewBase(id, job.ProximityFiltering),
		managers: managers,
	}
}

func (j *FilterProximityDistanceJob) SetProximityFilters(filters []*framegraph.Node) {
	j.filters = filters
}

func (j *FilterProximityDistanceJob) ProximityFilters() []*framegraph.Node { return j.filters }

func (j *FilterProximityDistanceJob) HasProximityFilter() bool { return len(j.filters) > 0 }

// FilteredEntities returns the entities kept by the last run. Without any
// proximity filter every enabled entity is kept.
func (j *FilterProximityDistanceJob) FilteredEntities() []*scene.Entity { return j.filtered }

func (j *FilterProximityDistanceJob) Run(ctx context.Context) error {
	j.filtered = nil
	if j.managers == nil {
		return nil
	}
	candidates := j.managers.EnabledEntities()
	for _, f := range j.filters {
		target := j.managers.Entity(f.ProximityEntity)
		if target == nil {
			candidates = nil
			break
		}
		center := target.WorldBounds().Center
		if target.WorldBounds().IsEmpty() {
			center = target.WorldPosition()
		}
		kept := candidates[:0:0]
		for _, e := range candidates {
			cb := e.CullingBounds()
			if cb.IsEmpty() {
				continue
			}
			if cb.Center.Sub(center).Len() <= f.ProximityDistance {
				kept = append(kept, e)
			}
		}
		candidates = kept
	}
	j.filtered = candidates
	ctxlog.FromContext(ctx).Debug("Proximity filtering done.", "job", j.ID(), "kept", len(j.filtered))
	return nil
}
