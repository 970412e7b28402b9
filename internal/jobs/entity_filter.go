package jobs

import (
	"context"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// EntityPredicate decides whether an entity carries the wanted components.
type EntityPredicate func(*scene.Entity) bool

// IsRenderable holds for entities with both geometry and a material.
func IsRenderable(e *scene.Entity) bool { return e.Geometry != nil && e.Material != nil }

// IsComputable holds for entities with both a compute command and a
// material.
func IsComputable(e *scene.Entity) bool { return e.Compute != nil && e.Material != nil }

// FilterEntityByComponentJob selects the enabled entities satisfying a
// component predicate.
type FilterEntityByComponentJob struct {
	job.Base
	managers  *scene.Managers
	predicate EntityPredicate
	filtered  []*scene.Entity
}

func NewFilterEntityByComponentJob(id string, typ job.Type, managers *scene.Managers, predicate EntityPredicate) *FilterEntityByComponentJob {
	return &FilterEntityByComponentJob{
		Base:      job.NewBase(id, typ),
		managers:  managers,
		predicate: predicate,
	}
}

func NewRenderableEntityFilterJob(id string, managers *scene.Managers) *FilterEntityByComponentJob {
	return NewFilterEntityByComponentJob(id, job.RenderableEntityFilter, managers, IsRenderable)
}

func NewComputableEntityFilterJob(id string, managers *scene.Managers) *FilterEntityByComponentJob {
	return NewFilterEntityByComponentJob(id, job.ComputableEntityFilter, managers, IsComputable)
}

func (j *FilterEntityByComponentJob) FilteredEntities() []*scene.Entity { return j.filtered }

func (j *FilterEntityByComponentJob) Run(ctx context.Context) error {
	j.filtered = nil
	if j.managers == nil {
		return nil
	}
	for _, e := range j.managers.EnabledEntities() {
		if j.predicate(e) {
			j.filtered = append(j.filtered, e)
		}
	}
	ctxlog.FromContext(ctx).Debug("Component filtering done.", "job", j.ID(), "kept", len(j.filtered))
	return nil
}
