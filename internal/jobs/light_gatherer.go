package jobs

import (
	"context"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// LightSource pairs a light with the entity carrying it.
type LightSource struct {
	Entity *scene.Entity
	Light  *scene.Light
}

// LightGathererJob collects the lights of every enabled entity and the
// first environment light found.
type LightGathererJob struct {
	job.Base
	managers         *scene.Managers
	lights           []LightSource
	environmentLight *scene.EnvironmentLight
}

func NewLightGathererJob(id string, managers *scene.Managers) *LightGathererJob {
	return &LightGathererJob{
		Base:     job.NewBase(id, job.LightGathering),
		managers: managers,
	}
}

func (j *LightGathererJob) Lights() []LightSource { return j.lights }

// TakeEnvironmentLight hands the environment light over to the caller.
// Subsequent calls return nil until the job runs again.
func (j *LightGathererJob) TakeEnvironmentLight() *scene.EnvironmentLight {
	env := j.environmentLight
	j.environmentLight = nil
	return env
}

func (j *LightGathererJob) Run(ctx context.Context) error {
	j.lights = nil
	j.environmentLight = nil
	if j.managers == nil {
		return nil
	}
	for _, e := range j.managers.EnabledEntities() {
		if e.Light != nil {
			j.lights = append(j.lights, LightSource{Entity: e, Light: e.Light})
		}
		if e.EnvironmentLight != nil && j.environmentLight == nil {
			j.environmentLight = e.EnvironmentLight
		}
	}
	ctxlog.FromContext(ctx).Debug("Lights gathered.",
		"job", j.ID(),
		"lights", len(j.lights),
		"environmentLight", j.environmentLight != nil,
	)
	return nil
}
