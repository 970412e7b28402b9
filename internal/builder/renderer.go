package builder

import (
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/rendercache"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// Renderer provides what every render view of a frame shares: the scene,
// the per-leaf cache, the shard count and the fixed jobs that run once per
// frame regardless of how many views depend on them.
type Renderer interface {
	NodeManagers() *scene.Managers
	Cache() *rendercache.Cache
	// OptimalJobCount is the number of shards the material gathering and
	// command building stages are split into.
	OptimalJobCount() int

	UpdateSkinningPaletteJob() job.Job
	UpdateWorldTransformJob() job.Job
	UpdateShaderDataTransformJob() job.Job
	ExpandBoundingVolumeJob() job.Job
	UpdateEntityLayersJob() job.Job
	UpdateTreeEnabledJob() job.Job
	IntrospectShadersJob() job.Job
	FilterCompatibleTechniqueJob() job.Job
	BufferGathererJob() job.Job
	TextureGathererJob() job.Job
}
