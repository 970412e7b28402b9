// Package renderer drives frames: it owns the scene, the per-leaf cache
// and the fixed jobs every render view depends on, builds one
// RenderViewBuilder per frame-graph leaf and runs all of their jobs on the
// executor.
package renderer

import (
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/framegridgo/internal/executor"
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/rendercache"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// DefaultAPI is the graphics API reported when Config leaves it empty.
var DefaultAPI = scene.GraphicsAPI{Name: "opengl", Major: 4, Minor: 5}

// Config holds the renderer settings.
type Config struct {
	// Workers is the size of the executor pool.
	Workers int
	// JobCount is the number of shards for material gathering and command
	// building. Zero means one per worker.
	JobCount int
	// API decides which techniques are compatible.
	API scene.GraphicsAPI
}

// Renderer implements builder.Renderer.
type Renderer struct {
	managers   *scene.Managers
	frameGraph *framegraph.Node
	cache      *rendercache.Cache
	executor   *executor.Executor
	api        scene.GraphicsAPI
	jobCount   int

	// frameMu serializes frames: the fixed jobs are shared by all of them.
	frameMu sync.Mutex
	frame   uint64
	dirty   atomic.Uint32

	counters counters

	updateSkinningPaletteJob     *job.Func
	updateWorldTransformJob      *job.Func
	updateShaderDataTransformJob *job.Func
	expandBoundingVolumeJob      *job.Func
	updateEntityLayersJob        *job.Func
	updateTreeEnabledJob         *job.Func
	introspectShadersJob         *job.Func
	filterCompatibleTechniqueJob *job.Func
	bufferGathererJob            *job.Func
	textureGathererJob           *job.Func
}

// New creates a renderer for the scene held by managers and the frame
// graph rooted at frameGraph. Every cache is rebuilt on the first frame.
func New(managers *scene.Managers, frameGraph *framegraph.Node, cfg Config) *Renderer {
	workers := max(cfg.Workers, 1)
	jobCount := cfg.JobCount
	if jobCount < 1 {
		jobCount = workers
	}
	api := cfg.API
	if api.Name == "" {
		api = DefaultAPI
	}

	r := &Renderer{
		managers:   managers,
		frameGraph: frameGraph,
		cache:      rendercache.New(),
		executor:   executor.New(workers),
		api:        api,
		jobCount:   jobCount,
	}
	r.dirty.Store(uint32(AllDirty))
	r.createFixedJobs()
	return r
}

func (r *Renderer) NodeManagers() *scene.Managers { return r.managers }

func (r *Renderer) Cache() *rendercache.Cache { return r.cache }

func (r *Renderer) FrameGraph() *framegraph.Node { return r.frameGraph }

func (r *Renderer) API() scene.GraphicsAPI { return r.api }

func (r *Renderer) OptimalJobCount() int { return r.jobCount }

func (r *Renderer) Workers() int { return r.executor.Workers() }

// MarkDirty records scene changes made since the last frame. It is safe to
// call from any goroutine.
func (r *Renderer) MarkDirty(flags DirtyFlag) {
	r.dirty.Or(uint32(flags))
}

// Dirty returns the changes pending for the next frame.
func (r *Renderer) Dirty() DirtyFlag {
	return DirtyFlag(r.dirty.Load())
}

func (r *Renderer) UpdateSkinningPaletteJob() job.Job { return r.updateSkinningPaletteJob }

func (r *Renderer) UpdateWorldTransformJob() job.Job { return r.updateWorldTransformJob }

func (r *Renderer) UpdateShaderDataTransformJob() job.Job { return r.updateShaderDataTransformJob }

func (r *Renderer) ExpandBoundingVolumeJob() job.Job { return r.expandBoundingVolumeJob }

func (r *Renderer) UpdateEntityLayersJob() job.Job { return r.updateEntityLayersJob }

func (r *Renderer) UpdateTreeEnabledJob() job.Job { return r.updateTreeEnabledJob }

func (r *Renderer) IntrospectShadersJob() job.Job { return r.introspectShadersJob }

func (r *Renderer) FilterCompatibleTechniqueJob() job.Job { return r.filterCompatibleTechniqueJob }

func (r *Renderer) BufferGathererJob() job.Job { return r.bufferGathererJob }

func (r *Renderer) TextureGathererJob() job.Job { return r.textureGathererJob }

// FixedJobs returns the ten renderer-owned jobs in a stable order.
func (r *Renderer) FixedJobs() []job.Job {
	return []job.Job{
		r.updateWorldTransformJob,
		r.updateTreeEnabledJob,
		r.updateSkinningPaletteJob,
		r.updateShaderDataTransformJob,
		r.expandBoundingVolumeJob,
		r.updateEntityLayersJob,
		r.introspectShadersJob,
		r.filterCompatibleTechniqueJob,
		r.bufferGathererJob,
		r.textureGathererJob,
	}
}
