package renderer

import (
	"context"
	"sync/atomic"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// counters are written by the fixed jobs and read into FrameStats once the
// frame has finished.
type counters struct {
	skinningPalettes     atomic.Int64
	compatibleTechniques atomic.Int64
	introspectedShaders  atomic.Int64
	buffersUploaded      atomic.Int64
	texturesUploaded     atomic.Int64
}

func (c *counters) reset() {
	c.skinningPalettes.Store(0)
	c.compatibleTechniques.Store(0)
	c.introspectedShaders.Store(0)
	c.buffersUploaded.Store(0)
	c.texturesUploaded.Store(0)
}

// createFixedJobs creates the renderer-owned jobs and wires the
// dependencies among them. Their wiring never changes; render views only
// add themselves as dependents.
func (r *Renderer) createFixedJobs() {
	r.updateWorldTransformJob = job.NewFunc("renderer.update_world_transform", job.UpdateWorldTransform,
		func(ctx context.Context) error {
			scene.UpdateWorldTransforms(r.managers.Root())
			return nil
		})
	r.updateTreeEnabledJob = job.NewFunc("renderer.update_tree_enabled", job.UpdateTreeEnabled,
		func(ctx context.Context) error {
			scene.UpdateTreeEnabled(r.managers.Root())
			return nil
		})
	r.updateSkinningPaletteJob = job.NewFunc("renderer.update_skinning_palette", job.UpdateSkinningPalette,
		func(ctx context.Context) error {
			r.counters.skinningPalettes.Store(int64(scene.UpdateSkinningPalettes(r.managers.Root())))
			return nil
		})
	r.updateShaderDataTransformJob = job.NewFunc("renderer.update_shader_data_transform", job.UpdateShaderDataTransform,
		func(ctx context.Context) error {
			scene.UpdateShaderDataTransforms(r.managers.Root())
			return nil
		})
	r.expandBoundingVolumeJob = job.NewFunc("renderer.expand_bounding_volume", job.ExpandBoundingVolume,
		func(ctx context.Context) error {
			scene.ExpandBoundingVolumes(r.managers.Root())
			return nil
		})
	r.updateEntityLayersJob = job.NewFunc("renderer.update_entity_layers", job.UpdateEntityLayers,
		func(ctx context.Context) error {
			scene.UpdateEntityLayers(r.managers.Root(), r.managers)
			return nil
		})
	r.introspectShadersJob = job.NewFunc("renderer.introspect_shaders", job.IntrospectShaders,
		r.introspectShaders)
	r.filterCompatibleTechniqueJob = job.NewFunc("renderer.filter_compatible_techniques", job.FilterCompatibleTechniques,
		func(ctx context.Context) error {
			n := scene.FilterCompatibleTechniques(r.managers.Techniques(), r.api)
			r.counters.compatibleTechniques.Store(int64(n))
			return nil
		})
	r.bufferGathererJob = job.NewFunc("renderer.buffer_gathering", job.BufferGathering, r.gatherBuffers)
	r.textureGathererJob = job.NewFunc("renderer.texture_gathering", job.TextureGathering, r.gatherTextures)

	r.updateSkinningPaletteJob.AddDependency(r.updateWorldTransformJob)
	r.updateShaderDataTransformJob.AddDependency(r.updateWorldTransformJob)
	r.expandBoundingVolumeJob.AddDependency(r.updateWorldTransformJob)
	// Culling and proximity read tree-enabled state after bounds expansion.
	r.expandBoundingVolumeJob.AddDependency(r.updateTreeEnabledJob)
}

func (r *Renderer) introspectShaders(ctx context.Context) error {
	n := 0
	for _, s := range r.managers.Shaders() {
		if !s.Introspected() {
			s.Introspect()
			n++
		}
	}
	r.counters.introspectedShaders.Store(int64(n))
	if n > 0 {
		ctxlog.FromContext(ctx).Debug("Introspected shaders.", "count", n)
	}
	return nil
}

// gatherBuffers collects the buffers whose contents changed. Uploading is
// out of scope; gathering clears the flag.
func (r *Renderer) gatherBuffers(ctx context.Context) error {
	n := 0
	for _, b := range r.managers.Buffers() {
		if b.Dirty {
			b.Dirty = false
			n++
		}
	}
	r.counters.buffersUploaded.Store(int64(n))
	return nil
}

func (r *Renderer) gatherTextures(ctx context.Context) error {
	n := 0
	for _, t := range r.managers.Textures() {
		if t.Dirty {
			t.Dirty = false
			n++
		}
	}
	r.counters.texturesUploaded.Store(int64(n))
	return nil
}
