package builder

import (
	"github.com/specialistvlad/framegridgo/internal/job"
)

// BuildJobHierarchy wires the dependencies of every prepared job and
// returns them all, each exactly once. The order is fixed for a given
// configuration:
//
//	render view, initialization sync, clear draw-buffer index, proximity,
//	frustum sync, frustum culling, then each present (job, cache sync) pair
//	for layer, light, renderable and computable, then the material
//	gatherers and their sync, then command building and its shards.
//
// Calling it before PrepareJobs panics.
func (b *RenderViewBuilder) BuildJobHierarchy() []job.Job {
	if !b.prepared {
		panic("builder: BuildJobHierarchy called before PrepareJobs")
	}
	r := b.renderer

	b.renderViewJob.ClearDependencies()
	b.renderViewJob.AddDependency(r.UpdateSkinningPaletteJob())

	b.syncRenderViewInitializationJob.ClearDependencies()
	b.syncRenderViewInitializationJob.AddDependency(b.renderViewJob)

	b.setClearDrawBufferIndexJob.ClearDependencies()
	b.setClearDrawBufferIndexJob.AddDependency(b.syncRenderViewInitializationJob)

	b.filterProximityJob.ClearDependencies()
	b.filterProximityJob.AddDependency(b.syncRenderViewInitializationJob)
	b.filterProximityJob.AddDependency(r.ExpandBoundingVolumeJob())

	b.syncFrustumCullingJob.ClearDependencies()
	b.syncFrustumCullingJob.AddDependency(b.syncRenderViewInitializationJob)
	b.syncFrustumCullingJob.AddDependency(r.UpdateWorldTransformJob())
	b.syncFrustumCullingJob.AddDependency(r.UpdateShaderDataTransformJob())

	b.frustumCullingJob.ClearDependencies()
	b.frustumCullingJob.AddDependency(b.syncFrustumCullingJob)
	b.frustumCullingJob.AddDependency(r.ExpandBoundingVolumeJob())

	rcb := b.syncRenderCommandBuildingJob
	rcb.ClearDependencies()
	rcb.AddDependency(b.syncRenderViewInitializationJob)
	rcb.AddDependency(b.filterProximityJob)
	rcb.AddDependency(b.frustumCullingJob)
	rcb.AddDependency(r.IntrospectShadersJob())
	rcb.AddDependency(r.BufferGathererJob())
	rcb.AddDependency(r.TextureGathererJob())

	out := []job.Job{
		b.renderViewJob,
		b.syncRenderViewInitializationJob,
		b.setClearDrawBufferIndexJob,
		b.filterProximityJob,
		b.syncFrustumCullingJob,
		b.frustumCullingJob,
	}

	if b.filterEntityByLayerJob != nil {
		b.filterEntityByLayerJob.AddDependency(r.UpdateEntityLayersJob())
		b.filterEntityByLayerJob.AddDependency(b.syncRenderViewInitializationJob)
		b.filterEntityByLayerJob.AddDependency(r.UpdateTreeEnabledJob())
		b.syncFilterEntityByLayerJob.AddDependency(b.filterEntityByLayerJob)
		rcb.AddDependency(b.syncFilterEntityByLayerJob)
		out = append(out, b.filterEntityByLayerJob, b.syncFilterEntityByLayerJob)
	}

	if b.lightGathererJob != nil {
		b.lightGathererJob.AddDependency(b.syncRenderViewInitializationJob)
		b.lightGathererJob.AddDependency(r.UpdateTreeEnabledJob())
		b.syncLightGathererJob.AddDependency(b.lightGathererJob)
		rcb.AddDependency(b.syncLightGathererJob)
		out = append(out, b.lightGathererJob, b.syncLightGathererJob)
	}

	if b.renderableEntityFilterJob != nil {
		b.renderableEntityFilterJob.AddDependency(r.UpdateTreeEnabledJob())
		b.syncRenderableEntitiesJob.AddDependency(b.renderableEntityFilterJob)
		rcb.AddDependency(b.syncRenderableEntitiesJob)
		out = append(out, b.renderableEntityFilterJob, b.syncRenderableEntitiesJob)
	}

	if b.computableEntityFilterJob != nil {
		b.computableEntityFilterJob.AddDependency(r.UpdateTreeEnabledJob())
		b.syncComputableEntitiesJob.AddDependency(b.computableEntityFilterJob)
		rcb.AddDependency(b.syncComputableEntitiesJob)
		out = append(out, b.computableEntityFilterJob, b.syncComputableEntitiesJob)
	}

	if b.syncMaterialGathererJob != nil {
		for _, g := range b.materialGathererJobs {
			g.AddDependency(b.syncRenderViewInitializationJob)
			g.AddDependency(r.IntrospectShadersJob())
			g.AddDependency(r.FilterCompatibleTechniqueJob())
			b.syncMaterialGathererJob.AddDependency(g)
			out = append(out, g)
		}
		rcb.AddDependency(b.syncMaterialGathererJob)
		out = append(out, b.syncMaterialGathererJob)
	}

	out = append(out, rcb)
	b.syncRenderViewCommandBuildersJob.ClearDependencies()
	for _, cb := range b.renderViewCommandBuilderJobs {
		cb.AddDependency(rcb)
		b.syncRenderViewCommandBuildersJob.AddDependency(cb)
		out = append(out, cb)
	}
	out = append(out, b.syncRenderViewCommandBuildersJob)
	return out
}
