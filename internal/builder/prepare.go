package builder

import (
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/jobs"
)

// PrepareJobs instantiates the jobs needed this frame. Every call replaces
// the jobs created by a previous call; jobs gated by a flag that is now
// false are dropped.
func (b *RenderViewBuilder) PrepareJobs() {
	managers := b.renderer.NodeManagers()
	n := b.optimalJobCount

	b.syncRenderViewInitializationJob = job.NewSync(
		b.jobID(job.SyncRenderViewInitialization), job.SyncRenderViewInitialization, b.syncRenderViewInitialization)
	b.syncRenderCommandBuildingJob = job.NewSync(
		b.jobID(job.SyncRenderCommandBuilding), job.SyncRenderCommandBuilding, b.syncRenderCommandBuilding)
	b.syncRenderViewCommandBuildersJob = job.NewSync(
		b.jobID(job.SyncRenderViewCommandBuilders), job.SyncRenderViewCommandBuilders, b.syncRenderViewCommandBuilders)

	b.renderViewCommandBuilderJobs = make([]*jobs.RenderViewCommandBuilderJob, n)
	for i := range b.renderViewCommandBuilderJobs {
		b.renderViewCommandBuilderJobs[i] = jobs.NewRenderViewCommandBuilderJob(b.shardID(job.RenderCommandBuilding, i))
	}

	b.filterEntityByLayerJob, b.syncFilterEntityByLayerJob = nil, nil
	if b.layerCacheNeedsToBeRebuilt {
		b.filterEntityByLayerJob = jobs.NewFilterLayerEntityJob(b.jobID(job.EntityLayerFiltering), managers)
		b.syncFilterEntityByLayerJob = job.NewSync(
			b.jobID(job.SyncFilterEntityByLayer), job.SyncFilterEntityByLayer, b.syncFilterEntityByLayer)
	}

	b.materialGathererJobs, b.syncMaterialGathererJob = nil, nil
	if b.materialGathererCacheNeedsToBeRebuilt {
		b.materialGathererJobs = make([]*jobs.MaterialParameterGathererJob, n)
		for i := range b.materialGathererJobs {
			b.materialGathererJobs[i] = jobs.NewMaterialParameterGathererJob(b.shardID(job.MaterialParameterGathering, i))
		}
		b.syncMaterialGathererJob = job.NewSync(
			b.jobID(job.SyncMaterialGatherer), job.SyncMaterialGatherer, b.syncMaterialGatherer)
	}

	b.lightGathererJob, b.syncLightGathererJob = nil, nil
	if b.lightGathererCacheNeedsToBeRebuilt {
		b.lightGathererJob = jobs.NewLightGathererJob(b.jobID(job.LightGathering), managers)
		b.syncLightGathererJob = job.NewSync(
			b.jobID(job.SyncLightGathering), job.SyncLightGathering, b.syncLightGatherer)
	}

	b.renderableEntityFilterJob, b.syncRenderableEntitiesJob = nil, nil
	if b.renderableCacheNeedsToBeRebuilt {
		b.renderableEntityFilterJob = jobs.NewRenderableEntityFilterJob(b.jobID(job.RenderableEntityFilter), managers)
		b.syncRenderableEntitiesJob = job.NewSync(
			b.jobID(job.SyncRenderableEntities), job.SyncRenderableEntities, b.syncRenderableEntities)
	}

	b.computableEntityFilterJob, b.syncComputableEntitiesJob = nil, nil
	if b.computableCacheNeedsToBeRebuilt {
		b.computableEntityFilterJob = jobs.NewComputableEntityFilterJob(b.jobID(job.ComputableEntityFilter), managers)
		b.syncComputableEntitiesJob = job.NewSync(
			b.jobID(job.SyncComputableEntities), job.SyncComputableEntities, b.syncComputableEntities)
	}

	b.prepared = true
}
