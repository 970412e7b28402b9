package builder

import (
	"fmt"

	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/jobs"
)

// RenderViewBuilder assembles the jobs computing the render view of one
// frame-graph leaf. A builder serves a single frame and is then discarded.
type RenderViewBuilder struct {
	leaf            *framegraph.Node
	index           int
	renderer        Renderer
	optimalJobCount int
	prepared        bool

	layerCacheNeedsToBeRebuilt            bool
	materialGathererCacheNeedsToBeRebuilt bool
	lightGathererCacheNeedsToBeRebuilt    bool
	renderableCacheNeedsToBeRebuilt       bool
	computableCacheNeedsToBeRebuilt       bool

	// Created by New.
	renderViewJob              *jobs.RenderViewInitializerJob
	filterProximityJob         *jobs.FilterProximityDistanceJob
	frustumCullingJob          *jobs.FrustumCullingJob
	syncFrustumCullingJob      *job.Sync
	setClearDrawBufferIndexJob *jobs.SetClearDrawBufferIndexJob

	// Created by PrepareJobs.
	syncRenderViewInitializationJob  *job.Sync
	syncRenderCommandBuildingJob     *job.Sync
	renderViewCommandBuilderJobs     []*jobs.RenderViewCommandBuilderJob
	syncRenderViewCommandBuildersJob *job.Sync

	// Created by PrepareJobs when the matching cache flag is set.
	filterEntityByLayerJob     *jobs.FilterLayerEntityJob
	syncFilterEntityByLayerJob *job.Sync
	materialGathererJobs       []*jobs.MaterialParameterGathererJob
	syncMaterialGathererJob    *job.Sync
	lightGathererJob           *jobs.LightGathererJob
	syncLightGathererJob       *job.Sync
	renderableEntityFilterJob  *jobs.FilterEntityByComponentJob
	syncRenderableEntitiesJob  *job.Sync
	computableEntityFilterJob  *jobs.FilterEntityByComponentJob
	syncComputableEntitiesJob  *job.Sync
}

// New creates the builder of the view at index for leaf. A nil leaf or
// renderer and a negative index are programming errors and panic.
func New(leaf *framegraph.Node, index int, r Renderer) *RenderViewBuilder {
	if leaf == nil {
		panic("builder: nil frame-graph leaf")
	}
	if r == nil {
		panic("builder: nil renderer")
	}
	if index < 0 {
		panic(fmt.Sprintf("builder: negative render view index %d", index))
	}

	b := &RenderViewBuilder{
		leaf:            leaf,
		index:           index,
		renderer:        r,
		optimalJobCount: max(r.OptimalJobCount(), 1),
	}
	managers := r.NodeManagers()
	b.renderViewJob = jobs.NewRenderViewInitializerJob(b.jobID(job.RenderView), index, leaf, managers)
	b.filterProximityJob = jobs.NewFilterProximityDistanceJob(b.jobID(job.ProximityFiltering), managers)
	b.frustumCullingJob = jobs.NewFrustumCullingJob(b.jobID(job.FrustumCulling), managers)
	b.syncFrustumCullingJob = job.NewSync(b.jobID(job.SyncFrustumCulling), job.SyncFrustumCulling, b.syncFrustumCulling)
	b.setClearDrawBufferIndexJob = jobs.NewSetClearDrawBufferIndexJob(b.jobID(job.ClearBufferDrawIndex), b.renderViewJob)
	return b
}

// jobID names a job after its view and purpose, e.g. "view[2].frustum_culling".
func (b *RenderViewBuilder) jobID(t job.Type) string {
	return fmt.Sprintf("view[%d].%s", b.index, t)
}

func (b *RenderViewBuilder) shardID(t job.Type, shard int) string {
	return fmt.Sprintf("view[%d].%s[%d]", b.index, t, shard)
}

func (b *RenderViewBuilder) Leaf() *framegraph.Node { return b.leaf }

func (b *RenderViewBuilder) Index() int { return b.index }

func (b *RenderViewBuilder) OptimalJobCount() int { return b.optimalJobCount }

func (b *RenderViewBuilder) SetLayerCacheNeedsToBeRebuilt(v bool) { b.layerCacheNeedsToBeRebuilt = v }

func (b *RenderViewBuilder) LayerCacheNeedsToBeRebuilt() bool { return b.layerCacheNeedsToBeRebuilt }

func (b *RenderViewBuilder) SetMaterialGathererCacheNeedsToBeRebuilt(v bool) {
	b.materialGathererCacheNeedsToBeRebuilt = v
}

func (b *RenderViewBuilder) MaterialGathererCacheNeedsToBeRebuilt() bool {
	return b.materialGathererCacheNeedsToBeRebuilt
}

func (b *RenderViewBuilder) SetLightGathererCacheNeedsToBeRebuilt(v bool) {
	b.lightGathererCacheNeedsToBeRebuilt = v
}

func (b *RenderViewBuilder) LightGathererCacheNeedsToBeRebuilt() bool {
	return b.lightGathererCacheNeedsToBeRebuilt
}

func (b *RenderViewBuilder) SetRenderableCacheNeedsToBeRebuilt(v bool) {
	b.renderableCacheNeedsToBeRebuilt = v
}

func (b *RenderViewBuilder) RenderableCacheNeedsToBeRebuilt() bool {
	return b.renderableCacheNeedsToBeRebuilt
}

func (b *RenderViewBuilder) SetComputableCacheNeedsToBeRebuilt(v bool) {
	b.computableCacheNeedsToBeRebuilt = v
}

func (b *RenderViewBuilder) ComputableCacheNeedsToBeRebuilt() bool {
	return b.computableCacheNeedsToBeRebuilt
}

func (b *RenderViewBuilder) RenderViewJob() *jobs.RenderViewInitializerJob { return b.renderViewJob }

func (b *RenderViewBuilder) FilterProximityJob() *jobs.FilterProximityDistanceJob {
	return b.filterProximityJob
}

func (b *RenderViewBuilder) FrustumCullingJob() *jobs.FrustumCullingJob { return b.frustumCullingJob }

func (b *RenderViewBuilder) SyncFrustumCullingJob() *job.Sync { return b.syncFrustumCullingJob }

func (b *RenderViewBuilder) SetClearDrawBufferIndexJob() *jobs.SetClearDrawBufferIndexJob {
	return b.setClearDrawBufferIndexJob
}

func (b *RenderViewBuilder) SyncRenderViewInitializationJob() *job.Sync {
	return b.syncRenderViewInitializationJob
}

func (b *RenderViewBuilder) SyncRenderCommandBuildingJob() *job.Sync {
	return b.syncRenderCommandBuildingJob
}

func (b *RenderViewBuilder) RenderViewCommandBuilderJobs() []*jobs.RenderViewCommandBuilderJob {
	return b.renderViewCommandBuilderJobs
}

func (b *RenderViewBuilder) SyncRenderViewCommandBuildersJob() *job.Sync {
	return b.syncRenderViewCommandBuildersJob
}

func (b *RenderViewBuilder) FilterEntityByLayerJob() *jobs.FilterLayerEntityJob {
	return b.filterEntityByLayerJob
}

func (b *RenderViewBuilder) SyncFilterEntityByLayerJob() *job.Sync {
	return b.syncFilterEntityByLayerJob
}

func (b *RenderViewBuilder) MaterialGathererJobs() []*jobs.MaterialParameterGathererJob {
	return b.materialGathererJobs
}

func (b *RenderViewBuilder) SyncMaterialGathererJob() *job.Sync { return b.syncMaterialGathererJob }

func (b *RenderViewBuilder) LightGathererJob() *jobs.LightGathererJob { return b.lightGathererJob }

func (b *RenderViewBuilder) SyncLightGathererJob() *job.Sync { return b.syncLightGathererJob }

func (b *RenderViewBuilder) RenderableEntityFilterJob() *jobs.FilterEntityByComponentJob {
	return b.renderableEntityFilterJob
}

func (b *RenderViewBuilder) SyncRenderableEntitiesJob() *job.Sync {
	return b.syncRenderableEntitiesJob
}

func (b *RenderViewBuilder) ComputableEntityFilterJob() *jobs.FilterEntityByComponentJob {
	return b.computableEntityFilterJob
}

func (b *RenderViewBuilder) SyncComputableEntitiesJob() *job.Sync {
	return b.syncComputableEntitiesJob
}
