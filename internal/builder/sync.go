package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/jobs"
	"github.com/specialistvlad/framegridgo/internal/rendercache"
	"github.com/specialistvlad/framegridgo/internal/renderview"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

func (b *RenderViewBuilder) renderView() (*renderview.RenderView, error) {
	rv := b.renderViewJob.RenderView()
	if rv == nil {
		return nil, fmt.Errorf("render view %d has not been initialized", b.index)
	}
	return rv, nil
}

func (b *RenderViewBuilder) cache() *rendercache.Leaf {
	return b.renderer.Cache().Leaf(b.leaf.ID())
}

// syncRenderViewInitialization hands the frame-graph configuration found
// by the render-view job to the filter and gatherer jobs.
func (b *RenderViewBuilder) syncRenderViewInitialization(ctx context.Context) error {
	rv, err := b.renderView()
	if err != nil {
		return err
	}

	b.filterProximityJob.SetProximityFilters(rv.ProximityFilters)
	if b.filterEntityByLayerJob != nil {
		b.filterEntityByLayerJob.SetLayerFilters(rv.LayerFilters)
	}

	if len(b.materialGathererJobs) > 0 {
		managers := b.renderer.NodeManagers()
		materials := managers.Materials()
		spans := jobs.Partition(len(materials), len(b.materialGathererJobs))
		for i, g := range b.materialGathererJobs {
			g.SetNodeManagers(managers)
			g.SetMaterials(jobs.Shard(materials, spans[i]))
			g.SetTechniqueFilter(rv.TechniqueFilter)
			g.SetRenderPassFilter(rv.RenderPassFilter)
		}
	}

	ctxlog.FromContext(ctx).Debug("Render view initialization synced.",
		"view", b.index,
		"layerFilters", len(rv.LayerFilters),
		"proximityFilters", len(rv.ProximityFilters),
		"materialShards", len(b.materialGathererJobs),
	)
	return nil
}

// syncFrustumCulling derives the camera matrices now that world transforms
// are known and arms the culling job when the view culls and has a camera.
func (b *RenderViewBuilder) syncFrustumCulling(ctx context.Context) error {
	rv, err := b.renderView()
	if err != nil {
		return err
	}
	rv.UpdateMatrices()
	active := rv.FrustumCulling && rv.CameraLens != nil
	b.frustumCullingJob.SetViewProjection(rv.ViewProjection)
	b.frustumCullingJob.SetActive(active)
	ctxlog.FromContext(ctx).Debug("Frustum culling synced.", "view", b.index, "active", active)
	return nil
}

func (b *RenderViewBuilder) syncFilterEntityByLayer(context.Context) error {
	b.cache().SetLayerFilteredEntities(b.filterEntityByLayerJob.FilteredEntities())
	return nil
}

func (b *RenderViewBuilder) syncMaterialGatherer(context.Context) error {
	params := make([]jobs.MaterialParameters, len(b.materialGathererJobs))
	for i, g := range b.materialGathererJobs {
		params[i] = g.Result()
	}
	b.cache().SetMaterialParameters(params)
	return nil
}

func (b *RenderViewBuilder) syncLightGatherer(context.Context) error {
	b.cache().SetLights(b.lightGathererJob.Lights(), b.lightGathererJob.TakeEnvironmentLight())
	return nil
}

func (b *RenderViewBuilder) syncRenderableEntities(context.Context) error {
	b.cache().SetRenderables(b.renderableEntityFilterJob.FilteredEntities())
	return nil
}

func (b *RenderViewBuilder) syncComputableEntities(context.Context) error {
	b.cache().SetComputables(b.computableEntityFilterJob.FilteredEntities())
	return nil
}

// syncRenderCommandBuilding narrows the cached candidates down to the
// entities this view draws and splits them across the command builders.
func (b *RenderViewBuilder) syncRenderCommandBuilding(ctx context.Context) error {
	rv, err := b.renderView()
	if err != nil {
		return err
	}
	cache := b.cache()

	var entities []*scene.Entity
	if rv.Compute {
		entities = cache.Computables()
	} else {
		entities = cache.Renderables()
	}
	entities = EntitiesInSubset(entities, cache.LayerFilteredEntities())
	if b.filterProximityJob.HasProximityFilter() {
		entities = EntitiesInSubset(entities, b.filterProximityJob.FilteredEntities())
	}
	if b.frustumCullingJob.IsActive() && !rv.Compute {
		entities = EntitiesInSubset(entities, b.frustumCullingJob.VisibleEntities())
	}

	rv.Lights = layerFilteredLights(cache.Lights(), cache.LayerFilteredEntities())
	rv.EnvironmentLight = cache.EnvironmentLight()

	params := cache.MaterialParameters()
	spans := jobs.Partition(len(entities), len(b.renderViewCommandBuilderJobs))
	for i, cb := range b.renderViewCommandBuilderJobs {
		cb.SetRenderView(rv)
		cb.SetEntities(jobs.Shard(entities, spans[i]))
		cb.SetMaterialParameters(params)
	}

	ctxlog.FromContext(ctx).Debug("Render command building synced.",
		"view", b.index,
		"entities", len(entities),
		"shards", len(b.renderViewCommandBuilderJobs),
	)
	return nil
}

// layerFilteredLights keeps the lights whose entity passed the view's layer
// filter, in gathering order.
func layerFilteredLights(lights []jobs.LightSource, layerFiltered []*scene.Entity) []*scene.Light {
	if len(lights) == 0 {
		return nil
	}
	visible := make(map[*scene.Entity]struct{}, len(layerFiltered))
	for _, e := range layerFiltered {
		visible[e] = struct{}{}
	}
	out := make([]*scene.Light, 0, len(lights))
	for _, l := range lights {
		if _, ok := visible[l.Entity]; ok {
			out = append(out, l.Light)
		}
	}
	return out
}

// syncRenderViewCommandBuilders collects the commands of every shard, in
// shard order, and sorts them by the view's sort policy.
func (b *RenderViewBuilder) syncRenderViewCommandBuilders(ctx context.Context) error {
	rv, err := b.renderView()
	if err != nil {
		return err
	}
	var commands []*renderview.RenderCommand
	for _, cb := range b.renderViewCommandBuilderJobs {
		commands = append(commands, cb.Commands()...)
	}
	renderview.SortCommands(commands, rv.SortTypes)
	rv.Commands = commands
	ctxlog.FromContext(ctx).Debug("Render view complete.", "view", b.index, "commands", len(commands))
	return nil
}
