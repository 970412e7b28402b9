package job

// Type identifies what a job does. It is used in logs, in frame statistics
// and by tests that look jobs up by purpose.
type Type int

const (
	// Renderer-owned jobs, shared by every render view of a frame.
	UpdateSkinningPalette Type = iota
	UpdateWorldTransform
	UpdateShaderDataTransform
	ExpandBoundingVolume
	UpdateEntityLayers
	UpdateTreeEnabled
	IntrospectShaders
	FilterCompatibleTechniques
	BufferGathering
	TextureGathering

	// Per render view jobs.
	RenderView
	SyncRenderViewInitialization
	ClearBufferDrawIndex
	ProximityFiltering
	FrustumCulling
	SyncFrustumCulling
	EntityLayerFiltering
	SyncFilterEntityByLayer
	LightGathering
	SyncLightGathering
	RenderableEntityFilter
	SyncRenderableEntities
	ComputableEntityFilter
	SyncComputableEntities
	MaterialParameterGathering
	SyncMaterialGatherer
	SyncRenderCommandBuilding
	RenderCommandBuilding
	SyncRenderViewCommandBuilders
)

var typeNames = map[Type]string{
	UpdateSkinningPalette:         "update_skinning_palette",
	UpdateWorldTransform:          "update_world_transform",
	UpdateShaderDataTransform:     "update_shader_data_transform",
	ExpandBoundingVolume:          "expand_bounding_volume",
	UpdateEntityLayers:            "update_entity_layers",
	UpdateTreeEnabled:             "update_tree_enabled",
	IntrospectShaders:             "introspect_shaders",
	FilterCompatibleTechniques:    "filter_compatible_techniques",
	BufferGathering:               "buffer_gathering",
	TextureGathering:              "texture_gathering",
	RenderView:                    "render_view",
	SyncRenderViewInitialization:  "sync_render_view_initialization",
	ClearBufferDrawIndex:          "clear_buffer_draw_index",
	ProximityFiltering:            "proximity_filtering",
	FrustumCulling:                "frustum_culling",
	SyncFrustumCulling:            "sync_frustum_culling",
	EntityLayerFiltering:          "entity_layer_filtering",
	SyncFilterEntityByLayer:       "sync_filter_entity_by_layer",
	LightGathering:                "light_gathering",
	SyncLightGathering:            "sync_light_gathering",
	RenderableEntityFilter:        "renderable_entity_filter",
	SyncRenderableEntities:        "sync_renderable_entities",
	ComputableEntityFilter:        "computable_entity_filter",
	SyncComputableEntities:        "sync_computable_entities",
	MaterialParameterGathering:    "material_parameter_gathering",
	SyncMaterialGatherer:          "sync_material_gatherer",
	SyncRenderCommandBuilding:     "sync_render_command_building",
	RenderCommandBuilding:         "render_command_building",
	SyncRenderViewCommandBuilders: "sync_render_view_command_builders",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}
