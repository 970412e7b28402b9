package renderer

// DirtyFlag marks a kind of scene change since the last frame. The
// renderer turns the accumulated flags into the cache-rebuild flags of
// every render-view builder.
type DirtyFlag uint32

const (
	TransformDirty DirtyFlag = 1 << iota
	GeometryDirty
	EntityEnabledDirty
	MaterialDirty
	LayersDirty
	ComputeDirty
	LightsDirty
	FrameGraphDirty
	ShadersDirty
	TechniquesDirty
	BuffersDirty
	TexturesDirty

	AllDirty DirtyFlag = 1<<iota - 1
)

// cacheFlags is the set of per-leaf caches a frame must rebuild.
type cacheFlags struct {
	layer      bool
	material   bool
	light      bool
	renderable bool
	computable bool
}

var allCaches = cacheFlags{true, true, true, true, true}

// cacheFlagsFor maps scene changes to the caches they invalidate.
func cacheFlagsFor(d DirtyFlag) cacheFlags {
	return cacheFlags{
		layer:      d&(LayersDirty|EntityEnabledDirty|FrameGraphDirty) != 0,
		material:   d&(ShadersDirty|MaterialDirty|FrameGraphDirty|TechniquesDirty) != 0,
		light:      d&(LightsDirty|EntityEnabledDirty) != 0,
		renderable: d&(GeometryDirty|MaterialDirty|EntityEnabledDirty) != 0,
		computable: d&(ComputeDirty|MaterialDirty|EntityEnabledDirty) != 0,
	}
}
