package renderview

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureFromLeaf(t *testing.T) {
	camera := scene.NewEntity("camera")
	camera.Lens = scene.NewPerspectiveLens(45, 16.0/9.0, 0.1, 1000)
	otherCamera := scene.NewEntity("other")
	otherCamera.Lens = scene.NewPerspectiveLens(60, 1, 0.1, 100)
	root := scene.NewEntity("root")
	root.AddChild(camera)
	root.AddChild(otherCamera)
	managers := scene.NewManagers(root)

	fgRoot := framegraph.New(framegraph.Viewport, "outer", nil)
	fgRoot.Rect = framegraph.Rect{X: 0.5, Y: 0, Width: 0.5, Height: 1}
	farCam := framegraph.New(framegraph.CameraSelector, "far", fgRoot)
	farCam.Camera = otherCamera.ID()
	clear := framegraph.New(framegraph.ClearBuffers, "clear", farCam)
	clear.Buffers = framegraph.ClearColorDepth
	clear.ClearColor = mgl32.Vec4{1, 0, 0, 1}
	outerLayer := framegraph.New(framegraph.LayerFilter, "outerLayer", clear)
	inner := framegraph.New(framegraph.Viewport, "inner", outerLayer)
	inner.Rect = framegraph.Rect{X: 0, Y: 0.5, Width: 0.5, Height: 0.5}
	techOuter := framegraph.New(framegraph.TechniqueFilter, "techOuter", inner)
	techInner := framegraph.New(framegraph.TechniqueFilter, "techInner", techOuter)
	nearCam := framegraph.New(framegraph.CameraSelector, "near", techInner)
	nearCam.Camera = camera.ID()
	innerLayer := framegraph.New(framegraph.LayerFilter, "innerLayer", nearCam)
	culling := framegraph.New(framegraph.FrustumCulling, "culling", innerLayer)
	sort := framegraph.New(framegraph.SortPolicy, "sort", culling)
	sort.SortTypes = []framegraph.SortType{framegraph.SortBackToFront}
	leaf := framegraph.New(framegraph.ComputeDispatch, "dispatch", sort)
	leaf.Workgroups = [3]int{4, 2, 1}

	rv := New(3, leaf, managers)
	ConfigureFromLeaf(rv)

	assert.Equal(t, 3, rv.Index())
	assert.Same(t, camera, rv.CameraEntity, "camera nearest the leaf wins")
	assert.Same(t, camera.Lens, rv.CameraLens)
	assert.True(t, rv.HasCamera())
	require.Len(t, rv.LayerFilters, 2)
	assert.Same(t, innerLayer, rv.LayerFilters[0])
	assert.Same(t, outerLayer, rv.LayerFilters[1])
	assert.Same(t, techInner, rv.TechniqueFilter)
	assert.Nil(t, rv.RenderPassFilter)
	assert.True(t, rv.FrustumCulling)
	assert.True(t, rv.Compute)
	assert.Equal(t, [3]int{4, 2, 1}, rv.Workgroups)
	assert.Equal(t, []framegraph.SortType{framegraph.SortBackToFront}, rv.SortTypes)

	want := framegraph.Rect{X: 0.5, Y: 0.5, Width: 0.25, Height: 0.5}
	if diff := cmp.Diff(want, rv.Viewport); diff != "" {
		t.Errorf("viewport mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, framegraph.ClearColorDepth, rv.ClearTypes)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, rv.ClearColor)
	require.Len(t, rv.Clears, 1)
	assert.Equal(t, -1, rv.Clears[0].DrawBufferIndex)
}

func TestConfigureFromLeafDefaults(t *testing.T) {
	leaf := framegraph.New(framegraph.Group, "only", nil)
	rv := New(0, leaf, scene.NewManagers(scene.NewEntity("root")))
	ConfigureFromLeaf(rv)

	assert.Equal(t, framegraph.FullRect, rv.Viewport)
	assert.False(t, rv.HasCamera())
	assert.False(t, rv.FrustumCulling)
	assert.Empty(t, rv.LayerFilters)
}

func TestConfigureSkipsDisabledNodes(t *testing.T) {
	root := framegraph.New(framegraph.NoDraw, "nodraw", nil)
	root.Enabled = false
	leaf := framegraph.New(framegraph.FrustumCulling, "culling", root)

	rv := New(0, leaf, nil)
	ConfigureFromLeaf(rv)
	assert.False(t, rv.NoDraw)
	assert.True(t, rv.FrustumCulling)
}

func TestUpdateMatrices(t *testing.T) {
	camera := scene.NewEntity("camera")
	camera.Lens = scene.NewPerspectiveLens(45, 1, 0.1, 100)
	camera.SetWorldTransform(mgl32.Translate3D(0, 0, 5))

	rv := New(0, framegraph.New(framegraph.Group, "leaf", nil), nil)
	rv.UpdateMatrices()
	assert.Equal(t, mgl32.Ident4(), rv.ViewProjection, "no camera leaves identity")

	rv.CameraEntity = camera
	rv.CameraLens = camera.Lens
	rv.UpdateMatrices()

	view := mgl32.Translate3D(0, 0, -5)
	assert.True(t, rv.ViewMatrix.ApproxEqualThreshold(view, 1e-5))
	assert.True(t, rv.ViewProjection.ApproxEqualThreshold(camera.Lens.Projection.Mul4(view), 1e-5))
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, rv.EyePosition)
}

func TestSortCommands(t *testing.T) {
	shaderA := &scene.ShaderProgram{ID: scene.NewID()}
	shaderB := &scene.ShaderProgram{ID: scene.NewID()}
	if string(shaderB.ID[:]) < string(shaderA.ID[:]) {
		shaderA, shaderB = shaderB, shaderA
	}

	c0 := &RenderCommand{Shader: shaderB, Depth: 1, StateCost: 1}
	c1 := &RenderCommand{Shader: shaderA, Depth: 5, StateCost: 3}
	c2 := &RenderCommand{Shader: shaderB, Depth: 3, StateCost: 3}
	c3 := &RenderCommand{Shader: shaderA, Depth: 2, StateCost: 1}

	t.Run("no sort types keeps order", func(t *testing.T) {
		cmds := []*RenderCommand{c0, c1, c2, c3}
		SortCommands(cmds, nil)
		assert.Equal(t, []*RenderCommand{c0, c1, c2, c3}, cmds)
	})

	t.Run("back to front", func(t *testing.T) {
		cmds := []*RenderCommand{c0, c1, c2, c3}
		SortCommands(cmds, []framegraph.SortType{framegraph.SortBackToFront})
		assert.Equal(t, []*RenderCommand{c1, c2, c3, c0}, cmds)
	})

	t.Run("front to back", func(t *testing.T) {
		cmds := []*RenderCommand{c0, c1, c2, c3}
		SortCommands(cmds, []framegraph.SortType{framegraph.SortFrontToBack})
		assert.Equal(t, []*RenderCommand{c0, c3, c2, c1}, cmds)
	})

	t.Run("state cost then material then depth", func(t *testing.T) {
		cmds := []*RenderCommand{c0, c1, c2, c3}
		SortCommands(cmds, []framegraph.SortType{
			framegraph.SortStateChangeCost,
			framegraph.SortMaterial,
			framegraph.SortFrontToBack,
		})
		assert.Equal(t, []*RenderCommand{c1, c2, c3, c0}, cmds)
	})

	t.Run("material groups by shader", func(t *testing.T) {
		cmds := []*RenderCommand{c0, c1, c2, c3}
		SortCommands(cmds, []framegraph.SortType{framegraph.SortMaterial})
		assert.Equal(t, []*RenderCommand{c1, c3, c0, c2}, cmds)
	})
}

func newTechnique(name string, major int, compatible bool, keys ...scene.FilterKey) *scene.Technique {
	t := &scene.Technique{
		ID:         scene.NewID(),
		Name:       name,
		API:        scene.GraphicsAPI{Name: "opengl", Major: major},
		FilterKeys: keys,
	}
	t.SetCompatibleWithRenderer(compatible)
	return t
}

func TestFindTechniqueForEffect(t *testing.T) {
	forward := scene.FilterKey{Name: "style", Value: "forward"}
	gl2 := newTechnique("gl2", 2, true, forward)
	gl3 := newTechnique("gl3", 3, true, forward)
	gl4 := newTechnique("gl4", 4, false, forward)
	deferred := newTechnique("deferred", 4, true, scene.FilterKey{Name: "style", Value: "deferred"})
	effect := &scene.Effect{Techniques: []*scene.Technique{gl2, gl3, gl4, deferred}}

	assert.Nil(t, FindTechniqueForEffect(nil, nil))
	assert.Same(t, deferred, FindTechniqueForEffect(nil, effect), "no filter: highest compatible version")

	filter := framegraph.New(framegraph.TechniqueFilter, "tf", nil)
	filter.Filters = []scene.FilterKey{forward}
	assert.Same(t, gl3, FindTechniqueForEffect(filter, effect))

	filter.Filters = []scene.FilterKey{{Name: "style", Value: "raytraced"}}
	assert.Nil(t, FindTechniqueForEffect(filter, effect))
}

func TestFindRenderPassesForTechnique(t *testing.T) {
	opaque := &scene.RenderPass{Name: "opaque", Enabled: true, FilterKeys: []scene.FilterKey{{Name: "pass", Value: "opaque"}}}
	transparent := &scene.RenderPass{Name: "transparent", Enabled: true, FilterKeys: []scene.FilterKey{{Name: "pass", Value: "transparent"}}}
	disabled := &scene.RenderPass{Name: "disabled", Enabled: false, FilterKeys: []scene.FilterKey{{Name: "pass", Value: "opaque"}}}
	tech := &scene.Technique{Passes: []*scene.RenderPass{opaque, transparent, disabled}}

	assert.Nil(t, FindRenderPassesForTechnique(nil, nil))
	assert.Equal(t, []*scene.RenderPass{opaque, transparent}, FindRenderPassesForTechnique(nil, tech))

	filter := framegraph.New(framegraph.RenderPassFilter, "pf", nil)
	filter.Filters = []scene.FilterKey{{Name: "pass", Value: "opaque"}}
	assert.Equal(t, []*scene.RenderPass{opaque}, FindRenderPassesForTechnique(filter, tech))
}

func TestMergeParameters(t *testing.T) {
	pass := &scene.RenderPass{Parameters: scene.Parameters{"a": "pass", "p": 1.0}}
	tech := &scene.Technique{Parameters: scene.Parameters{"a": "technique", "b": "technique"}}
	effect := &scene.Effect{Parameters: scene.Parameters{"b": "effect", "c": "effect"}}
	mat := &scene.Material{Effect: effect, Parameters: scene.Parameters{"c": "material"}}

	got := MergeParameters(mat, tech, pass)
	want := scene.Parameters{"a": "technique", "b": "effect", "c": "material", "p": 1.0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}
}
