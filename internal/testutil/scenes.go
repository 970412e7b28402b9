package testutil

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// API is the graphics API the fixtures' renderer reports.
var API = scene.GraphicsAPI{Name: "opengl", Major: 4, Minor: 5}

var (
	ForwardKey = scene.FilterKey{Name: "renderingStyle", Value: "forward"}
	OpaqueKey  = scene.FilterKey{Name: "pass", Value: "opaque"}
)

// SimpleScene is a small scene with one camera, one renderable cube, one
// compute entity, a point light, a spot light and an environment light.
// Its frame graph has two leaves: a culled forward view of the cube's layer
// and a compute view.
type SimpleScene struct {
	Root     *scene.Entity
	Managers *scene.Managers

	Camera     *scene.Entity
	Cube       *scene.Entity
	Compute    *scene.Entity
	PointLight *scene.Entity
	SpotLight  *scene.Entity
	EnvLight   *scene.Entity

	Layer    *scene.Layer
	Material *scene.Material
	Shader   *scene.ShaderProgram

	FrameGraph      *framegraph.Node
	LayerFilter     *framegraph.Node
	TechniqueFilter *framegraph.Node
	PassFilter      *framegraph.Node
	// Leaf is the forward view; ComputeLeaf the compute dispatch.
	Leaf        *framegraph.Node
	ComputeLeaf *framegraph.Node
}

// NewMaterial builds a material whose effect has a forward technique with
// an opaque and a transparent pass, and a deferred technique.
func NewMaterial(name string, shader *scene.ShaderProgram) *scene.Material {
	opaque := &scene.RenderPass{
		ID:         scene.NewID(),
		Name:       "opaque",
		Enabled:    true,
		FilterKeys: []scene.FilterKey{OpaqueKey},
		Shader:     shader,
		StateCount: 1,
	}
	transparent := &scene.RenderPass{
		ID:         scene.NewID(),
		Name:       "transparent",
		Enabled:    true,
		FilterKeys: []scene.FilterKey{{Name: "pass", Value: "transparent"}},
		Shader:     shader,
		StateCount: 3,
	}
	forward := &scene.Technique{
		ID:         scene.NewID(),
		Name:       "forward",
		API:        scene.GraphicsAPI{Name: "opengl", Major: 3, Minor: 3},
		FilterKeys: []scene.FilterKey{ForwardKey},
		Passes:     []*scene.RenderPass{opaque, transparent},
	}
	deferred := &scene.Technique{
		ID:         scene.NewID(),
		Name:       "deferred",
		API:        scene.GraphicsAPI{Name: "opengl", Major: 4, Minor: 5},
		FilterKeys: []scene.FilterKey{{Name: "renderingStyle", Value: "deferred"}},
		Passes: []*scene.RenderPass{{
			ID:      scene.NewID(),
			Name:    "gbuffer",
			Enabled: true,
			Shader:  shader,
		}},
	}
	return &scene.Material{
		ID:      scene.NewID(),
		Name:    name,
		Enabled: true,
		Effect: &scene.Effect{
			ID:         scene.NewID(),
			Name:       name + "Effect",
			Techniques: []*scene.Technique{forward, deferred},
			Parameters: scene.Parameters{"ambient": 0.1},
		},
		Parameters: scene.Parameters{"diffuse": "red"},
	}
}

func NewSimpleScene() *SimpleScene {
	s := &SimpleScene{}
	s.Shader = &scene.ShaderProgram{
		ID:       scene.NewID(),
		Name:     "phong",
		Declared: []string{"diffuse", "ambient", "modelMatrix"},
	}
	s.Material = NewMaterial("phong", s.Shader)
	s.Layer = &scene.Layer{ID: scene.NewID(), Name: "visible"}

	s.Root = scene.NewEntity("root")

	s.Camera = scene.NewEntity("camera")
	s.Camera.Lens = scene.NewPerspectiveLens(45, 16.0/9.0, 0.1, 1000)
	s.Camera.LocalTransform = mgl32.Translate3D(0, 0, 10)

	s.Cube = scene.NewEntity("cube")
	s.Cube.Geometry = &scene.GeometryRenderer{ID: scene.NewID(), VertexCount: 36, Instances: 1}
	s.Cube.Material = s.Material
	s.Cube.LocalBounds = scene.Sphere{Radius: 1}
	s.Cube.Layers = []scene.NodeID{s.Layer.ID}

	s.Compute = scene.NewEntity("particles")
	s.Compute.Compute = &scene.ComputeCommand{ID: scene.NewID(), Workgroups: [3]int{8, 8, 1}}
	s.Compute.Material = s.Material

	s.PointLight = scene.NewEntity("pointLight")
	s.PointLight.Light = &scene.Light{ID: scene.NewID(), Type: scene.PointLight, Color: mgl32.Vec3{1, 1, 1}, Intensity: 1}
	s.PointLight.LocalTransform = mgl32.Translate3D(2, 2, 2)

	s.SpotLight = scene.NewEntity("spotLight")
	s.SpotLight.Light = &scene.Light{
		ID:        scene.NewID(),
		Type:      scene.SpotLight,
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 1,
		Direction: mgl32.Vec3{0, -1, 0},
		CutOff:    30,
	}

	s.EnvLight = scene.NewEntity("environment")
	s.EnvLight.EnvironmentLight = &scene.EnvironmentLight{ID: scene.NewID()}

	for _, e := range []*scene.Entity{s.Camera, s.Cube, s.Compute, s.PointLight, s.SpotLight, s.EnvLight} {
		s.Root.AddChild(e)
	}
	s.Managers = scene.NewManagers(s.Root)
	s.Managers.RegisterLayer(s.Layer)

	s.FrameGraph = framegraph.New(framegraph.Viewport, "viewport", nil)

	selector := framegraph.New(framegraph.CameraSelector, "cameraSelector", s.FrameGraph)
	selector.Camera = s.Camera.ID()
	s.LayerFilter = framegraph.New(framegraph.LayerFilter, "layerFilter", selector)
	s.LayerFilter.Layers = []scene.NodeID{s.Layer.ID}
	s.TechniqueFilter = framegraph.New(framegraph.TechniqueFilter, "techniqueFilter", s.LayerFilter)
	s.TechniqueFilter.Filters = []scene.FilterKey{ForwardKey}
	s.PassFilter = framegraph.New(framegraph.RenderPassFilter, "passFilter", s.TechniqueFilter)
	s.PassFilter.Filters = []scene.FilterKey{OpaqueKey}
	clear := framegraph.New(framegraph.ClearBuffers, "clear", s.PassFilter)
	clear.Buffers = framegraph.ClearColorDepth
	s.Leaf = framegraph.New(framegraph.FrustumCulling, "frustumCulling", clear)

	s.ComputeLeaf = framegraph.New(framegraph.ComputeDispatch, "dispatch", s.FrameGraph)
	s.ComputeLeaf.Workgroups = [3]int{1, 1, 1}

	return s
}

// Settle recomputes the derived entity state the renderer's fixed jobs
// would produce, for tests that run view jobs in isolation.
func (s *SimpleScene) Settle() {
	Settle(s.Managers)
}

// Settle brings the derived state of every entity of m up to date.
func Settle(m *scene.Managers) {
	root := m.Root()
	scene.UpdateTreeEnabled(root)
	scene.UpdateWorldTransforms(root)
	scene.ExpandBoundingVolumes(root)
	scene.UpdateEntityLayers(root, m)
	scene.UpdateShaderDataTransforms(root)
	scene.FilterCompatibleTechniques(m.Techniques(), API)
	for _, sh := range m.Shaders() {
		sh.Introspect()
	}
}

// LayeredScene is a flat scene of renderable entities where every second
// entity carries Layer.
type LayeredScene struct {
	Root     *scene.Entity
	Managers *scene.Managers
	Layer    *scene.Layer
	Entities []*scene.Entity
	Layered  []*scene.Entity
}

func NewLayeredScene(count int) *LayeredScene {
	s := &LayeredScene{
		Root:  scene.NewEntity("root"),
		Layer: &scene.Layer{ID: scene.NewID(), Name: "odd"},
	}
	shader := &scene.ShaderProgram{ID: scene.NewID(), Name: "flat"}
	material := NewMaterial("flat", shader)
	for i := 0; i < count; i++ {
		e := scene.NewEntity("entity")
		e.Geometry = &scene.GeometryRenderer{ID: scene.NewID(), VertexCount: 3, Instances: 1}
		e.Material = material
		e.LocalBounds = scene.Sphere{Radius: 0.5}
		if i%2 == 1 {
			e.Layers = []scene.NodeID{s.Layer.ID}
			s.Layered = append(s.Layered, e)
		}
		s.Root.AddChild(e)
		s.Entities = append(s.Entities, e)
	}
	s.Managers = scene.NewManagers(s.Root)
	s.Managers.RegisterLayer(s.Layer)
	return s
}
