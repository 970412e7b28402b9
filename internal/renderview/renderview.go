// Package renderview holds the per-frame, per-leaf aggregate that one
// rendering pass needs: camera, viewport, clear state, filters and the
// render commands produced by the command builder jobs.
package renderview

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// ClearBufferInfo describes one clear operation. DrawBufferIndex is filled
// in by the set-clear-draw-buffer-index job; -1 means every draw buffer.
type ClearBufferInfo struct {
	Buffers         framegraph.ClearBufferType
	Color           mgl32.Vec4
	ColorBuffer     string
	DrawBufferIndex int
}

// RenderView is created fresh every frame by the render-view job and is not
// mutated once its command builders have been synchronized.
type RenderView struct {
	index    int
	leaf     *framegraph.Node
	managers *scene.Managers

	Viewport    framegraph.Rect
	hasViewport bool
	Gamma       float32

	ClearTypes   framegraph.ClearBufferType
	ClearColor   mgl32.Vec4
	ClearDepth   float32
	ClearStencil int
	Clears       []ClearBufferInfo

	RenderTargetOutputs []string

	LayerFilters     []*framegraph.Node
	ProximityFilters []*framegraph.Node
	TechniqueFilter  *framegraph.Node
	RenderPassFilter *framegraph.Node

	CameraEntity *scene.Entity
	CameraLens   *scene.CameraLens

	Lights           []*scene.Light
	EnvironmentLight *scene.EnvironmentLight

	ViewMatrix       mgl32.Mat4
	ProjectionMatrix mgl32.Mat4
	ViewProjection   mgl32.Mat4
	EyePosition      mgl32.Vec3

	FrustumCulling bool
	Compute        bool
	Workgroups     [3]int
	NoDraw         bool
	SortTypes      []framegraph.SortType

	Commands []*RenderCommand
}

// New returns an empty view for the leaf at the given index.
func New(index int, leaf *framegraph.Node, managers *scene.Managers) *RenderView {
	return &RenderView{
		index:            index,
		leaf:             leaf,
		managers:         managers,
		Gamma:            2.2,
		ClearDepth:       1,
		ViewMatrix:       mgl32.Ident4(),
		ProjectionMatrix: mgl32.Ident4(),
		ViewProjection:   mgl32.Ident4(),
	}
}

func (rv *RenderView) Index() int { return rv.index }

func (rv *RenderView) Leaf() *framegraph.Node { return rv.leaf }

func (rv *RenderView) Managers() *scene.Managers { return rv.managers }

// HasCamera reports whether a camera selector bound an entity with an
// enabled lens.
func (rv *RenderView) HasCamera() bool {
	return rv.CameraEntity != nil && rv.CameraLens != nil && rv.CameraLens.Enabled
}

// UpdateMatrices derives view and projection from the camera entity. It
// must run after world transforms have been updated for the frame.
func (rv *RenderView) UpdateMatrices() {
	if !rv.HasCamera() {
		return
	}
	world := rv.CameraEntity.WorldTransform()
	rv.ViewMatrix = world.Inv()
	rv.ProjectionMatrix = rv.CameraLens.Projection
	rv.ViewProjection = rv.ProjectionMatrix.Mul4(rv.ViewMatrix)
	rv.EyePosition = world.Col(3).Vec3()
}
