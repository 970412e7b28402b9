package renderview

import (
	"github.com/specialistvlad/framegridgo/internal/framegraph"
)

// ConfigureFromLeaf walks from the view's leaf up to the root and copies
// into rv every piece of configuration that can be resolved from the frame
// graph alone. Configuration nearer the leaf takes precedence wherever a
// setting can only be applied once.
func ConfigureFromLeaf(rv *RenderView) {
	for _, node := range rv.leaf.PathToRoot() {
		if !node.Enabled {
			continue
		}
		switch node.Type {
		case framegraph.Group:
		case framegraph.CameraSelector:
			if rv.CameraEntity == nil && rv.managers != nil {
				if cam := rv.managers.Entity(node.Camera); cam != nil {
					rv.CameraEntity = cam
					if cam.Lens != nil && cam.Lens.Enabled {
						rv.CameraLens = cam.Lens
					}
				}
			}
		case framegraph.LayerFilter:
			rv.LayerFilters = append(rv.LayerFilters, node)
		case framegraph.ProximityFilter:
			rv.ProximityFilters = append(rv.ProximityFilters, node)
		case framegraph.TechniqueFilter:
			if rv.TechniqueFilter == nil {
				rv.TechniqueFilter = node
			}
		case framegraph.RenderPassFilter:
			if rv.RenderPassFilter == nil {
				rv.RenderPassFilter = node
			}
		case framegraph.Viewport:
			rv.Viewport = composeViewport(rv.Viewport, rv.hasViewport, node.Rect)
			rv.hasViewport = true
			rv.Gamma = node.Gamma
		case framegraph.ClearBuffers:
			addClearBuffers(rv, node)
		case framegraph.SortPolicy:
			rv.SortTypes = append(rv.SortTypes, node.SortTypes...)
		case framegraph.FrustumCulling:
			rv.FrustumCulling = true
		case framegraph.ComputeDispatch:
			rv.Compute = true
			rv.Workgroups = node.Workgroups
		case framegraph.NoDraw:
			rv.NoDraw = true
		case framegraph.RenderTargetSelector:
			if rv.RenderTargetOutputs == nil {
				rv.RenderTargetOutputs = append([]string{}, node.Outputs...)
			}
		}
	}
	if !rv.hasViewport {
		rv.Viewport = framegraph.FullRect
	}
}

// composeViewport makes a viewport found nearer the leaf a sub-region of
// the ancestor viewport being visited.
func composeViewport(child framegraph.Rect, hasChild bool, parent framegraph.Rect) framegraph.Rect {
	if !hasChild {
		return parent
	}
	return framegraph.Rect{
		X:      parent.X + parent.Width*child.X,
		Y:      parent.Y + parent.Height*child.Y,
		Width:  parent.Width * child.Width,
		Height: parent.Height * child.Height,
	}
}

func addClearBuffers(rv *RenderView, node *framegraph.Node) {
	if node.Buffers == framegraph.ClearNone {
		return
	}
	// Values nearest the leaf win; ancestors only add buffer types.
	if node.Buffers&framegraph.ClearColor != 0 && rv.ClearTypes&framegraph.ClearColor == 0 {
		rv.ClearColor = node.ClearColor
	}
	if node.Buffers&framegraph.ClearDepth != 0 && rv.ClearTypes&framegraph.ClearDepth == 0 {
		rv.ClearDepth = node.DepthValue
	}
	if node.Buffers&framegraph.ClearStencil != 0 && rv.ClearTypes&framegraph.ClearStencil == 0 {
		rv.ClearStencil = node.StencilValue
	}
	rv.ClearTypes |= node.Buffers
	rv.Clears = append(rv.Clears, ClearBufferInfo{
		Buffers:         node.Buffers,
		Color:           node.ClearColor,
		ColorBuffer:     node.ColorBuffer,
		DrawBufferIndex: -1,
	})
}
