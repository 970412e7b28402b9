package hcl_adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

var layerModes = map[string]framegraph.LayerFilterMode{
	"":            framegraph.AcceptAnyMatchingLayers,
	"accept_any":  framegraph.AcceptAnyMatchingLayers,
	"accept_all":  framegraph.AcceptAllMatchingLayers,
	"discard_any": framegraph.DiscardAnyMatchingLayers,
	"discard_all": framegraph.DiscardAllMatchingLayers,
}

var sortTypes = map[string]framegraph.SortType{
	"state_change_cost": framegraph.SortStateChangeCost,
	"material":          framegraph.SortMaterial,
	"back_to_front":     framegraph.SortBackToFront,
	"front_to_back":     framegraph.SortFrontToBack,
}

var clearBuffers = map[string]framegraph.ClearBufferType{
	"color":   framegraph.ClearColor,
	"depth":   framegraph.ClearDepth,
	"stencil": framegraph.ClearStencil,
}

// translateFrameGraph builds the frame graph. Several top-level nodes are
// placed under an implicit group so that the graph always has one root.
func (t *sceneTranslator) translateFrameGraph(ctx context.Context, b *FrameGraphBlock) (*framegraph.Node, error) {
	var root *framegraph.Node
	if len(b.Nodes) > 1 {
		root = framegraph.New(framegraph.Group, "root", nil)
	}
	for _, nb := range b.Nodes {
		n, err := t.translateNode(ctx, nb, root)
		if err != nil {
			return nil, err
		}
		if root == nil {
			root = n
		}
	}
	return root, nil
}

func (t *sceneTranslator) translateNode(ctx context.Context, b *NodeBlock, parent *framegraph.Node) (*framegraph.Node, error) {
	typ, ok := framegraph.ParseNodeType(b.Type)
	if !ok {
		return nil, fmt.Errorf("unknown frame graph node type '%s' for node '%s'", b.Type, b.Name)
	}
	n := framegraph.New(typ, b.Name, parent)

	wrap := func(err error) error { return fmt.Errorf("in %s node '%s': %w", b.Type, b.Name, err) }

	enabled, err := boolAttr(ctx, b.Enabled, "enabled", true)
	if err != nil {
		return nil, wrap(err)
	}
	n.Enabled = enabled

	if err := t.configureNode(b, n); err != nil {
		return nil, wrap(err)
	}
	ctxlog.FromContext(ctx).Debug("Translated frame graph node.", "type", b.Type, "name", b.Name)

	for _, cb := range b.Children {
		if _, err := t.translateNode(ctx, cb, n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// configureNode copies the attributes meaningful for the node's type.
// Attributes that do not apply are ignored.
func (t *sceneTranslator) configureNode(b *NodeBlock, n *framegraph.Node) error {
	switch n.Type {
	case framegraph.CameraSelector:
		e, err := t.entityRef(b.Camera, "camera")
		if err != nil {
			return err
		}
		if e.Lens == nil {
			return fmt.Errorf("entity '%s' has no camera block", b.Camera)
		}
		n.Camera = e.ID()

	case framegraph.LayerFilter:
		for _, name := range b.Layers {
			layer, ok := t.out.Layers[name]
			if !ok {
				return fmt.Errorf("unknown layer '%s'", name)
			}
			n.Layers = append(n.Layers, layer.ID)
		}
		mode, ok := layerModes[b.Mode]
		if !ok {
			return fmt.Errorf("unknown layer filter mode '%s'", b.Mode)
		}
		n.LayerMode = mode

	case framegraph.ProximityFilter:
		e, err := t.entityRef(b.Entity, "entity")
		if err != nil {
			return err
		}
		n.ProximityEntity = e.ID()
		n.ProximityDistance = float32(b.Distance)

	case framegraph.TechniqueFilter, framegraph.RenderPassFilter:
		keys, err := t.conv.FilterKeys(b.Filters)
		if err != nil {
			return err
		}
		n.Filters = keys

	case framegraph.Viewport:
		if len(b.Rect) > 0 {
			if len(b.Rect) != 4 {
				return fmt.Errorf("'rect' must have 4 components, but got %d", len(b.Rect))
			}
			n.Rect = framegraph.Rect{
				X:      float32(b.Rect[0]),
				Y:      float32(b.Rect[1]),
				Width:  float32(b.Rect[2]),
				Height: float32(b.Rect[3]),
			}
		}
		if b.Gamma != 0 {
			n.Gamma = float32(b.Gamma)
		}

	case framegraph.ClearBuffers:
		buffers, err := parseClearBuffers(b.Buffers)
		if err != nil {
			return err
		}
		n.Buffers = buffers
		if len(b.ClearColor) > 0 {
			if len(b.ClearColor) != 4 {
				return fmt.Errorf("'clear_color' must have 4 components, but got %d", len(b.ClearColor))
			}
			for i, v := range b.ClearColor {
				n.ClearColor[i] = float32(v)
			}
		}
		n.ColorBuffer = b.ColorBuffer

	case framegraph.SortPolicy:
		for _, name := range b.Sort {
			st, ok := sortTypes[name]
			if !ok {
				return fmt.Errorf("unknown sort type '%s'", name)
			}
			n.SortTypes = append(n.SortTypes, st)
		}

	case framegraph.ComputeDispatch:
		groups, err := workgroups(b.Workgroups)
		if err != nil {
			return err
		}
		n.Workgroups = groups

	case framegraph.RenderTargetSelector:
		n.Outputs = b.Outputs
	}
	return nil
}

func (t *sceneTranslator) entityRef(name, attrName string) (*scene.Entity, error) {
	if name == "" {
		return nil, fmt.Errorf("'%s' is required", attrName)
	}
	e, ok := t.out.Entities[name]
	if !ok {
		return nil, fmt.Errorf("unknown entity '%s'", name)
	}
	return e, nil
}

// parseClearBuffers accepts "none" or an underscore-separated combination
// of color, depth and stencil, e.g. "color_depth".
func parseClearBuffers(s string) (framegraph.ClearBufferType, error) {
	if s == "" || s == "none" {
		return framegraph.ClearNone, nil
	}
	var out framegraph.ClearBufferType
	for _, part := range strings.Split(s, "_") {
		bit, ok := clearBuffers[part]
		if !ok {
			return framegraph.ClearNone, fmt.Errorf("unknown clear buffer type '%s'", s)
		}
		out |= bit
	}
	return out, nil
}
