// Package framegraph models the tree of render configuration nodes. Each
// leaf of the tree defines one render view; the configuration that applies
// to a view is collected by walking from its leaf up to the root.
//
// The package only describes configuration. Reading it into a render view
// is done by renderview.ConfigureFromLeaf.
package framegraph

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// NodeType identifies the configuration a node contributes.
type NodeType int

const (
	Group NodeType = iota
	CameraSelector
	LayerFilter
	ProximityFilter
	TechniqueFilter
	RenderPassFilter
	Viewport
	ClearBuffers
	SortPolicy
	FrustumCulling
	ComputeDispatch
	NoDraw
	RenderTargetSelector
)

var nodeTypeNames = map[NodeType]string{
	Group:            "group",
	CameraSelector:   "camera_selector",
	LayerFilter:      "layer_filter",
	ProximityFilter:  "proximity_filter",
	TechniqueFilter:  "technique_filter",
	RenderPassFilter: "render_pass_filter",
	Viewport:         "viewport",
	ClearBuffers:     "clear_buffers",
	SortPolicy:       "sort_policy",
	FrustumCulling:   "frustum_culling",
	ComputeDispatch:  "compute_dispatch",
	NoDraw:           "no_draw",

	RenderTargetSelector: "render_target_selector",
}

func (t NodeType) String() string {
	if n, ok := nodeTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

// ParseNodeType maps a config name such as "layer_filter" to its type.
func ParseNodeType(name string) (NodeType, bool) {
	for t, n := range nodeTypeNames {
		if n == name {
			return t, true
		}
	}
	return Group, false
}

// LayerFilterMode controls how a layer filter matches entity layers.
type LayerFilterMode int

const (
	// AcceptAnyMatchingLayers keeps entities carrying at least one layer.
	AcceptAnyMatchingLayers LayerFilterMode = iota
	// AcceptAllMatchingLayers keeps entities carrying every layer.
	AcceptAllMatchingLayers
	// DiscardAnyMatchingLayers drops entities carrying at least one layer.
	DiscardAnyMatchingLayers
	// DiscardAllMatchingLayers drops entities carrying every layer.
	DiscardAllMatchingLayers
)

// ClearBufferType is a bit set of the buffers a ClearBuffers node clears.
type ClearBufferType int

const (
	ClearNone    ClearBufferType = 0
	ClearColor   ClearBufferType = 1
	ClearDepth   ClearBufferType = 2
	ClearStencil ClearBufferType = 4

	ClearColorDepth        = ClearColor | ClearDepth
	ClearColorDepthStencil = ClearColor | ClearDepth | ClearStencil
)

// SortType is one key of a sort policy.
type SortType int

const (
	SortStateChangeCost SortType = iota
	SortMaterial
	SortBackToFront
	SortFrontToBack
)

// Rect is a normalized viewport rectangle.
type Rect struct {
	X, Y, Width, Height float32
}

// FullRect covers the whole surface.
var FullRect = Rect{0, 0, 1, 1}

// Node is a frame-graph node. Only the fields relevant to its Type are
// meaningful; the rest keep their zero values.
type Node struct {
	id       scene.NodeID
	Type     NodeType
	Name     string
	Enabled  bool
	parent   *Node
	children []*Node

	// CameraSelector
	Camera scene.NodeID

	// LayerFilter
	Layers    []scene.NodeID
	LayerMode LayerFilterMode

	// ProximityFilter
	ProximityEntity   scene.NodeID
	ProximityDistance float32

	// TechniqueFilter and RenderPassFilter
	Filters []scene.FilterKey

	// Viewport
	Rect  Rect
	Gamma float32

	// ClearBuffers
	Buffers      ClearBufferType
	ClearColor   mgl32.Vec4
	DepthValue   float32
	StencilValue int
	// ColorBuffer names the render target output cleared by this node. An
	// empty name clears every color attachment.
	ColorBuffer string

	// SortPolicy
	SortTypes []SortType

	// ComputeDispatch
	Workgroups [3]int

	// RenderTargetSelector lists the draw buffers of the selected target,
	// in attachment order.
	Outputs []string
}

// New creates an enabled node of the given type under parent. parent may be
// nil for the root.
func New(t NodeType, name string, parent *Node) *Node {
	n := &Node{
		id:         scene.NewID(),
		Type:       t,
		Name:       name,
		Enabled:    true,
		Rect:       FullRect,
		Gamma:      2.2,
		DepthValue: 1,
	}
	if parent != nil {
		parent.children = append(parent.children, n)
		n.parent = parent
	}
	return n
}

func (n *Node) ID() scene.NodeID { return n.id }

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Children() []*Node { return n.children }

// PathToRoot returns the node followed by each ancestor, leaf first.
func (n *Node) PathToRoot() []*Node {
	var out []*Node
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	return out
}

// Leaves returns every enabled leaf under root in depth-first order. A
// disabled node prunes its whole subtree. The order defines render-view
// indices.
func Leaves(root *Node) []*Node {
	if root == nil {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if !n.Enabled {
			return
		}
		if len(n.children) == 0 {
			out = append(out, n)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)
	return out
}

// Find returns the first node in depth-first order with the given name.
func Find(root *Node, name string) *Node {
	if root == nil {
		return nil
	}
	if root.Name == name {
		return root
	}
	for _, c := range root.children {
		if f := Find(c, name); f != nil {
			return f
		}
	}
	return nil
}
