package config

import (
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// Scene is a loaded scene and frame graph, ready to hand to a renderer.
type Scene struct {
	Managers   *scene.Managers
	FrameGraph *framegraph.Node

	// Lookup tables by declared name, for callers that mutate the scene
	// between frames.
	Entities  map[string]*scene.Entity
	Layers    map[string]*scene.Layer
	Materials map[string]*scene.Material
	Buffers   map[string]*scene.Buffer
	Textures  map[string]*scene.Texture
}

// Entity returns the entity declared under name, or nil.
func (s *Scene) Entity(name string) *scene.Entity {
	return s.Entities[name]
}

// Leaves returns the render-view leaves of the frame graph, in view order.
func (s *Scene) Leaves() []*framegraph.Node {
	return framegraph.Leaves(s.FrameGraph)
}
