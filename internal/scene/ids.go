// Package scene holds the backend representation of the scene graph: the
// entity tree, its components and the lookup tables the render jobs read.
//
// Nothing in this package schedules work. The renderer's fixed jobs update
// derived state (world transforms, tree-enabled flags, bounding volumes,
// effective layers) and the per-view jobs only read it.
package scene

import "github.com/google/uuid"

// NodeID identifies any backend node: entities, components, frame-graph
// nodes and resources share the same id space.
type NodeID = uuid.UUID

// NilID is the zero NodeID. It never identifies a real node.
var NilID = uuid.Nil

// NewID returns a fresh random NodeID.
func NewID() NodeID {
	return uuid.New()
}
