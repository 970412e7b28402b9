package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Entity is a node of the scene tree. The render jobs only ever hold
// non-owning pointers to entities; entities are created and destroyed
// through Managers.
type Entity struct {
	id       NodeID
	Name     string
	Enabled  bool
	parent   *Entity
	children []*Entity

	// LocalTransform is relative to the parent entity.
	LocalTransform mgl32.Mat4
	// LocalBounds is the bounding sphere in local space. Entities without
	// geometry usually leave it empty.
	LocalBounds Sphere

	Geometry         *GeometryRenderer
	Compute          *ComputeCommand
	Material         *Material
	Light            *Light
	EnvironmentLight *EnvironmentLight
	Lens             *CameraLens
	Armature         *Armature
	Layers           []NodeID

	// Derived state, written by the renderer's fixed jobs.
	treeEnabled     bool
	worldTransform  mgl32.Mat4
	worldBounds     Sphere
	subtreeBounds   Sphere
	effectiveLayers []NodeID
}

// NewEntity creates a detached, enabled entity with an identity transform.
func NewEntity(name string) *Entity {
	return &Entity{
		id:             NewID(),
		Name:           name,
		Enabled:        true,
		LocalTransform: mgl32.Ident4(),
		LocalBounds:    EmptySphere(),
		treeEnabled:    true,
		worldTransform: mgl32.Ident4(),
		worldBounds:    EmptySphere(),
		subtreeBounds:  EmptySphere(),
	}
}

func (e *Entity) ID() NodeID { return e.id }

func (e *Entity) Parent() *Entity { return e.parent }

func (e *Entity) Children() []*Entity { return e.children }

// AddChild reparents c under e.
func (e *Entity) AddChild(c *Entity) {
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = e
	e.children = append(e.children, c)
}

func (e *Entity) removeChild(c *Entity) {
	e.children = slices.DeleteFunc(e.children, func(x *Entity) bool { return x == c })
	c.parent = nil
}

// TreeEnabled is true when the entity and all its ancestors are enabled.
func (e *Entity) TreeEnabled() bool { return e.treeEnabled }

func (e *Entity) SetTreeEnabled(v bool) { e.treeEnabled = v }

func (e *Entity) WorldTransform() mgl32.Mat4 { return e.worldTransform }

func (e *Entity) SetWorldTransform(m mgl32.Mat4) { e.worldTransform = m }

// WorldBounds is the entity's own bounding sphere in world space.
func (e *Entity) WorldBounds() Sphere { return e.worldBounds }

func (e *Entity) SetWorldBounds(s Sphere) { e.worldBounds = s }

// CullingBounds is the volume culling and proximity tests use. Geometry
// without a bounding sphere is tested as a point at its world position.
func (e *Entity) CullingBounds() Sphere {
	if e.worldBounds.IsEmpty() && e.Geometry != nil {
		return Sphere{Center: e.WorldPosition()}
	}
	return e.worldBounds
}

// SubtreeBounds encloses the entity and every descendant.
func (e *Entity) SubtreeBounds() Sphere { return e.subtreeBounds }

func (e *Entity) SetSubtreeBounds(s Sphere) { e.subtreeBounds = s }

// EffectiveLayers are the entity's own layers plus recursive layers
// inherited from ancestors, as computed by the entity-layers job.
func (e *Entity) EffectiveLayers() []NodeID { return e.effectiveLayers }

func (e *Entity) SetEffectiveLayers(ids []NodeID) { e.effectiveLayers = ids }

// HasLayer reports whether id is among the effective layers.
func (e *Entity) HasLayer(id NodeID) bool {
	return slices.Contains(e.effectiveLayers, id)
}

// WorldPosition is the translation part of the world transform.
func (e *Entity) WorldPosition() mgl32.Vec3 {
	return e.worldTransform.Col(3).Vec3()
}

// Visit walks the subtree rooted at e in depth-first pre-order. Returning
// false from fn skips the children of the visited entity.
func (e *Entity) Visit(fn func(*Entity) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Visit(fn)
	}
}
