package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// The functions below recompute the derived entity state. The renderer runs
// each one as a fixed job once per frame, before any render view reads it.

// UpdateTreeEnabled marks an entity tree-enabled when it and every ancestor
// are enabled.
func UpdateTreeEnabled(root *Entity) {
	var walk func(e *Entity, parentEnabled bool)
	walk = func(e *Entity, parentEnabled bool) {
		e.treeEnabled = parentEnabled && e.Enabled
		for _, c := range e.children {
			walk(c, e.treeEnabled)
		}
	}
	walk(root, true)
}

// UpdateWorldTransforms composes local transforms down the tree.
func UpdateWorldTransforms(root *Entity) {
	var walk func(e *Entity, parent mgl32.Mat4)
	walk = func(e *Entity, parent mgl32.Mat4) {
		e.worldTransform = parent.Mul4(e.LocalTransform)
		for _, c := range e.children {
			walk(c, e.worldTransform)
		}
	}
	walk(root, mgl32.Ident4())
}

// ExpandBoundingVolumes transforms local bounds into world space and grows
// every subtree volume to enclose its descendants. World transforms must be
// up to date.
func ExpandBoundingVolumes(root *Entity) {
	var walk func(e *Entity) Sphere
	walk = func(e *Entity) Sphere {
		e.worldBounds = e.LocalBounds.Transformed(e.worldTransform)
		sub := e.CullingBounds()
		for _, c := range e.children {
			sub = sub.Expanded(walk(c))
		}
		e.subtreeBounds = sub
		return sub
	}
	walk(root)
}

// UpdateEntityLayers computes effective layers: an entity's own layers
// plus every recursive layer carried by an ancestor. Unknown layer ids are
// treated as non-recursive.
func UpdateEntityLayers(root *Entity, m *Managers) {
	var walk func(e *Entity, inherited []NodeID)
	walk = func(e *Entity, inherited []NodeID) {
		effective := make([]NodeID, 0, len(inherited)+len(e.Layers))
		effective = append(effective, inherited...)
		next := inherited
		for _, id := range e.Layers {
			if !slices.Contains(effective, id) {
				effective = append(effective, id)
			}
			if l := m.Layer(id); l != nil && l.Recursive && !slices.Contains(next, id) {
				next = append(next[:len(next):len(next)], id)
			}
		}
		e.effectiveLayers = effective
		for _, c := range e.children {
			walk(c, next)
		}
	}
	walk(root, nil)
}

// UpdateSkinningPalettes recomputes the joint palette of every armature in
// the tree. It returns the number of armatures updated.
func UpdateSkinningPalettes(root *Entity) int {
	n := 0
	root.Visit(func(e *Entity) bool {
		a := e.Armature
		if a == nil {
			return true
		}
		count := min(len(a.JointTransforms), len(a.InverseBindMatrices))
		a.Palette = a.Palette[:0]
		for i := 0; i < count; i++ {
			a.Palette = append(a.Palette, a.JointTransforms[i].Mul4(a.InverseBindMatrices[i]))
		}
		n++
		return true
	})
	return n
}

// UpdateShaderDataTransforms writes world-space positions and directions
// into the light components. World transforms must be up to date.
func UpdateShaderDataTransforms(root *Entity) {
	root.Visit(func(e *Entity) bool {
		if e.Light == nil {
			return true
		}
		e.Light.WorldPosition = e.WorldPosition()
		dir := e.worldTransform.Mul4x1(e.Light.Direction.Vec4(0)).Vec3()
		if dir.Len() > 0 {
			dir = dir.Normalize()
		}
		e.Light.WorldDirection = dir
		return true
	})
}

// FilterCompatibleTechniques flags the techniques the renderer's API can
// run: same API name and a version not above the renderer's.
func FilterCompatibleTechniques(techniques []*Technique, api GraphicsAPI) int {
	n := 0
	for _, t := range techniques {
		ok := t.API.Name == api.Name && !api.Less(t.API)
		t.SetCompatibleWithRenderer(ok)
		if ok {
			n++
		}
	}
	return n
}
