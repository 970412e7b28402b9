package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere is a bounding sphere. A negative radius marks an empty volume.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// EmptySphere returns a sphere that contains nothing.
func EmptySphere() Sphere {
	return Sphere{Radius: -1}
}

func (s Sphere) IsEmpty() bool {
	return s.Radius < 0
}

// Transformed returns the sphere moved into the space described by m. The
// radius is scaled by the largest axis scale so the result still encloses
// the original volume under non-uniform scaling.
func (s Sphere) Transformed(m mgl32.Mat4) Sphere {
	if s.IsEmpty() {
		return s
	}
	center := mgl32.TransformCoordinate(s.Center, m)
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	scale := max(sx, sy, sz)
	return Sphere{Center: center, Radius: s.Radius * scale}
}

// Expanded returns the smallest sphere enclosing both s and o.
func (s Sphere) Expanded(o Sphere) Sphere {
	switch {
	case o.IsEmpty():
		return s
	case s.IsEmpty():
		return o
	}
	d := o.Center.Sub(s.Center)
	dist := d.Len()
	if dist+o.Radius <= s.Radius {
		return s
	}
	if dist+s.Radius <= o.Radius {
		return o
	}
	radius := (dist + s.Radius + o.Radius) / 2
	center := s.Center
	if dist > 0 {
		center = s.Center.Add(d.Mul((radius - s.Radius) / dist))
	}
	return Sphere{Center: center, Radius: radius}
}
