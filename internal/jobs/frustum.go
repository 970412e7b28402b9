package jobs

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// FrustumCullingJob collects the enabled entities whose world bounding
// sphere intersects the view frustum. It does nothing while inactive;
// activation and the view-projection matrix are set by the builder once
// the render view is known.
type FrustumCullingJob struct {
	job.Base
	managers       *scene.Managers
	active         bool
	viewProjection mgl32.Mat4
	visible        []*scene.Entity
}

func NewFrustumCullingJob(id string, managers *scene.Managers) *FrustumCullingJob {
	return &FrustumCullingJob{
		Base:           job.NewBase(id, job.FrustumCulling),
		managers:       managers,
		viewProjection: mgl32.Ident4(),
	}
}

func (j *FrustumCullingJob) SetActive(active bool) { j.active = active }

func (j *FrustumCullingJob) IsActive() bool { return j.active }

func (j *FrustumCullingJob) SetViewProjection(m mgl32.Mat4) { j.viewProjection = m }

// ViewProjection is the identity until the builder sets the camera's.
func (j *FrustumCullingJob) ViewProjection() mgl32.Mat4 { return j.viewProjection }

// VisibleEntities returns the result of the last active run.
func (j *FrustumCullingJob) VisibleEntities() []*scene.Entity { return j.visible }

func (j *FrustumCullingJob) Run(ctx context.Context) error {
	j.visible = nil
	if !j.active || j.managers == nil || j.managers.Root() == nil {
		return nil
	}
	planes := frustumPlanes(j.viewProjection)
	j.managers.Root().Visit(func(e *scene.Entity) bool {
		if !e.TreeEnabled() {
			return false
		}
		if sb := e.SubtreeBounds(); !sb.IsEmpty() && !planes.intersects(sb) {
			return false
		}
		if cb := e.CullingBounds(); !cb.IsEmpty() && planes.intersects(cb) {
			j.visible = append(j.visible, e)
		}
		return true
	})
	ctxlog.FromContext(ctx).Debug("Frustum culling done.", "job", j.ID(), "visible", len(j.visible))
	return nil
}

// plane is ax + by + cz + d = 0 with a unit normal pointing inside.
type plane mgl32.Vec4

type frustum [6]plane

// frustumPlanes extracts the six clip planes of a view-projection matrix.
func frustumPlanes(m mgl32.Mat4) frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	raw := [6]mgl32.Vec4{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	}
	var f frustum
	for i, p := range raw {
		n := p.Vec3().Len()
		if n == 0 {
			f[i] = plane(p)
			continue
		}
		f[i] = plane(p.Mul(1 / n))
	}
	return f
}

func (f frustum) intersects(s scene.Sphere) bool {
	for _, p := range f {
		v := mgl32.Vec4(p)
		if v.Vec3().Dot(s.Center)+v[3] < -s.Radius {
			return false
		}
	}
	return true
}
