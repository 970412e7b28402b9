package scene

import "github.com/go-gl/mathgl/mgl32"

// GeometryRenderer marks an entity as drawable.
type GeometryRenderer struct {
	ID          NodeID
	VertexCount int
	Instances   int
	Buffers     []NodeID
}

// ComputeCommand marks an entity as a compute dispatch.
type ComputeCommand struct {
	ID         NodeID
	Workgroups [3]int
}

// LightType distinguishes the non-environment light kinds.
type LightType int

const (
	PointLight LightType = iota
	SpotLight
	DirectionalLight
)

func (t LightType) String() string {
	switch t {
	case PointLight:
		return "point"
	case SpotLight:
		return "spot"
	case DirectionalLight:
		return "directional"
	}
	return "unknown"
}

// Light is a point, spot or directional light component. WorldPosition and
// WorldDirection are written by the shader-data transform job.
type Light struct {
	ID        NodeID
	Type      LightType
	Color     mgl32.Vec3
	Intensity float32
	// Direction is the local-space direction for spot and directional lights.
	Direction mgl32.Vec3
	CutOff    float32

	WorldPosition  mgl32.Vec3
	WorldDirection mgl32.Vec3
}

// EnvironmentLight is the image-based light. At most one is used per view.
type EnvironmentLight struct {
	ID         NodeID
	Irradiance NodeID
	Specular   NodeID
}

// CameraLens holds the projection of a camera entity. The view matrix is
// derived from the entity's world transform.
type CameraLens struct {
	ID         NodeID
	Enabled    bool
	Projection mgl32.Mat4
	Exposure   float32
}

// NewPerspectiveLens builds an enabled lens with a perspective projection.
// fovY is in degrees.
func NewPerspectiveLens(fovY, aspect, near, far float32) *CameraLens {
	return &CameraLens{
		ID:         NewID(),
		Enabled:    true,
		Projection: mgl32.Perspective(mgl32.DegToRad(fovY), aspect, near, far),
	}
}

// Layer tags entities. A recursive layer also applies to every descendant
// of the entity carrying it.
type Layer struct {
	ID        NodeID
	Name      string
	Recursive bool
}

// Armature is a skinned skeleton. The palette is recomputed by the
// skinning-palette job from the joint transforms and inverse bind matrices.
type Armature struct {
	ID                  NodeID
	JointTransforms     []mgl32.Mat4
	InverseBindMatrices []mgl32.Mat4
	Palette             []mgl32.Mat4
}
