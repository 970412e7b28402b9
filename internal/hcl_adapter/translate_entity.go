package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// Camera defaults, used for attributes a camera block leaves out.
const (
	defaultFieldOfView = 45
	defaultAspect      = 16.0 / 9.0
	defaultNear        = 0.1
	defaultFar         = 1000
)

// translateEntity converts an entity block and, recursively, its children.
// Entity names are global so frame-graph nodes can refer to them.
func (t *sceneTranslator) translateEntity(ctx context.Context, b *EntityBlock) (*scene.Entity, error) {
	if _, dup := t.out.Entities[b.Name]; dup {
		return nil, fmt.Errorf("duplicate entity '%s'", b.Name)
	}
	logger := ctxlog.FromContext(ctx).With("entity", b.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	e := scene.NewEntity(b.Name)
	t.out.Entities[b.Name] = e

	wrap := func(err error) error { return fmt.Errorf("in entity '%s': %w", b.Name, err) }

	enabled, err := boolAttr(ctx, b.Enabled, "enabled", true)
	if err != nil {
		return nil, wrap(err)
	}
	e.Enabled = enabled

	if e.LocalTransform, err = localTransform(b); err != nil {
		return nil, wrap(err)
	}

	if b.BoundsRadius > 0 {
		center, err := vec3(b.BoundsCenter, "bounds_center", [3]float32{})
		if err != nil {
			return nil, wrap(err)
		}
		e.LocalBounds = scene.Sphere{Center: center, Radius: float32(b.BoundsRadius)}
	}

	if b.Material != "" {
		m, ok := t.out.Materials[b.Material]
		if !ok {
			return nil, wrap(fmt.Errorf("unknown material '%s'", b.Material))
		}
		e.Material = m
	}
	for _, name := range b.Layers {
		layer, ok := t.out.Layers[name]
		if !ok {
			return nil, wrap(fmt.Errorf("unknown layer '%s'", name))
		}
		e.Layers = append(e.Layers, layer.ID)
	}

	if err := t.translateComponents(b, e); err != nil {
		return nil, wrap(err)
	}
	logger.Debug("Translated entity.", "children", len(b.Children))

	for _, cb := range b.Children {
		child, err := t.translateEntity(ctx, cb)
		if err != nil {
			return nil, err
		}
		e.AddChild(child)
	}
	return e, nil
}

// localTransform composes translation, rotation (XYZ Euler angles in
// degrees) and scale.
func localTransform(b *EntityBlock) (mgl32.Mat4, error) {
	translation, err := vec3(b.Translation, "translation", [3]float32{})
	if err != nil {
		return mgl32.Ident4(), err
	}
	rotation, err := vec3(b.Rotation, "rotation", [3]float32{})
	if err != nil {
		return mgl32.Ident4(), err
	}
	scale, err := vec3(b.Scale, "scale", [3]float32{1, 1, 1})
	if err != nil {
		return mgl32.Ident4(), err
	}
	r := mgl32.AnglesToQuat(
		mgl32.DegToRad(rotation[0]),
		mgl32.DegToRad(rotation[1]),
		mgl32.DegToRad(rotation[2]),
		mgl32.XYZ,
	).Mat4()
	return mgl32.Translate3D(translation[0], translation[1], translation[2]).
		Mul4(r).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2])), nil
}

func (t *sceneTranslator) translateComponents(b *EntityBlock, e *scene.Entity) error {
	if g := b.Geometry; g != nil {
		instances := g.Instances
		if instances == 0 {
			instances = 1
		}
		geometry := &scene.GeometryRenderer{ID: scene.NewID(), VertexCount: g.VertexCount, Instances: instances}
		for _, name := range g.Buffers {
			buf, ok := t.out.Buffers[name]
			if !ok {
				return fmt.Errorf("unknown buffer '%s'", name)
			}
			geometry.Buffers = append(geometry.Buffers, buf.ID)
		}
		e.Geometry = geometry
	}

	if c := b.Compute; c != nil {
		groups, err := workgroups(c.Workgroups)
		if err != nil {
			return err
		}
		e.Compute = &scene.ComputeCommand{ID: scene.NewID(), Workgroups: groups}
	}

	if l := b.Light; l != nil {
		light, err := translateLight(l)
		if err != nil {
			return err
		}
		e.Light = light
	}

	if env := b.EnvironmentLight; env != nil {
		light := &scene.EnvironmentLight{ID: scene.NewID()}
		maps := []struct {
			name string
			dst  *scene.NodeID
		}{
			{env.Irradiance, &light.Irradiance},
			{env.Specular, &light.Specular},
		}
		for _, m := range maps {
			if m.name == "" {
				continue
			}
			tex, ok := t.out.Textures[m.name]
			if !ok {
				return fmt.Errorf("unknown texture '%s'", m.name)
			}
			*m.dst = tex.ID
		}
		e.EnvironmentLight = light
	}

	if c := b.Camera; c != nil {
		lens := scene.NewPerspectiveLens(
			orDefault(c.FieldOfView, defaultFieldOfView),
			orDefault(c.Aspect, defaultAspect),
			orDefault(c.Near, defaultNear),
			orDefault(c.Far, defaultFar),
		)
		lens.Exposure = float32(c.Exposure)
		e.Lens = lens
	}

	if a := b.Armature; a != nil {
		if a.Joints < 0 {
			return fmt.Errorf("armature joints must not be negative, got %d", a.Joints)
		}
		armature := &scene.Armature{ID: scene.NewID()}
		for range a.Joints {
			armature.JointTransforms = append(armature.JointTransforms, mgl32.Ident4())
			armature.InverseBindMatrices = append(armature.InverseBindMatrices, mgl32.Ident4())
		}
		e.Armature = armature
	}
	return nil
}

func translateLight(b *LightBlock) (*scene.Light, error) {
	var typ scene.LightType
	switch b.Type {
	case "point":
		typ = scene.PointLight
	case "spot":
		typ = scene.SpotLight
	case "directional":
		typ = scene.DirectionalLight
	default:
		return nil, fmt.Errorf("unknown light type '%s'", b.Type)
	}
	color, err := vec3(b.Color, "color", [3]float32{1, 1, 1})
	if err != nil {
		return nil, err
	}
	direction, err := vec3(b.Direction, "direction", [3]float32{0, 0, -1})
	if err != nil {
		return nil, err
	}
	return &scene.Light{
		ID:        scene.NewID(),
		Type:      typ,
		Color:     color,
		Intensity: orDefault(b.Intensity, 1),
		Direction: direction,
		CutOff:    float32(b.CutOff),
	}, nil
}

// workgroups fills missing dimensions with 1.
func workgroups(values []int) ([3]int, error) {
	out := [3]int{1, 1, 1}
	if len(values) > 3 {
		return out, fmt.Errorf("'workgroups' takes at most 3 values, got %d", len(values))
	}
	for i, v := range values {
		if v < 1 {
			return out, fmt.Errorf("'workgroups' values must be positive, got %d", v)
		}
		out[i] = v
	}
	return out, nil
}

func orDefault(v, def float64) float32 {
	if v == 0 {
		return float32(def)
	}
	return float32(v)
}
