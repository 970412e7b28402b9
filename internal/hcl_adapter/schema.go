package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Layers     []*LayerBlock    `hcl:"layer,block"`
	Shaders    []*ShaderBlock   `hcl:"shader,block"`
	Buffers    []*BufferBlock   `hcl:"buffer,block"`
	Textures   []*TextureBlock  `hcl:"texture,block"`
	Effects    []*EffectBlock   `hcl:"effect,block"`
	Materials  []*MaterialBlock `hcl:"material,block"`
	Entities   []*EntityBlock   `hcl:"entity,block"`
	FrameGraph *FrameGraphBlock `hcl:"framegraph,block"`
	Remain     hcl.Body         `hcl:",remain"`
}

type LayerBlock struct {
	Name      string `hcl:"name,label"`
	Recursive bool   `hcl:"recursive,optional"`
}

type ShaderBlock struct {
	Name     string   `hcl:"name,label"`
	Uniforms []string `hcl:"uniforms,optional"`
}

type BufferBlock struct {
	Name  string `hcl:"name,label"`
	Dirty bool   `hcl:"dirty,optional"`
}

type TextureBlock struct {
	Name  string `hcl:"name,label"`
	Dirty bool   `hcl:"dirty,optional"`
}

// EffectBlock maps to an `effect "<name>"` block with nested techniques.
type EffectBlock struct {
	Name       string            `hcl:"name,label"`
	Parameters cty.Value         `hcl:"parameters,optional"`
	Techniques []*TechniqueBlock `hcl:"technique,block"`
}

type TechniqueBlock struct {
	Name       string             `hcl:"name,label"`
	API        string             `hcl:"api,optional"`
	Major      int                `hcl:"major,optional"`
	Minor      int                `hcl:"minor,optional"`
	FilterKeys cty.Value          `hcl:"filter_keys,optional"`
	Parameters cty.Value          `hcl:"parameters,optional"`
	Passes     []*RenderPassBlock `hcl:"render_pass,block"`
}

type RenderPassBlock struct {
	Name       string         `hcl:"name,label"`
	Enabled    hcl.Expression `hcl:"enabled,optional"`
	Shader     string         `hcl:"shader,optional"`
	FilterKeys cty.Value      `hcl:"filter_keys,optional"`
	Parameters cty.Value      `hcl:"parameters,optional"`
	StateCount int            `hcl:"state_count,optional"`
}

type MaterialBlock struct {
	Name       string         `hcl:"name,label"`
	Effect     string         `hcl:"effect"`
	Enabled    hcl.Expression `hcl:"enabled,optional"`
	Parameters cty.Value      `hcl:"parameters,optional"`
}

// EntityBlock maps to an `entity "<name>"` block. Child entities nest.
type EntityBlock struct {
	Name         string         `hcl:"name,label"`
	Enabled      hcl.Expression `hcl:"enabled,optional"`
	Translation  []float64      `hcl:"translation,optional"`
	Rotation     []float64      `hcl:"rotation,optional"`
	Scale        []float64      `hcl:"scale,optional"`
	BoundsCenter []float64      `hcl:"bounds_center,optional"`
	BoundsRadius float64        `hcl:"bounds_radius,optional"`
	Material     string         `hcl:"material,optional"`
	Layers       []string       `hcl:"layers,optional"`

	Geometry         *GeometryBlock         `hcl:"geometry,block"`
	Compute          *ComputeBlock          `hcl:"compute,block"`
	Light            *LightBlock            `hcl:"light,block"`
	EnvironmentLight *EnvironmentLightBlock `hcl:"environment_light,block"`
	Camera           *CameraBlock           `hcl:"camera,block"`
	Armature         *ArmatureBlock         `hcl:"armature,block"`

	Children []*EntityBlock `hcl:"entity,block"`
}

type GeometryBlock struct {
	VertexCount int      `hcl:"vertex_count"`
	Instances   int      `hcl:"instances,optional"`
	Buffers     []string `hcl:"buffers,optional"`
}

type ComputeBlock struct {
	Workgroups []int `hcl:"workgroups,optional"`
}

type LightBlock struct {
	Type      string    `hcl:"type"`
	Color     []float64 `hcl:"color,optional"`
	Intensity float64   `hcl:"intensity,optional"`
	Direction []float64 `hcl:"direction,optional"`
	CutOff    float64   `hcl:"cut_off,optional"`
}

type EnvironmentLightBlock struct {
	Irradiance string `hcl:"irradiance,optional"`
	Specular   string `hcl:"specular,optional"`
}

type CameraBlock struct {
	FieldOfView float64 `hcl:"fov,optional"`
	Aspect      float64 `hcl:"aspect,optional"`
	Near        float64 `hcl:"near,optional"`
	Far         float64 `hcl:"far,optional"`
	Exposure    float64 `hcl:"exposure,optional"`
}

type ArmatureBlock struct {
	Joints int `hcl:"joints"`
}

type FrameGraphBlock struct {
	Nodes []*NodeBlock `hcl:"node,block"`
}

// NodeBlock maps to a `node "<type>" "<name>"` block of the frame graph.
// Which attributes are meaningful depends on the type.
type NodeBlock struct {
	Type    string         `hcl:"type,label"`
	Name    string         `hcl:"name,label"`
	Enabled hcl.Expression `hcl:"enabled,optional"`

	Camera      string    `hcl:"camera,optional"`
	Layers      []string  `hcl:"layers,optional"`
	Mode        string    `hcl:"mode,optional"`
	Entity      string    `hcl:"entity,optional"`
	Distance    float64   `hcl:"distance,optional"`
	Filters     cty.Value `hcl:"filters,optional"`
	Rect        []float64 `hcl:"rect,optional"`
	Gamma       float64   `hcl:"gamma,optional"`
	Buffers     string    `hcl:"buffers,optional"`
	ClearColor  []float64 `hcl:"clear_color,optional"`
	ColorBuffer string    `hcl:"color_buffer,optional"`
	Sort        []string  `hcl:"sort,optional"`
	Workgroups  []int     `hcl:"workgroups,optional"`
	Outputs     []string  `hcl:"outputs,optional"`

	Children []*NodeBlock `hcl:"node,block"`
}
