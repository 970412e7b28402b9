package jobs

import (
	"context"
	"fmt"
	"maps"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/renderview"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// RenderViewCommandBuilderJob turns its shard of the view's entities into
// render commands, one per entity and selected render pass.
type RenderViewCommandBuilderJob struct {
	job.Base
	renderView *renderview.RenderView
	entities   []*scene.Entity
	parameters []MaterialParameters
	commands   []*renderview.RenderCommand
}

func NewRenderViewCommandBuilderJob(id string) *RenderViewCommandBuilderJob {
	return &RenderViewCommandBuilderJob{
		Base: job.NewBase(id, job.RenderCommandBuilding),
	}
}

func (j *RenderViewCommandBuilderJob) SetRenderView(rv *renderview.RenderView) { j.renderView = rv }

func (j *RenderViewCommandBuilderJob) RenderView() *renderview.RenderView { return j.renderView }

func (j *RenderViewCommandBuilderJob) SetEntities(entities []*scene.Entity) { j.entities = entities }

func (j *RenderViewCommandBuilderJob) Entities() []*scene.Entity { return j.entities }

// SetMaterialParameters hands over the results of every material
// gatherer. They are only read.
func (j *RenderViewCommandBuilderJob) SetMaterialParameters(params []MaterialParameters) {
	j.parameters = params
}

func (j *RenderViewCommandBuilderJob) Commands() []*renderview.RenderCommand { return j.commands }

func (j *RenderViewCommandBuilderJob) lookup(id scene.NodeID) ([]RenderPassParameterData, bool) {
	for _, p := range j.parameters {
		if data, ok := p[id]; ok {
			return data, true
		}
	}
	return nil, false
}

func (j *RenderViewCommandBuilderJob) Run(ctx context.Context) error {
	j.commands = nil
	rv := j.renderView
	if rv == nil {
		return fmt.Errorf("command builder %s has no render view", j.ID())
	}
	if rv.NoDraw {
		return nil
	}
	for _, e := range j.entities {
		if e.Material == nil {
			continue
		}
		data, ok := j.lookup(e.Material.ID)
		if !ok {
			continue
		}
		for _, d := range data {
			j.commands = append(j.commands, j.buildCommand(rv, e, d))
		}
	}
	ctxlog.FromContext(ctx).Debug("Render commands built.",
		"job", j.ID(),
		"view", rv.Index(),
		"entities", len(j.entities),
		"commands", len(j.commands),
	)
	return nil
}

func (j *RenderViewCommandBuilderJob) buildCommand(rv *renderview.RenderView, e *scene.Entity, d RenderPassParameterData) *renderview.RenderCommand {
	center := e.WorldBounds().Center
	if e.WorldBounds().IsEmpty() {
		center = e.WorldPosition()
	}
	cmd := &renderview.RenderCommand{
		Entity:     e,
		Material:   e.Material,
		Pass:       d.Pass,
		Shader:     d.Pass.Shader,
		Parameters: uniformParameters(d.Pass.Shader, d.Parameters),
		Depth:      center.Sub(rv.EyePosition).Len(),
		StateCost:  d.Pass.StateCount,
	}
	if rv.Compute {
		cmd.IsCompute = true
		cmd.Workgroups = rv.Workgroups
		if e.Compute != nil {
			cmd.Workgroups = e.Compute.Workgroups
		}
		return cmd
	}
	if e.Geometry != nil {
		cmd.VertexCount = e.Geometry.VertexCount
		cmd.Instances = e.Geometry.Instances
	}
	return cmd
}

// uniformParameters drops the parameters an introspected shader does not
// declare. Until introspection ran every parameter is kept.
func uniformParameters(shader *scene.ShaderProgram, params scene.Parameters) scene.Parameters {
	if shader == nil || !shader.Introspected() {
		return maps.Clone(params)
	}
	out := make(scene.Parameters, len(params))
	for name, v := range params {
		if shader.HasUniform(name) {
			out[name] = v
		}
	}
	return out
}
