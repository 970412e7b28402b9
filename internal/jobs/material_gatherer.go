package jobs

import (
	"context"
	"errors"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/renderview"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// ErrNoNodeManagers is returned when a gatherer runs before SetNodeManagers.
var ErrNoNodeManagers = errors.New("node managers not set")

// RenderPassParameterData is the resolved state of one pass of a material.
type RenderPassParameterData struct {
	Technique  *scene.Technique
	Pass       *scene.RenderPass
	Parameters scene.Parameters
}

// MaterialParameters maps a material id to the passes it renders with.
type MaterialParameters map[scene.NodeID][]RenderPassParameterData

// MaterialParameterGathererJob resolves, for its shard of materials, the
// technique and passes selected by the view's filters along with their
// merged parameters.
type MaterialParameterGathererJob struct {
	job.Base
	managers         *scene.Managers
	materials        []*scene.Material
	techniqueFilter  *framegraph.Node
	renderPassFilter *framegraph.Node
	result           MaterialParameters
}

func NewMaterialParameterGathererJob(id string) *MaterialParameterGathererJob {
	return &MaterialParameterGathererJob{
		Base: job.NewBase(id, job.MaterialParameterGathering),
	}
}

func (j *MaterialParameterGathererJob) SetNodeManagers(m *scene.Managers) { j.managers = m }

func (j *MaterialParameterGathererJob) SetMaterials(materials []*scene.Material) {
	j.materials = materials
}

func (j *MaterialParameterGathererJob) Materials() []*scene.Material { return j.materials }

func (j *MaterialParameterGathererJob) SetTechniqueFilter(n *framegraph.Node) { j.techniqueFilter = n }

func (j *MaterialParameterGathererJob) SetRenderPassFilter(n *framegraph.Node) {
	j.renderPassFilter = n
}

func (j *MaterialParameterGathererJob) TechniqueFilter() *framegraph.Node { return j.techniqueFilter }

func (j *MaterialParameterGathererJob) RenderPassFilter() *framegraph.Node {
	return j.renderPassFilter
}

// Result returns the parameters gathered by the last run.
func (j *MaterialParameterGathererJob) Result() MaterialParameters { return j.result }

func (j *MaterialParameterGathererJob) Run(ctx context.Context) error {
	if j.managers == nil {
		return ErrNoNodeManagers
	}
	logger := ctxlog.FromContext(ctx)
	j.result = make(MaterialParameters, len(j.materials))
	for _, mat := range j.materials {
		if !mat.Enabled || mat.Effect == nil {
			continue
		}
		technique := renderview.FindTechniqueForEffect(j.techniqueFilter, mat.Effect)
		if technique == nil {
			logger.Debug("No technique matches material.", "job", j.ID(), "material", mat.Name)
			continue
		}
		passes := renderview.FindRenderPassesForTechnique(j.renderPassFilter, technique)
		data := make([]RenderPassParameterData, 0, len(passes))
		for _, pass := range passes {
			data = append(data, RenderPassParameterData{
				Technique:  technique,
				Pass:       pass,
				Parameters: renderview.MergeParameters(mat, technique, pass),
			})
		}
		j.result[mat.ID] = data
	}
	logger.Debug("Material parameters gathered.",
		"job", j.ID(),
		"materials", len(j.materials),
		"resolved", len(j.result),
	)
	return nil
}
