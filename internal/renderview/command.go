package renderview

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// RenderCommand is one draw or dispatch for one entity and one render pass.
type RenderCommand struct {
	Entity     *scene.Entity
	Material   *scene.Material
	Pass       *scene.RenderPass
	Shader     *scene.ShaderProgram
	Parameters scene.Parameters

	// Depth is the view-space distance from the eye to the entity.
	Depth     float32
	StateCost int

	IsCompute   bool
	Workgroups  [3]int
	VertexCount int
	Instances   int
}

func shaderKey(c *RenderCommand) []byte {
	if c.Shader == nil {
		return nil
	}
	return c.Shader.ID[:]
}

func compareBy(t framegraph.SortType, a, b *RenderCommand) int {
	switch t {
	case framegraph.SortStateChangeCost:
		// Most expensive state changes first so cheaper ones can batch.
		return cmp.Compare(b.StateCost, a.StateCost)
	case framegraph.SortMaterial:
		return bytes.Compare(shaderKey(a), shaderKey(b))
	case framegraph.SortBackToFront:
		return cmp.Compare(b.Depth, a.Depth)
	case framegraph.SortFrontToBack:
		return cmp.Compare(a.Depth, b.Depth)
	}
	return 0
}

// SortCommands orders commands in place. The first sort type is the
// primary key; later types break ties. With no sort types the command
// order is left untouched.
func SortCommands(commands []*RenderCommand, sortTypes []framegraph.SortType) {
	if len(sortTypes) == 0 || len(commands) < 2 {
		return
	}
	slices.SortStableFunc(commands, func(a, b *RenderCommand) int {
		for _, t := range sortTypes {
			if c := compareBy(t, a, b); c != 0 {
				return c
			}
		}
		return 0
	})
}
