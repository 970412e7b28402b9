package renderview

import (
	"maps"

	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// FindTechniqueForEffect picks the technique of effect to render with.
// A technique qualifies when the renderer marked it compatible and it
// satisfies every key of the technique filter (a nil or empty filter
// accepts everything). Among several candidates the one targeting the
// highest API version wins; the first declared wins ties.
func FindTechniqueForEffect(filter *framegraph.Node, effect *scene.Effect) *scene.Technique {
	if effect == nil {
		return nil
	}
	var filters []scene.FilterKey
	if filter != nil {
		filters = filter.Filters
	}

	var best *scene.Technique
	for _, t := range effect.Techniques {
		if !t.CompatibleWithRenderer() || !t.MatchesFilters(filters) {
			continue
		}
		if best == nil || best.API.Less(t.API) {
			best = t
		}
	}
	return best
}

// FindRenderPassesForTechnique returns the enabled passes of technique that
// carry a matching key for every key of the pass filter, in declaration
// order.
func FindRenderPassesForTechnique(filter *framegraph.Node, technique *scene.Technique) []*scene.RenderPass {
	if technique == nil {
		return nil
	}
	var passes []*scene.RenderPass
	for _, pass := range technique.Passes {
		if !pass.Enabled {
			continue
		}
		if filter == nil || len(filter.Filters) == 0 || passMatches(pass, filter.Filters) {
			passes = append(passes, pass)
		}
	}
	return passes
}

func passMatches(pass *scene.RenderPass, filters []scene.FilterKey) bool {
	if len(pass.FilterKeys) < len(filters) {
		return false
	}
	for _, f := range filters {
		found := false
		for _, k := range pass.FilterKeys {
			if k.Equal(f) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MergeParameters resolves the parameter set of one pass. When names
// collide the material wins over the effect, which wins over the technique,
// which wins over the pass.
func MergeParameters(material *scene.Material, technique *scene.Technique, pass *scene.RenderPass) scene.Parameters {
	out := scene.Parameters{}
	if pass != nil {
		maps.Copy(out, pass.Parameters)
	}
	if technique != nil {
		maps.Copy(out, technique.Parameters)
	}
	if material != nil {
		if material.Effect != nil {
			maps.Copy(out, material.Effect.Parameters)
		}
		maps.Copy(out, material.Parameters)
	}
	return out
}
