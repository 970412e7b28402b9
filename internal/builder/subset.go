package builder

import (
	"bytes"
	"slices"

	"github.com/specialistvlad/framegridgo/internal/scene"
)

// EntitiesInSubset returns the entities of candidates that also appear in
// subset, in candidate order. subset is sorted by id into a scratch copy so
// each lookup is a binary search.
func EntitiesInSubset(candidates, subset []*scene.Entity) []*scene.Entity {
	if len(candidates) == 0 || len(subset) == 0 {
		return nil
	}
	sorted := slices.Clone(subset)
	slices.SortFunc(sorted, compareEntities)

	out := make([]*scene.Entity, 0, min(len(candidates), len(subset)))
	for _, e := range candidates {
		if _, found := slices.BinarySearchFunc(sorted, e, compareEntities); found {
			out = append(out, e)
		}
	}
	return out
}

func compareEntities(a, b *scene.Entity) int {
	ida, idb := a.ID(), b.ID()
	return bytes.Compare(ida[:], idb[:])
}
