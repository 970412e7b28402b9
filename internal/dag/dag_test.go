package dag

import (
	"context"
	"testing"

	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(id string, deps ...job.Job) *job.Sync {
	j := job.NewSync(id, job.RenderView, nil)
	for _, d := range deps {
		j.AddDependency(d)
	}
	return j
}

func ids(jobs []job.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID()
	}
	return out
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Equal(t, 0, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New()
	a := newJob("a")

	require.NoError(t, g.AddNode(a))
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.Same(t, a, g.Job("a"))

	require.NoError(t, g.AddNode(a)) // Test idempotency
	assert.Len(t, g.nodes, 1)

	err := g.AddNode(newJob("a"))
	assert.ErrorContains(t, err, "duplicate job id")

	require.NoError(t, g.AddNode(newJob("b")))
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"a", "b"}, ids(g.Jobs()))
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddNode(newJob("a")))
		require.NoError(t, g.AddNode(newJob("b")))

		require.NoError(t, g.AddEdge("a", "b")) // b depends on a
		require.NoError(t, g.AddEdge("a", "b")) // edges are a set

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids(deps))

		dependents, err := g.Dependents("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, ids(dependents))
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddNode(newJob("a")))
		require.NoError(t, g.AddNode(newJob("b")))

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")

		_, err = g.Dependencies("dne")
		assert.ErrorContains(t, err, "node not found")
		_, err = g.Dependents("dne")
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestDetectCycles(t *testing.T) {
	build := func(t *testing.T, nodes []string, edges [][2]string) *Graph {
		t.Helper()
		g := New()
		for _, id := range nodes {
			require.NoError(t, g.AddNode(newJob(id)))
		}
		for _, e := range edges {
			require.NoError(t, g.AddEdge(e[0], e[1]))
		}
		return g
	}

	t.Run("empty graph has no cycles", func(t *testing.T) {
		assert.NoError(t, New().DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := build(t, []string{"a", "b", "c"}, nil)
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"c", "d"}})
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
		assert.ErrorContains(t, g.DetectCycles(), "cycle detected")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}})
		assert.ErrorContains(t, g.DetectCycles(), "cycle detected")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := build(t, []string{"a", "b", "x", "y", "z"}, [][2]string{{"a", "b"}, {"x", "y"}, {"y", "z"}, {"z", "y"}})
		assert.ErrorContains(t, g.DetectCycles(), "cycle detected")

		_, err := g.TopologicalOrder()
		assert.ErrorContains(t, err, "cycle detected")
	})
}

func TestFromJobs(t *testing.T) {
	external := newJob("external")
	a := newJob("a", external)
	b := newJob("b", a)
	c := newJob("c", a)
	d := newJob("d", c, b)

	g, err := FromJobs([]job.Job{d, c, b, a})
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
	assert.False(t, g.Has("external"), "dependencies outside the list are not nodes")

	deps, err := g.Dependencies("a")
	require.NoError(t, err)
	assert.Empty(t, deps)

	deps, err = g.Dependencies("d")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, ids(deps))

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(order))

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		_, err := FromJobs([]job.Job{newJob("x"), newJob("x")})
		assert.ErrorContains(t, err, "duplicate job id")
	})

	t.Run("cycles are rejected", func(t *testing.T) {
		x := newJob("x")
		y := newJob("y", x)
		x.AddDependency(y)
		_, err := FromJobs([]job.Job{x, y})
		assert.ErrorContains(t, err, "cycle detected")
	})
}

func TestSyncJobsRunInGraphOrder(t *testing.T) {
	var ran []string
	record := func(id string) func(context.Context) error {
		return func(context.Context) error {
			ran = append(ran, id)
			return nil
		}
	}
	first := job.NewSync("first", job.RenderView, record("first"))
	second := job.NewSync("second", job.SyncRenderViewInitialization, record("second"))
	second.AddDependency(first)

	g, err := FromJobs([]job.Job{second, first})
	require.NoError(t, err)
	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	for _, j := range order {
		require.NoError(t, j.Run(context.Background()))
	}
	assert.Equal(t, []string{"first", "second"}, ran)
}
