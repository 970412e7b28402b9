package renderer_test

import (
	"context"
	"testing"

	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/specialistvlad/framegridgo/internal/renderer"
	"github.com/specialistvlad/framegridgo/internal/scene"
	"github.com/specialistvlad/framegridgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, s *testutil.SimpleScene) *renderer.Renderer {
	t.Helper()
	return renderer.New(s.Managers, s.FrameGraph, renderer.Config{Workers: 2, API: testutil.API})
}

func TestNewDefaults(t *testing.T) {
	s := testutil.NewSimpleScene()

	r := renderer.New(s.Managers, s.FrameGraph, renderer.Config{})
	assert.Equal(t, 1, r.Workers())
	assert.Equal(t, 1, r.OptimalJobCount())
	assert.Equal(t, renderer.DefaultAPI, r.API())
	assert.Equal(t, renderer.AllDirty, r.Dirty(), "first frame rebuilds everything")
	assert.Same(t, s.Managers, r.NodeManagers())
	assert.NotNil(t, r.Cache())

	r = renderer.New(s.Managers, s.FrameGraph, renderer.Config{Workers: 4, JobCount: 3})
	assert.Equal(t, 4, r.Workers())
	assert.Equal(t, 3, r.OptimalJobCount())
}

func TestFixedJobs(t *testing.T) {
	s := testutil.NewSimpleScene()
	r := newRenderer(t, s)

	fixed := r.FixedJobs()
	require.Len(t, fixed, 10)
	seen := map[job.Type]bool{}
	for _, j := range fixed {
		seen[j.Type()] = true
	}
	assert.Len(t, seen, 10)

	assert.Empty(t, r.UpdateWorldTransformJob().Dependencies())
	assert.Empty(t, r.UpdateTreeEnabledJob().Dependencies())
	assert.Equal(t, []job.Job{r.UpdateWorldTransformJob()}, r.UpdateSkinningPaletteJob().Dependencies())
	assert.Equal(t, []job.Job{r.UpdateWorldTransformJob()}, r.UpdateShaderDataTransformJob().Dependencies())
	assert.ElementsMatch(t,
		[]job.Job{r.UpdateWorldTransformJob(), r.UpdateTreeEnabledJob()},
		r.ExpandBoundingVolumeJob().Dependencies())
	for _, j := range []job.Job{
		r.UpdateEntityLayersJob(),
		r.IntrospectShadersJob(),
		r.FilterCompatibleTechniqueJob(),
		r.BufferGathererJob(),
		r.TextureGathererJob(),
	} {
		assert.Empty(t, j.Dependencies(), j.ID())
	}
}

func TestFrame(t *testing.T) {
	s := testutil.NewSimpleScene()
	r := newRenderer(t, s)

	frame, err := r.Frame(context.Background())
	require.NoError(t, err)
	require.Len(t, frame.Views, 2)

	// Ten fixed jobs plus, per view, 8+N base jobs, four flag pairs and
	// N+1 material jobs with N = 2.
	assert.Equal(t, 10+2*21, frame.Stats.Jobs)
	assert.Equal(t, uint64(1), frame.Stats.Frame)
	assert.Equal(t, 2, frame.Stats.Views)
	assert.Equal(t, 2, frame.Stats.Commands)
	assert.Equal(t, 2, frame.Stats.RebuiltLayerCaches)
	assert.Equal(t, 2, frame.Stats.CompatibleTechniques)
	assert.Equal(t, 1, frame.Stats.IntrospectedShaders)
	assert.Equal(t, renderer.DirtyFlag(0), r.Dirty())
	assert.Equal(t, 2, r.Cache().Len())

	forward := frame.Views[0]
	assert.Equal(t, 0, forward.Index())
	require.Len(t, forward.Commands, 1)
	cmd := forward.Commands[0]
	assert.Same(t, s.Cube, cmd.Entity)
	assert.Equal(t, "opaque", cmd.Pass.Name)
	assert.InDelta(t, 10, cmd.Depth, 1e-4)
	assert.Equal(t, scene.Parameters{"diffuse": "red", "ambient": 0.1}, cmd.Parameters)
	assert.Equal(t, 36, cmd.VertexCount)
	assert.Empty(t, forward.Lights, "neither light is on the forward view's layer")
	assert.Same(t, s.EnvLight.EnvironmentLight, forward.EnvironmentLight)

	compute := frame.Views[1]
	assert.Equal(t, 1, compute.Index())
	require.Len(t, compute.Commands, 1)
	assert.True(t, compute.Commands[0].IsCompute)
	assert.Same(t, s.Compute, compute.Commands[0].Entity)
	assert.Equal(t, "gbuffer", compute.Commands[0].Pass.Name)
	assert.Equal(t, [3]int{8, 8, 1}, compute.Commands[0].Workgroups)
	assert.Equal(t, []*scene.Light{s.PointLight.Light, s.SpotLight.Light}, compute.Lights,
		"a view without layer filters sees every light")
}

func TestFrameLightsFollowLayerFilter(t *testing.T) {
	s := testutil.NewSimpleScene()
	s.PointLight.Layers = []scene.NodeID{s.Layer.ID}
	r := newRenderer(t, s)

	frame, err := r.Frame(context.Background())
	require.NoError(t, err)
	require.Len(t, frame.Views, 2)
	assert.Equal(t, []*scene.Light{s.PointLight.Light}, frame.Views[0].Lights)
	assert.Len(t, frame.Views[1].Lights, 2)

	// The light cache is reused, the layer filter still applies.
	s.PointLight.Layers = nil
	r.MarkDirty(renderer.LayersDirty)
	frame, err = r.Frame(context.Background())
	require.NoError(t, err)
	assert.Empty(t, frame.Views[0].Lights)
}

func TestFrameReusesCaches(t *testing.T) {
	s := testutil.NewSimpleScene()
	r := newRenderer(t, s)
	_, err := r.Frame(context.Background())
	require.NoError(t, err)

	frame, err := r.Frame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10+2*10, frame.Stats.Jobs, "nothing dirty: base jobs only")
	assert.Zero(t, frame.Stats.RebuiltLayerCaches)
	assert.Zero(t, frame.Stats.IntrospectedShaders)
	assert.Equal(t, 2, frame.Stats.Commands, "cached results still produce commands")
	assert.Len(t, frame.Views[0].Lights, 2)

	r.MarkDirty(renderer.LightsDirty)
	frame, err = r.Frame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10+2*12, frame.Stats.Jobs)
}

func TestFrameEntityEnabledChange(t *testing.T) {
	s := testutil.NewSimpleScene()
	r := newRenderer(t, s)
	_, err := r.Frame(context.Background())
	require.NoError(t, err)

	s.Cube.Enabled = false
	r.MarkDirty(renderer.EntityEnabledDirty)
	frame, err := r.Frame(context.Background())
	require.NoError(t, err)
	// Layer, light, renderable and computable caches rebuild; materials don't.
	assert.Equal(t, 10+2*18, frame.Stats.Jobs)
	assert.Empty(t, frame.Views[0].Commands)
	assert.Len(t, frame.Views[1].Commands, 1)
}

func TestFrameLeafChanges(t *testing.T) {
	s := testutil.NewSimpleScene()
	r := newRenderer(t, s)
	_, err := r.Frame(context.Background())
	require.NoError(t, err)

	extra := framegraph.New(framegraph.NoDraw, "noDraw", s.FrameGraph)
	frame, err := r.Frame(context.Background())
	require.NoError(t, err)
	require.Len(t, frame.Views, 3)
	assert.Equal(t, 10+2*10+21, frame.Stats.Jobs, "only the new leaf builds its caches")
	assert.True(t, frame.Views[2].NoDraw)
	assert.Empty(t, frame.Views[2].Commands)
	assert.Equal(t, 3, r.Cache().Len())

	extra.Enabled = false
	frame, err = r.Frame(context.Background())
	require.NoError(t, err)
	assert.Len(t, frame.Views, 2)
	assert.Equal(t, 2, r.Cache().Len())
	assert.False(t, r.Cache().Has(extra.ID()))
}

func TestFrameFailureKeepsDirtyState(t *testing.T) {
	s := testutil.NewSimpleScene()
	r := newRenderer(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Frame(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, renderer.AllDirty, r.Dirty())
	assert.Zero(t, r.Cache().Len(), "leaves first seen by a failed frame are forgotten")

	frame, err := r.Frame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10+2*21, frame.Stats.Jobs)
	assert.Equal(t, uint64(2), frame.Stats.Frame)
}

func TestFrameGathersDirtyResources(t *testing.T) {
	s := testutil.NewSimpleScene()
	buf := &scene.Buffer{ID: scene.NewID(), Name: "vertices", Dirty: true}
	clean := &scene.Buffer{ID: scene.NewID(), Name: "indices"}
	tex := &scene.Texture{ID: scene.NewID(), Name: "albedo", Dirty: true}
	s.Managers.RegisterBuffer(buf)
	s.Managers.RegisterBuffer(clean)
	s.Managers.RegisterTexture(tex)
	r := newRenderer(t, s)

	frame, err := r.Frame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, frame.Stats.BuffersUploaded)
	assert.Equal(t, 1, frame.Stats.TexturesUploaded)
	assert.False(t, buf.Dirty)
	assert.False(t, tex.Dirty)

	frame, err = r.Frame(context.Background())
	require.NoError(t, err)
	assert.Zero(t, frame.Stats.BuffersUploaded)
}
