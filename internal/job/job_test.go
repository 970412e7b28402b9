package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDependency(t *testing.T) {
	a := NewSync("a", SyncRenderViewInitialization, nil)
	b := NewSync("b", SyncFrustumCulling, nil)

	b.AddDependency(a)
	b.AddDependency(a) // duplicates are ignored
	b.AddDependency(nil)

	var typedNil *Sync
	b.AddDependency(typedNil)

	require.Len(t, b.Dependencies(), 1)
	assert.Same(t, a, b.Dependencies()[0])
	assert.True(t, Contains(b.Dependencies(), a))
	assert.False(t, Contains(a.Dependencies(), b))

	b.ClearDependencies()
	assert.Empty(t, b.Dependencies())
}

func TestSyncRun(t *testing.T) {
	t.Run("nil function is a no-op", func(t *testing.T) {
		s := NewSync("barrier", SyncMaterialGatherer, nil)
		assert.NoError(t, s.Run(context.Background()))
	})

	t.Run("function is invoked", func(t *testing.T) {
		called := false
		s := NewSync("barrier", SyncMaterialGatherer, func(context.Context) error {
			called = true
			return nil
		})
		require.NoError(t, s.Run(context.Background()))
		assert.True(t, called)
	})

	t.Run("function error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		f := NewFunc("f", BufferGathering, func(context.Context) error { return boom })
		assert.ErrorIs(t, f.Run(context.Background()), boom)
	})
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "frustum_culling", FrustumCulling.String())
	assert.Equal(t, "sync_render_view_command_builders", SyncRenderViewCommandBuilders.String())
	assert.Equal(t, "unknown", Type(-1).String())
}
