// Package storetest holds the behaviour every types.Store backend must
// share. Backend packages call Run from their own tests.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stacked/pkg/types"
)

// Factory returns a fresh detached backend and the config to attach it with.
type Factory func(t *testing.T) (types.Store, types.Config)

// Run exercises the Store contract against the backend built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("get missing key", func(t *testing.T) {
		s := attach(t, newStore)
		v, ok, err := s.Get(types.StacksKey)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		s := attach(t, newStore)
		require.NoError(t, s.Set(types.StacksKey, `[{"id":"1"}]`))
		v, ok, err := s.Get(types.StacksKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"1"}]`, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := attach(t, newStore)
		require.NoError(t, s.Set(types.DisplayModeKey, "dark"))
		require.NoError(t, s.Set(types.DisplayModeKey, "light"))
		v, _, err := s.Get(types.DisplayModeKey)
		require.NoError(t, err)
		assert.Equal(t, "light", v)
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := attach(t, newStore)
		require.NoError(t, s.Set(types.StacksKey, "[]"))
		require.NoError(t, s.Set(types.DisplayModeKey, "dark"))
		v, _, err := s.Get(types.StacksKey)
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		s := attach(t, newStore)
		require.NoError(t, s.Set(types.StacksKey, ""))
		v, ok, err := s.Get(types.StacksKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, v)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		s := attach(t, newStore)
		assert.ErrorIs(t, s.Set("", "x"), types.ErrInvalidKey)
		_, _, err := s.Get("")
		assert.ErrorIs(t, err, types.ErrInvalidKey)
	})

	t.Run("double attach fails", func(t *testing.T) {
		s, cfg := newStore(t)
		require.NoError(t, s.Attach(cfg))
		defer s.Detach()
		assert.ErrorIs(t, s.Attach(cfg), types.ErrAlreadyAttached)
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		s, cfg := newStore(t)
		cfg.Backend = ""
		assert.ErrorIs(t, s.Attach(cfg), types.ErrBackendEmpty)
	})

	t.Run("detach is idempotent and blocks access", func(t *testing.T) {
		s, cfg := newStore(t)
		require.NoError(t, s.Attach(cfg))
		require.NoError(t, s.Detach())
		require.NoError(t, s.Detach())

		_, _, err := s.Get(types.StacksKey)
		assert.ErrorIs(t, err, types.ErrStoreDetached)
		assert.ErrorIs(t, s.Set(types.StacksKey, "[]"), types.ErrStoreDetached)
	})
}

// RunDurable checks that values survive a detach and re-attach. Only
// backends that write to disk call it.
func RunDurable(t *testing.T, newStore Factory) {
	t.Helper()

	s, cfg := newStore(t)
	require.NoError(t, s.Attach(cfg))
	require.NoError(t, s.Set(types.StacksKey, `[{"id":"a"}]`))
	require.NoError(t, s.Set(types.DisplayModeKey, "dark"))
	require.NoError(t, s.Detach())

	require.NoError(t, s.Attach(cfg))
	defer s.Detach()

	v, ok, err := s.Get(types.StacksKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, v)

	mode, _, err := s.Get(types.DisplayModeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", mode)
}

func attach(t *testing.T, newStore Factory) types.Store {
	t.Helper()
	s, cfg := newStore(t)
	require.NoError(t, s.Attach(cfg))
	t.Cleanup(func() { _ = s.Detach() })
	return s
}
