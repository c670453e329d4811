package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stacked/internal/storetest"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

func TestBackendContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) (types.Store, types.Config) {
		return NewBackend(), types.Config{Backend: types.BackendMemory}
	})
}

func TestOpenIsAttached(t *testing.T) {
	b := Open()
	require.NoError(t, b.Set(types.StacksKey, "[]"))
	v, ok, err := b.Get(types.StacksKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestDetachDropsValues(t *testing.T) {
	b := Open()
	require.NoError(t, b.Set(types.StacksKey, "[]"))
	require.NoError(t, b.Detach())
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory}))

	_, ok, err := b.Get(types.StacksKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
