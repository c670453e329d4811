package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stacked/internal/jsonl"
	"github.com/mesh-intelligence/stacked/internal/memstore"
	"github.com/mesh-intelligence/stacked/internal/sqlite"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		want    any
		wantErr error
	}{
		{name: "sqlite", backend: types.BackendSQLite, want: &sqlite.Backend{}},
		{name: "jsonl", backend: types.BackendJSONL, want: &jsonl.Backend{}},
		{name: "memory", backend: types.BackendMemory, want: &memstore.Backend{}},
		{name: "empty", backend: "", wantErr: types.ErrBackendEmpty},
		{name: "unknown", backend: "redis", wantErr: types.ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBackend(tt.backend)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestOpenAttaches(t *testing.T) {
	for _, backend := range types.KnownBackends() {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(types.Config{Backend: backend, DataDir: t.TempDir()})
			require.NoError(t, err)
			defer s.Detach()

			require.NoError(t, s.Set(types.DisplayModeKey, "dark"))
			v, ok, err := s.Get(types.DisplayModeKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "dark", v)
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(types.Config{Backend: "postgres"})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}
