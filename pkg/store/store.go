// Package store provides the public factory for stacked storage backends.
// It exposes backend construction while keeping implementations internal.
package store

import (
	"fmt"

	"github.com/mesh-intelligence/stacked/internal/jsonl"
	"github.com/mesh-intelligence/stacked/internal/memstore"
	"github.com/mesh-intelligence/stacked/internal/sqlite"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

// NewBackend creates a detached backend for the named backend type.
// Returns types.ErrBackendUnknown for an unrecognized name.
func NewBackend(name string) (types.Store, error) {
	switch name {
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendJSONL:
		return jsonl.NewBackend(), nil
	case types.BackendMemory:
		return memstore.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, name)
	}
}

// Open creates the backend named by config and attaches it.
// The caller must Detach the returned store.
//
// Example:
//
//	s, err := store.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".stacked-db",
//	})
//	defer s.Detach()
func Open(config types.Config) (types.Store, error) {
	s, err := NewBackend(config.Backend)
	if err != nil {
		return nil, err
	}
	if err := s.Attach(config); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", config.Backend, err)
	}
	return s, nil
}
