// Package memstore implements an in-memory Store. Nothing is written to
// disk; values live until the process exits.
package memstore

import (
	"sync"

	"github.com/mesh-intelligence/stacked/pkg/types"
)

// Compile-time interface check.
var _ types.Store = (*Backend)(nil)

// Backend is a map-backed Store.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	values   map[string]string
}

// NewBackend creates a new, detached in-memory backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach validates config and starts with an empty key space.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	b.values = make(map[string]string)
	b.attached = true
	return nil
}

// Detach drops all values. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	b.values = nil
	return nil
}

func (b *Backend) Get(key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return "", false, types.ErrStoreDetached
	}
	if key == "" {
		return "", false, types.ErrInvalidKey
	}
	v, ok := b.values[key]
	return v, ok, nil
}

func (b *Backend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	if key == "" {
		return types.ErrInvalidKey
	}
	b.values[key] = value
	return nil
}

// Open returns an attached in-memory backend. It is a convenience for
// tests and for ephemeral sessions.
func Open() *Backend {
	b := NewBackend()
	// Attach cannot fail for a fresh backend with a valid config.
	_ = b.Attach(types.Config{Backend: types.BackendMemory})
	return b
}
