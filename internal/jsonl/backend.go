package jsonl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mesh-intelligence/stacked/pkg/types"
)

// Compile-time interface check.
var _ types.Store = (*Backend)(nil)

// Backend implements types.Store on top of one JSONL file. The whole file
// is loaded on Attach and rewritten on every Set.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	path     string
	entries  map[string]entryJSON
}

// NewBackend creates a new JSONL backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach creates DataDir and the data file if needed, then loads every
// entry. A malformed line fails with types.ErrCorruptData.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dataDir, FileName)
	if err := ensureFile(path); err != nil {
		return err
	}

	records, err := readJSONL(path)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrCorruptData, err)
	}

	entries := make(map[string]entryJSON, len(records))
	for i, rec := range records {
		var e entryJSON
		if err := json.Unmarshal(rec, &e); err != nil {
			return fmt.Errorf("%w: record %d: %v", types.ErrCorruptData, i+1, err)
		}
		if e.Key == "" {
			return fmt.Errorf("%w: record %d has no key", types.ErrCorruptData, i+1)
		}
		// Later lines win, so a hand-appended line overrides an older one.
		entries[e.Key] = e
	}

	b.path = path
	b.entries = entries
	b.attached = true
	return nil
}

// Detach releases the in-memory copy. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	b.entries = nil
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
	e, ok := b.entries[key]
	return e.Value, ok, nil
}

// Set stores value under key and rewrites the data file. If the write
// fails the previous value is restored.
func (b *Backend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	if key == "" {
		return types.ErrInvalidKey
	}

	prev, had := b.entries[key]
	b.entries[key] = entryJSON{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := b.persistLocked(); err != nil {
		if had {
			b.entries[key] = prev
		} else {
			delete(b.entries, key)
		}
		return fmt.Errorf("persisting %s: %w", FileName, err)
	}
	return nil
}

// persistLocked writes all entries sorted by key. The caller must hold mu.
func (b *Backend) persistLocked() error {
	keys := make([]string, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]json.RawMessage, 0, len(keys))
	for _, k := range keys {
		data, err := json.Marshal(b.entries[k])
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", k, err)
		}
		records = append(records, data)
	}
	return writeJSONL(b.path, records)
}
