// Package stacks implements CRUD over the stack list held in a Store.
// Every mutation reads the full list, changes it in memory and writes the
// full list back under types.StacksKey.
package stacks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/stacked/internal/palette"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

// Repository reads and writes stacks through a types.Store.
type Repository struct {
	store   types.Store
	logger  *zap.Logger
	now     func() time.Time
	newID   func() (string, error)
	palette func() []string
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used for mutation events.
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator replaces the UUID v7 generator.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(r *Repository) { r.newID = gen }
}

// WithPalette replaces palette.Generate.
func WithPalette(gen func() []string) Option {
	return func(r *Repository) { r.palette = gen }
}

// New creates a Repository over an attached store.
func New(store types.Store, opts ...Option) *Repository {
	r := &Repository{
		store:   store,
		logger:  zap.NewNop(),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   newUUID,
		palette: palette.Generate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newUUID generates a UUID v7, which sorts by creation time.
func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}

// List returns every stored stack in stored order. An absent or empty
// payload yields an empty slice. A payload that does not parse returns
// ErrCorruptData; nothing is discarded.
func (r *Repository) List() ([]types.Stack, error) {
	raw, ok, err := r.store.Get(types.StacksKey)
	if err != nil {
		return nil, fmt.Errorf("reading stacks: %w", err)
	}
	if !ok || len(bytes.TrimSpace([]byte(raw))) == 0 {
		return []types.Stack{}, nil
	}

	var list []types.Stack
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", types.ErrCorruptData, types.StacksKey, err)
	}
	if list == nil {
		list = []types.Stack{}
	}
	return list, nil
}

// Get returns the stack with the given id. found is false when no stack
// has that id.
func (r *Repository) Get(id string) (types.Stack, bool, error) {
	list, err := r.List()
	if err != nil {
		return types.Stack{}, false, err
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], true, nil
	}
	return types.Stack{}, false, nil
}

// Add validates the draft, stamps in a fresh id, creation time and palette,
// appends it and persists the list. The stored record is returned.
func (r *Repository) Add(draft types.StackDraft) (types.Stack, error) {
	if err := draft.Validate(); err != nil {
		return types.Stack{}, err
	}
	d := draft.Normalized()

	list, err := r.List()
	if err != nil {
		return types.Stack{}, err
	}

	id, err := r.uniqueID(list)
	if err != nil {
		return types.Stack{}, err
	}

	s := types.Stack{
		ID:           id,
		ProjectName:  d.ProjectName,
		Description:  d.Description,
		Layers:       d.Layers,
		ColorPalette: r.palette(),
		CreatedAt:    r.now(),
	}
	list = append(list, s)
	if err := r.save(list); err != nil {
		return types.Stack{}, err
	}

	r.logger.Debug("stack added",
		zap.String("stack_id", s.ID),
		zap.Int("layers", len(s.Layers)),
	)
	return s.Clone(), nil
}

// Update merges the supplied patch fields into the stack with the given id,
// refreshes UpdatedAt and persists the list. found is false, with no error
// and no write, when the id does not exist.
func (r *Repository) Update(id string, patch types.StackPatch) (types.Stack, bool, error) {
	list, err := r.List()
	if err != nil {
		return types.Stack{}, false, err
	}

	i := indexOf(list, id)
	if i < 0 {
		r.logger.Debug("update skipped, stack not found", zap.String("stack_id", id))
		return types.Stack{}, false, nil
	}

	if err := list[i].Apply(patch, r.now()); err != nil {
		return types.Stack{}, true, err
	}
	if err := r.save(list); err != nil {
		return types.Stack{}, true, err
	}

	r.logger.Debug("stack updated", zap.String("stack_id", id))
	return list[i].Clone(), true, nil
}

// Delete removes the stack with the given id. Deleting an id that does not
// exist is a silent no-op and leaves the stored payload untouched.
func (r *Repository) Delete(id string) error {
	list, err := r.List()
	if err != nil {
		return err
	}

	kept := list[:0:0]
	for _, s := range list {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(list) {
		r.logger.Debug("delete skipped, stack not found", zap.String("stack_id", id))
		return nil
	}

	if err := r.save(kept); err != nil {
		return err
	}
	r.logger.Debug("stack deleted", zap.String("stack_id", id))
	return nil
}

// save serializes the whole list and writes it in one Set.
func (r *Repository) save(list []types.Stack) error {
	if list == nil {
		list = []types.Stack{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshaling stacks: %w", err)
	}
	if err := r.store.Set(types.StacksKey, string(data)); err != nil {
		return fmt.Errorf("writing stacks: %w", err)
	}
	return nil
}

// uniqueID draws ids until one is not already in use.
func (r *Repository) uniqueID(list []types.Stack) (string, error) {
	for attempt := 0; attempt < 8; attempt++ {
		id, err := r.newID()
		if err != nil {
			return "", err
		}
		if id != "" && indexOf(list, id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: could not allocate a unique id", types.ErrInvalidID)
}

func indexOf(list []types.Stack, id string) int {
	for i, s := range list {
		if s.ID == id {
			return i
		}
	}
	return -1
}
