package stacks

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/stacked/internal/palette"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

// ImportMode selects how imported records combine with the stored list.
type ImportMode int

const (
	// ImportAppend adds records whose id is not already stored.
	ImportAppend ImportMode = iota
	// ImportReplace discards the stored list.
	ImportReplace
)

// ImportResult counts what an import did.
type ImportResult struct {
	Added   int
	Skipped int
}

// Export returns the stored list as an indented JSON array.
func (r *Repository) Export() ([]byte, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling stacks: %w", err)
	}
	return data, nil
}

// Import reads a JSON array of stack records, such as an Export or a
// payload copied out of the browser build, and stores it. Every record
// must pass the same validation as the add form. Records without an id,
// creation time get fresh ones. A palette is kept only when it is a full
// permutation of the gradient set; anything else is replaced.
// Nothing is written unless every record is valid.
func (r *Repository) Import(data []byte, mode ImportMode) (ImportResult, error) {
	var incoming []types.Stack
	if err := json.Unmarshal(data, &incoming); err != nil {
		return ImportResult{}, fmt.Errorf("%w: parsing import: %v", types.ErrCorruptData, err)
	}

	var list []types.Stack
	if mode == ImportAppend {
		stored, err := r.List()
		if err != nil {
			return ImportResult{}, err
		}
		list = stored
	}

	var res ImportResult
	for i, s := range incoming {
		draft := types.StackDraft{ProjectName: s.ProjectName, Description: s.Description, Layers: s.Layers}
		if err := draft.Validate(); err != nil {
			return ImportResult{}, fmt.Errorf("record %d: %w", i+1, err)
		}
		if s.ID != "" && indexOf(list, s.ID) >= 0 {
			res.Skipped++
			continue
		}

		d := draft.Normalized()
		s.ProjectName, s.Description, s.Layers = d.ProjectName, d.Description, d.Layers
		if s.ID == "" {
			id, err := r.uniqueID(list)
			if err != nil {
				return ImportResult{}, err
			}
			s.ID = id
		}
		if !palette.IsPermutation(s.ColorPalette) {
			s.ColorPalette = r.palette()
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = r.now()
		}
		list = append(list, s)
		res.Added++
	}

	if err := r.save(list); err != nil {
		return ImportResult{}, err
	}
	r.logger.Debug("stacks imported",
		zap.Int("added", res.Added),
		zap.Int("skipped", res.Skipped),
		zap.Bool("replace", mode == ImportReplace),
	)
	return res, nil
}
