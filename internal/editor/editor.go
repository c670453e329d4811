// Package editor holds the add/edit form state: the project fields and an
// ordered list of layer drafts, each with a session-local id.
package editor

import (
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/stacked/pkg/types"
)

// Layer draft fields accepted by SetField.
const (
	FieldProvider = "provider"
	FieldUse      = "use"
)

// Draft is one editable layer. ID is unique within the editor only.
type Draft struct {
	ID       string
	Provider string
	Use      string
}

// Editor is the form state for one add or edit session.
type Editor struct {
	stackID     string
	projectName string
	description string
	drafts      []Draft
	seq         int
}

// New opens an add session with one empty layer draft.
func New() *Editor {
	e := &Editor{}
	e.AddDraft()
	return e
}

// ForStack opens an edit session seeded from s. Each layer becomes a new
// draft with a fresh id.
func ForStack(s types.Stack) *Editor {
	e := &Editor{
		stackID:     s.ID,
		projectName: s.ProjectName,
		description: s.Description,
	}
	for _, l := range s.Layers {
		e.drafts = append(e.drafts, Draft{ID: e.nextID(), Provider: l.Provider, Use: l.Use})
	}
	return e
}

// StackID returns the id of the stack being edited, or "" in add mode.
func (e *Editor) StackID() string { return e.stackID }

// Editing reports whether the session edits an existing stack.
func (e *Editor) Editing() bool { return e.stackID != "" }

func (e *Editor) ProjectName() string { return e.projectName }

func (e *Editor) Description() string { return e.description }

func (e *Editor) SetProjectName(v string) { e.projectName = v }

func (e *Editor) SetDescription(v string) { e.description = v }

// Drafts returns a copy of the layer drafts, bottom of the stack first.
func (e *Editor) Drafts() []Draft {
	return append([]Draft(nil), e.drafts...)
}

// Len returns the number of drafts.
func (e *Editor) Len() int { return len(e.drafts) }

// AddDraft appends an empty draft and returns its id.
func (e *Editor) AddDraft() string {
	id := e.nextID()
	e.drafts = append(e.drafts, Draft{ID: id})
	return id
}

// RemoveDraft drops the draft with the given id. Unknown ids are ignored.
func (e *Editor) RemoveDraft(id string) {
	if i := e.index(id); i >= 0 {
		e.drafts = append(e.drafts[:i], e.drafts[i+1:]...)
	}
}

// MoveUp swaps the draft with its predecessor. No-op for the first draft
// or an unknown id.
func (e *Editor) MoveUp(id string) {
	if i := e.index(id); i > 0 {
		e.drafts[i-1], e.drafts[i] = e.drafts[i], e.drafts[i-1]
	}
}

// MoveDown swaps the draft with its successor. No-op for the last draft
// or an unknown id.
func (e *Editor) MoveDown(id string) {
	if i := e.index(id); i >= 0 && i < len(e.drafts)-1 {
		e.drafts[i], e.drafts[i+1] = e.drafts[i+1], e.drafts[i]
	}
}

// SetField sets provider or use on a draft.
func (e *Editor) SetField(id, field, value string) error {
	i := e.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", types.ErrDraftNotFound, id)
	}
	switch field {
	case FieldProvider:
		e.drafts[i].Provider = value
	case FieldUse:
		e.drafts[i].Use = value
	default:
		return fmt.Errorf("%w: %q", types.ErrInvalidField, field)
	}
	return nil
}

// Draft returns the values the form would submit, untrimmed.
func (e *Editor) Draft() types.StackDraft {
	layers := make([]types.Layer, len(e.drafts))
	for i, d := range e.drafts {
		layers[i] = types.Layer{Provider: d.Provider, Use: d.Use}
	}
	return types.StackDraft{
		ProjectName: e.projectName,
		Description: e.description,
		Layers:      layers,
	}
}

// Commit validates the form and returns the trimmed draft. On failure the
// error is a *types.ValidationError carrying the message to show. The
// editor is not changed either way.
func (e *Editor) Commit() (types.StackDraft, error) {
	d := e.Draft()
	if err := d.Validate(); err != nil {
		return types.StackDraft{}, err
	}
	return d.Normalized(), nil
}

// Patch returns the committed draft as a full update patch.
func (e *Editor) Patch() (types.StackPatch, error) {
	d, err := e.Commit()
	if err != nil {
		return types.StackPatch{}, err
	}
	return types.StackPatch{
		ProjectName: &d.ProjectName,
		Description: &d.Description,
		Layers:      d.Layers,
	}, nil
}

func (e *Editor) nextID() string {
	e.seq++
	return "layer-" + strconv.Itoa(e.seq)
}

func (e *Editor) index(id string) int {
	for i, d := range e.drafts {
		if d.ID == id {
			return i
		}
	}
	return -1
}
