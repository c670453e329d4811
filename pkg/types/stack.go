package types

import (
	"errors"
	"strings"
	"time"
)

// Layer is one provider/use pair within a stack. Layers are ordered bottom
// to top.
type Layer struct {
	Provider string `json:"provider"`
	Use      string `json:"use"`
}

// Stack is a named, ordered collection of layers for one project.
type Stack struct {
	ID           string     `json:"id"`
	ProjectName  string     `json:"projectName"`
	Description  string     `json:"description"`
	Layers       []Layer    `json:"layers"`
	ColorPalette []string   `json:"colorPalette"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"` // Set on the first edit.
}

// StackDraft carries the user-supplied fields of a new stack. The
// repository stamps in the id, timestamps and palette.
type StackDraft struct {
	ProjectName string  `json:"projectName"`
	Description string  `json:"description"`
	Layers      []Layer `json:"layers"`
}

// StackPatch carries the fields of an update. A nil pointer or nil slice
// means the field was not supplied and the stored value is kept. The id,
// palette and creation time are never patched.
type StackPatch struct {
	ProjectName *string
	Description *string
	Layers      []Layer
}

// Validation messages reported to the user at submit time.
const (
	MsgProjectNameRequired = "Project name is required"
	MsgLayersRequired      = "Please add at least one layer"
	MsgLayerFieldsRequired = "All layers must have both provider name and use filled in"
)

// Entity errors.
var (
	ErrNotFound      = errors.New("stack not found")
	ErrInvalidID     = errors.New("invalid stack ID")
	ErrValidation    = errors.New("validation failed")
	ErrCorruptData   = errors.New("corrupt stored data")
	ErrInvalidField  = errors.New("invalid layer field")
	ErrDraftNotFound = errors.New("layer draft not found")
)

// ValidationError reports a user-facing validation failure. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validate checks the draft the way the add/edit form does: a non-blank
// project name, at least one layer, and non-blank provider and use on every
// layer. The first violation is returned.
func (d StackDraft) Validate() error {
	if strings.TrimSpace(d.ProjectName) == "" {
		return &ValidationError{Field: "projectName", Message: MsgProjectNameRequired}
	}
	return validateLayers(d.Layers)
}

// Normalized returns a copy of the draft with every string trimmed.
func (d StackDraft) Normalized() StackDraft {
	return StackDraft{
		ProjectName: strings.TrimSpace(d.ProjectName),
		Description: strings.TrimSpace(d.Description),
		Layers:      trimLayers(d.Layers),
	}
}

// Apply shallow-merges the supplied patch fields into the stack and sets
// UpdatedAt to now. The merged stack is validated before anything changes;
// on error the stack is left untouched.
func (s *Stack) Apply(p StackPatch, now time.Time) error {
	name := s.ProjectName
	if p.ProjectName != nil {
		name = strings.TrimSpace(*p.ProjectName)
	}
	if name == "" {
		return &ValidationError{Field: "projectName", Message: MsgProjectNameRequired}
	}
	layers := s.Layers
	if p.Layers != nil {
		if err := validateLayers(p.Layers); err != nil {
			return err
		}
		layers = trimLayers(p.Layers)
	}

	s.ProjectName = name
	if p.Description != nil {
		s.Description = strings.TrimSpace(*p.Description)
	}
	s.Layers = layers
	s.UpdatedAt = &now
	return nil
}

// Clone returns a deep copy of the stack.
func (s Stack) Clone() Stack {
	c := s
	c.Layers = append([]Layer(nil), s.Layers...)
	c.ColorPalette = append([]string(nil), s.ColorPalette...)
	if s.UpdatedAt != nil {
		t := *s.UpdatedAt
		c.UpdatedAt = &t
	}
	return c
}

// LayerCount returns the number of layers in the stack.
func (s Stack) LayerCount() int { return len(s.Layers) }

func validateLayers(layers []Layer) error {
	if len(layers) == 0 {
		return &ValidationError{Field: "layers", Message: MsgLayersRequired}
	}
	for _, l := range layers {
		if strings.TrimSpace(l.Provider) == "" || strings.TrimSpace(l.Use) == "" {
			return &ValidationError{Field: "layers", Message: MsgLayerFieldsRequired}
		}
	}
	return nil
}

func trimLayers(layers []Layer) []Layer {
	out := make([]Layer, len(layers))
	for i, l := range layers {
		out[i] = Layer{Provider: strings.TrimSpace(l.Provider), Use: strings.TrimSpace(l.Use)}
	}
	return out
}
