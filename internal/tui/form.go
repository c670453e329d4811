package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/stacked/internal/editor"
)

const (
	fieldName = iota
	fieldDescription
	firstLayerField
)

// layerInputs mirrors one editor draft.
type layerInputs struct {
	id       string
	provider textinput.Model
	use      textinput.Model
}

// form is the add/edit screen. The editor holds the values; the inputs
// only mirror them. Field indexes run name, description, then provider
// and use for each layer in order.
type form struct {
	editor      *editor.Editor
	name        textinput.Model
	description textinput.Model
	layers      []layerInputs
	focus       int
	err         string
}

func newForm(e *editor.Editor) *form {
	f := &form{
		editor:      e,
		name:        newInput("My awesome project", e.ProjectName()),
		description: newInput("What is this project about?", e.Description()),
	}
	f.rebuild()
	return f
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

// rebuild recreates the layer inputs from the editor's drafts.
func (f *form) rebuild() {
	drafts := f.editor.Drafts()
	f.layers = make([]layerInputs, len(drafts))
	for i, d := range drafts {
		f.layers[i] = layerInputs{
			id:       d.ID,
			provider: newInput("e.g., Vercel, Supabase, OpenAI", d.Provider),
			use:      newInput("e.g., Frontend, Database, Auth, AI", d.Use),
		}
	}
}

func (f *form) fieldCount() int { return firstLayerField + 2*len(f.layers) }

// layerAt returns the layer index and whether the field is the use field.
// ok is false for the name and description fields.
func (f *form) layerAt(field int) (idx int, isUse bool, ok bool) {
	if field < firstLayerField {
		return 0, false, false
	}
	return (field - firstLayerField) / 2, (field-firstLayerField)%2 == 1, true
}

func (f *form) input(field int) *textinput.Model {
	switch field {
	case fieldName:
		return &f.name
	case fieldDescription:
		return &f.description
	}
	idx, isUse, _ := f.layerAt(field)
	if isUse {
		return &f.layers[idx].use
	}
	return &f.layers[idx].provider
}

// setFocus focuses field, clamped to the valid range, and blurs the rest.
func (f *form) setFocus(field int) tea.Cmd {
	f.focus = max(0, min(field, f.fieldCount()-1))
	f.name.Blur()
	f.description.Blur()
	for i := range f.layers {
		f.layers[i].provider.Blur()
		f.layers[i].use.Blur()
	}
	return f.input(f.focus).Focus()
}

func (f *form) next() tea.Cmd { return f.setFocus((f.focus + 1) % f.fieldCount()) }

func (f *form) prev() tea.Cmd {
	n := f.fieldCount()
	return f.setFocus((f.focus - 1 + n) % n)
}

// update feeds msg to the focused input and copies its value into the
// editor.
func (f *form) update(msg tea.Msg) tea.Cmd {
	in := f.input(f.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)

	switch f.focus {
	case fieldName:
		f.editor.SetProjectName(in.Value())
	case fieldDescription:
		f.editor.SetDescription(in.Value())
	default:
		idx, isUse, _ := f.layerAt(f.focus)
		field := editor.FieldProvider
		if isUse {
			field = editor.FieldUse
		}
		// The draft id comes from the editor itself, so SetField cannot fail.
		_ = f.editor.SetField(f.layers[idx].id, field, in.Value())
	}
	return cmd
}

// addLayer appends a draft and focuses its provider field.
func (f *form) addLayer() tea.Cmd {
	f.editor.AddDraft()
	f.rebuild()
	return f.setFocus(firstLayerField + 2*(len(f.layers)-1))
}

// removeLayer drops the focused layer. No-op on the name and description.
func (f *form) removeLayer() tea.Cmd {
	idx, _, ok := f.layerAt(f.focus)
	if !ok {
		return nil
	}
	f.editor.RemoveDraft(f.layers[idx].id)
	f.rebuild()
	return f.setFocus(f.focus)
}

// moveLayer swaps the focused layer with the one before it (delta < 0) or
// after it, keeping focus on the moved layer.
func (f *form) moveLayer(delta int) tea.Cmd {
	idx, isUse, ok := f.layerAt(f.focus)
	if !ok {
		return nil
	}
	id := f.layers[idx].id
	if delta < 0 {
		f.editor.MoveUp(id)
	} else {
		f.editor.MoveDown(id)
	}
	f.rebuild()
	for i, l := range f.layers {
		if l.id == id {
			field := firstLayerField + 2*i
			if isUse {
				field++
			}
			return f.setFocus(field)
		}
	}
	return nil
}
