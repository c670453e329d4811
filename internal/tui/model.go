// Package tui is the terminal gallery: stack cards, search, sort, a detail
// view, the add/edit form and the dark/light toggle.
package tui

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/stacked/internal/app"
	"github.com/mesh-intelligence/stacked/internal/editor"
	"github.com/mesh-intelligence/stacked/internal/gallery"
	"github.com/mesh-intelligence/stacked/internal/theme"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

type screen int

const (
	screenGallery screen = iota
	screenSearch
	screenDetail
	screenConfirm
	screenForm
)

// Model is the bubbletea model for the gallery.
type Model struct {
	app    *app.App
	logger *zap.Logger
	keys   keyMap
	help   help.Model
	styles styles
	mode   theme.Mode
	screen screen

	items  []gallery.DisplayItem
	cursor int
	search textinput.Model
	form   *form
	detail types.Stack

	status string
	err    error
	width  int
	height int

	copyText func(string) error
}

// Option configures a Model.
type Option func(*Model)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copyText = write }
}

// New creates the gallery model over a.
func New(a *app.App, logger *zap.Logger, opts ...Option) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search stacks..."
	search.CharLimit = 80

	m := &Model{
		app:      a,
		logger:   logger,
		keys:     newKeyMap(),
		help:     help.New(),
		search:   search,
		copyText: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}

	mode, err := a.Theme()
	if err != nil {
		m.err = err
	}
	m.applyTheme(mode)
	m.refresh()
	return m
}

// Run starts the gallery full screen and blocks until the user quits.
func Run(a *app.App, logger *zap.Logger) error {
	p := tea.NewProgram(New(a, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal gallery: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case screenSearch:
			return m, m.updateSearch(msg)
		case screenDetail:
			return m, m.updateDetail(msg)
		case screenConfirm:
			return m, m.updateConfirm(msg)
		case screenForm:
			return m, m.updateForm(msg)
		default:
			return m, m.updateGallery(msg)
		}
	}

	// Cursor blink and other input messages.
	switch m.screen {
	case screenSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	case screenForm:
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *Model) updateGallery(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.search):
		m.screen = screenSearch
		return m.search.Focus()
	case key.Matches(msg, m.keys.sort):
		order := m.app.CycleSort()
		m.refresh()
		m.setStatus("Sorted by " + string(order))
	case key.Matches(msg, m.keys.add):
		m.openForm(m.app.OpenAdd())
		return m.form.setFocus(fieldName)
	case key.Matches(msg, m.keys.open):
		if it, ok := m.selected(); ok {
			m.openDetail(it.Stack.ID)
		}
	case key.Matches(msg, m.keys.theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.copy):
		if it, ok := m.selected(); ok {
			m.copyStack(it.Stack)
		}
	case key.Matches(msg, m.keys.back):
		if m.search.Value() != "" {
			m.clearSearch()
		}
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.screen = screenGallery
		return nil
	case tea.KeyEsc:
		m.clearSearch()
		m.screen = screenGallery
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.app.SetSearch(m.search.Value())
	m.cursor = 0
	m.refresh()
	return cmd
}

func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.back):
		m.app.CloseDetail()
		m.screen = screenGallery
	case key.Matches(msg, m.keys.edit):
		ok, err := m.app.EditDetail()
		if err != nil {
			m.setError(err)
			return nil
		}
		if !ok {
			m.screen = screenGallery
			m.refresh()
			return nil
		}
		m.openForm(m.app.Editor())
		return m.form.setFocus(fieldName)
	case key.Matches(msg, m.keys.remove):
		m.screen = screenConfirm
	case key.Matches(msg, m.keys.copy):
		m.copyStack(m.detail)
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	}
	return nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.confirm):
		name := m.detail.ProjectName
		deleted, err := m.app.DeleteDetail(func(string) bool { return true })
		if err != nil {
			m.setError(err)
			m.screen = screenDetail
			return nil
		}
		m.screen = screenGallery
		m.refresh()
		if deleted {
			m.setStatus(fmt.Sprintf("Deleted %q", name))
		}
	case key.Matches(msg, m.keys.decline):
		m.screen = screenDetail
		m.setStatus("Delete cancelled")
	}
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.back):
		m.app.CloseEditor()
		m.form = nil
		m.screen = screenGallery
		m.refresh()
		return nil
	case key.Matches(msg, m.keys.submit):
		return m.submitForm()
	case key.Matches(msg, m.keys.nextField):
		return m.form.next()
	case key.Matches(msg, m.keys.prevField):
		return m.form.prev()
	case key.Matches(msg, m.keys.addLayer):
		return m.form.addLayer()
	case key.Matches(msg, m.keys.removeLayer):
		return m.form.removeLayer()
	case key.Matches(msg, m.keys.layerUp):
		return m.form.moveLayer(-1)
	case key.Matches(msg, m.keys.layerDown):
		return m.form.moveLayer(1)
	}
	m.form.err = ""
	return m.form.update(msg)
}

func (m *Model) submitForm() tea.Cmd {
	editing := m.form.editor.Editing()
	st, found, err := m.app.Submit()
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			m.form.err = verr.Message
			return nil
		}
		m.setError(err)
		return nil
	}

	m.form = nil
	m.screen = screenGallery
	m.refresh()
	if !found {
		m.setStatus("That stack no longer exists; nothing was saved")
		return nil
	}
	m.selectID(st.ID)
	if editing {
		m.setStatus(fmt.Sprintf("Updated %q", st.ProjectName))
	} else {
		m.setStatus(fmt.Sprintf("Published %q", st.ProjectName))
	}
	return nil
}

func (m *Model) openForm(e *editor.Editor) {
	m.form = newForm(e)
	m.screen = screenForm
}

func (m *Model) openDetail(id string) {
	st, found, err := m.app.ShowDetail(id)
	if err != nil {
		m.setError(err)
		return
	}
	if !found {
		m.refresh()
		return
	}
	m.detail = st
	m.screen = screenDetail
}

func (m *Model) toggleTheme() {
	mode, err := m.app.ToggleTheme()
	if err != nil {
		m.setError(err)
		return
	}
	m.applyTheme(mode)
	m.setStatus(string(mode) + " mode")
}

func (m *Model) applyTheme(mode theme.Mode) {
	m.mode = mode
	m.styles = newStyles(mode)
}

func (m *Model) copyStack(s types.Stack) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		m.setError(err)
		return
	}
	if err := m.copyText(string(data)); err != nil {
		m.setError(fmt.Errorf("clipboard: %w", err))
		return
	}
	m.setStatus(fmt.Sprintf("Copied %q to clipboard", s.ProjectName))
}

func (m *Model) clearSearch() {
	m.search.SetValue("")
	m.search.Blur()
	m.app.SetSearch("")
	m.refresh()
}

// refresh re-reads the store and re-renders the gallery.
func (m *Model) refresh() {
	res, err := m.app.Gallery()
	if err != nil {
		m.setError(err)
		m.items = nil
		return
	}
	m.items = res.Items
	m.moveCursor(0)
}

func (m *Model) moveCursor(delta int) {
	m.cursor = max(0, min(m.cursor+delta, len(m.items)-1))
}

func (m *Model) selected() (gallery.DisplayItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return gallery.DisplayItem{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) selectID(id string) {
	for i, it := range m.items {
		if it.Stack.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = nil
}

func (m *Model) setError(err error) {
	m.logger.Debug("gallery action failed", zap.Error(err))
	m.err = err
	m.status = ""
}
