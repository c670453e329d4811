// Package app owns the session state that sits between a surface and the
// repository: the gallery filter, the open editor and the detail selection.
package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/stacked/internal/editor"
	"github.com/mesh-intelligence/stacked/internal/gallery"
	"github.com/mesh-intelligence/stacked/internal/stacks"
	"github.com/mesh-intelligence/stacked/internal/theme"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

// ErrNoEditor is returned by Submit when no editor is open.
var ErrNoEditor = errors.New("no editor open")

// App is the state of one interactive session. It is not safe for
// concurrent use; surfaces drive it from a single event loop.
type App struct {
	store  types.Store
	repo   *stacks.Repository
	logger *zap.Logger

	filter   gallery.Filter
	editor   *editor.Editor
	detailID string
}

// New creates an App over an attached store.
func New(store types.Store, logger *zap.Logger, opts ...stacks.Option) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]stacks.Option{stacks.WithLogger(logger)}, opts...)
	return &App{
		store:  store,
		repo:   stacks.New(store, opts...),
		logger: logger,
		filter: gallery.Filter{Sort: gallery.SortNewest},
	}
}

// Repository returns the repository the App writes through.
func (a *App) Repository() *stacks.Repository { return a.repo }

// Gallery reads the stored list and renders it with the current filter.
func (a *App) Gallery() (gallery.Result, error) {
	list, err := a.repo.List()
	if err != nil {
		return gallery.Result{}, err
	}
	return gallery.Render(list, a.filter), nil
}

func (a *App) Filter() gallery.Filter { return a.filter }

func (a *App) SetSearch(term string) { a.filter.Search = term }

func (a *App) SetSort(order gallery.SortOrder) { a.filter.Sort = gallery.ParseSort(string(order)) }

// CycleSort advances to the next sort order and returns it.
func (a *App) CycleSort() gallery.SortOrder {
	a.filter.Sort = gallery.ParseSort(string(a.filter.Sort)).Next()
	return a.filter.Sort
}

// Editor returns the open editor, or nil.
func (a *App) Editor() *editor.Editor { return a.editor }

// OpenAdd opens an add session, replacing any open editor.
func (a *App) OpenAdd() *editor.Editor {
	a.editor = editor.New()
	return a.editor
}

// OpenEdit opens an edit session for the stack with the given id. found is
// false and no editor opens when the id does not exist.
func (a *App) OpenEdit(id string) (found bool, err error) {
	s, found, err := a.repo.Get(id)
	if err != nil || !found {
		return found, err
	}
	a.editor = editor.ForStack(s)
	return true, nil
}

// CloseEditor discards the open editor.
func (a *App) CloseEditor() { a.editor = nil }

// Submit commits the open editor. A validation error leaves the editor open
// with its state intact. On success the editor closes and the stored record
// is returned. found is false, with nothing written, when the stack being
// edited no longer exists; the editor closes in that case too.
func (a *App) Submit() (s types.Stack, found bool, err error) {
	if a.editor == nil {
		return types.Stack{}, false, ErrNoEditor
	}

	if !a.editor.Editing() {
		d, err := a.editor.Commit()
		if err != nil {
			return types.Stack{}, false, err
		}
		s, err := a.repo.Add(d)
		if err != nil {
			return types.Stack{}, false, err
		}
		a.editor = nil
		return s, true, nil
	}

	p, err := a.editor.Patch()
	if err != nil {
		return types.Stack{}, false, err
	}
	s, found, err = a.repo.Update(a.editor.StackID(), p)
	if err != nil {
		return types.Stack{}, found, err
	}
	if !found {
		a.logger.Info("edited stack no longer exists", zap.String("stack_id", a.editor.StackID()))
	}
	a.editor = nil
	return s, found, nil
}

// ShowDetail selects a stack for the detail view.
func (a *App) ShowDetail(id string) (types.Stack, bool, error) {
	s, found, err := a.repo.Get(id)
	if err != nil || !found {
		return types.Stack{}, found, err
	}
	a.detailID = id
	return s, true, nil
}

// Detail returns the stack in the detail view. ok is false when no detail
// is open or its stack no longer exists.
func (a *App) Detail() (types.Stack, bool, error) {
	if a.detailID == "" {
		return types.Stack{}, false, nil
	}
	return a.repo.Get(a.detailID)
}

func (a *App) CloseDetail() { a.detailID = "" }

// EditDetail closes the detail view and opens an edit session for its
// stack.
func (a *App) EditDetail() (bool, error) {
	if a.detailID == "" {
		return false, nil
	}
	id := a.detailID
	a.detailID = ""
	return a.OpenEdit(id)
}

// DeleteDetail asks confirm with the project name and deletes the detail
// stack only if it returns true, then closes the detail view. Declining
// changes nothing.
func (a *App) DeleteDetail(confirm func(projectName string) bool) (deleted bool, err error) {
	s, ok, err := a.Detail()
	if err != nil || !ok {
		return false, err
	}
	if !confirm(s.ProjectName) {
		return false, nil
	}
	if err := a.repo.Delete(s.ID); err != nil {
		return false, err
	}
	a.detailID = ""
	return true, nil
}

// Theme returns the stored display mode.
func (a *App) Theme() (theme.Mode, error) { return theme.Load(a.store) }

// ToggleTheme flips and stores the display mode.
func (a *App) ToggleTheme() (theme.Mode, error) { return theme.Toggle(a.store) }

// SetTheme stores the display mode.
func (a *App) SetTheme(m theme.Mode) error { return theme.Save(a.store, m) }

// ConfirmDeletePrompt is the question shown before a delete.
func ConfirmDeletePrompt(projectName string) string {
	return fmt.Sprintf("Are you sure you want to delete \"%s\"?", projectName)
}
