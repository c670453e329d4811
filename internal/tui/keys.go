package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up, down    key.Binding
	search      key.Binding
	sort        key.Binding
	add         key.Binding
	open        key.Binding
	edit        key.Binding
	remove      key.Binding
	confirm     key.Binding
	decline     key.Binding
	theme       key.Binding
	copy        key.Binding
	back        key.Binding
	quit        key.Binding
	nextField   key.Binding
	prevField   key.Binding
	addLayer    key.Binding
	removeLayer key.Binding
	layerUp     key.Binding
	layerDown   key.Binding
	submit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add stack"),
		),
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		decline: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
		theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "dark/light"),
		),
		copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy JSON"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		nextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		prevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		addLayer: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "add layer"),
		),
		removeLayer: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "remove layer"),
		),
		layerUp: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("ctrl+↑", "move layer up"),
		),
		layerDown: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("ctrl+↓", "move layer down"),
		),
		submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
	}
}

func (k keyMap) galleryHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.open, k.search, k.sort, k.add, k.theme, k.copy, k.quit}
}

func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{k.edit, k.remove, k.copy, k.back}
}

func (k keyMap) confirmHelp() []key.Binding {
	return []key.Binding{k.confirm, k.decline}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.nextField, k.addLayer, k.removeLayer, k.layerUp, k.layerDown, k.submit, k.back}
}
