package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/stacked/internal/app"
	"github.com/mesh-intelligence/stacked/internal/gallery"
)

// cardRows is a rough card height in rows, used to page the grid.
const cardRows = gallery.MaxVisibleLayers + 5

func (m *Model) View() string {
	var body string
	var bindings []key.Binding
	switch m.screen {
	case screenDetail:
		body, bindings = m.detailView(), m.keys.detailHelp()
	case screenConfirm:
		body, bindings = m.confirmView(), m.keys.confirmHelp()
	case screenForm:
		body, bindings = m.formView(), m.keys.formHelp()
	default:
		body, bindings = m.galleryView(), m.keys.galleryHelp()
	}

	footer := m.help.ShortHelpView(bindings)
	switch {
	case m.err != nil:
		footer = m.styles.errText.Render("Error: "+m.err.Error()) + "\n" + footer
	case m.status != "":
		footer = m.styles.status.Render(m.status) + "\n" + footer
	}
	return m.styles.app.Render(lipgloss.JoinVertical(lipgloss.Left, body, "", footer))
}

func (m *Model) galleryView() string {
	title := m.styles.title.Render("Stacked")
	meta := m.styles.muted.Render(fmt.Sprintf("  sort: %s · %s", m.app.Filter().Sort, m.mode))
	header := m.styles.header.Render(title + meta + "\n" + m.search.View())

	if len(m.items) == 0 {
		msg := "No stacks yet. Press a to add your first stack."
		if strings.TrimSpace(m.search.Value()) != "" {
			msg = "No stacks match your search."
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, m.styles.muted.Render(msg))
	}

	cols := 3
	if m.width > 0 {
		cols = max(1, (m.width-4)/(cardWidth+2))
	}
	var rows []string
	for start := 0; start < len(m.items); start += cols {
		end := min(start+cols, len(m.items))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, m.cardView(m.items[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	// Page so the cursor row stays on screen.
	if m.height > 0 {
		visible := max(1, (m.height-8)/cardRows)
		cursorRow := m.cursor / cols
		first := max(0, cursorRow-visible+1)
		rows = rows[first:min(len(rows), first+visible)]
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, rows...)...)
}

func (m *Model) cardView(it gallery.DisplayItem, selected bool) string {
	inner := cardWidth - 2
	lines := make([]string, 0, len(it.Visible)+3)
	for _, l := range it.Visible {
		lines = append(lines, m.styles.layerStyle(l.Style, inner).Render(truncate(l.Provider+" · "+l.Use, inner-2)))
	}
	if more := gallery.MoreLabel(it.More); more != "" {
		lines = append(lines, m.styles.more.Width(inner).Render(more))
	}
	lines = append(lines,
		m.styles.cardName.Render(truncate(it.Stack.ProjectName, inner)),
		m.styles.muted.Render(gallery.LayerCountLabel(it.Stack.LayerCount())),
	)

	style := m.styles.card
	if selected {
		style = m.styles.cardSelected
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) detailView() string {
	s := m.detail
	var b strings.Builder
	b.WriteString(m.styles.title.Render(s.ProjectName) + "\n")
	b.WriteString(m.styles.muted.Render(gallery.DescriptionText(s)) + "\n\n")
	for _, l := range gallery.Detail(s) {
		row := m.styles.label.Foreground(lipgloss.Color("#ffffff")).Render(l.Provider) + "  " + l.Use
		b.WriteString(m.styles.layerStyle(l.Style, 44).Render(row) + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render(fmt.Sprintf("%s · created %s",
		gallery.LayerCountLabel(s.LayerCount()),
		s.CreatedAt.Local().Format("Jan 2, 2006"))))
	return m.styles.panel.Render(b.String())
}

func (m *Model) confirmView() string {
	prompt := m.styles.modal.Render(app.ConfirmDeletePrompt(m.detail.ProjectName) + "\n\n" + "y: delete   n: keep")
	return lipgloss.JoinVertical(lipgloss.Left, m.detailView(), prompt)
}

func (m *Model) formView() string {
	f := m.form
	title := "Add Stack"
	if f.editor.Editing() {
		title = "Edit Stack"
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(title) + "\n\n")
	b.WriteString(m.styles.label.Render("Project Name *") + "\n" + f.name.View() + "\n")
	b.WriteString(m.styles.label.Render("Description") + "\n" + f.description.View() + "\n")
	b.WriteString(m.styles.section.Render("Layers (bottom of the stack first)") + "\n")
	if len(f.layers) == 0 {
		b.WriteString(m.styles.muted.Render("No layers. Press ctrl+n to add one.") + "\n")
	}
	for i, l := range f.layers {
		b.WriteString(m.styles.label.Render(fmt.Sprintf("Layer %d", i+1)) + "\n")
		b.WriteString("  Provider Name * " + l.provider.View() + "\n")
		b.WriteString("  Use *           " + l.use.View() + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + m.styles.errText.Render(f.err) + "\n")
	}
	return m.styles.panel.Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
