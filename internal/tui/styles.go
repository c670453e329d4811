package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/stacked/internal/palette"
	"github.com/mesh-intelligence/stacked/internal/theme"
)

const cardWidth = 30

type styles struct {
	app, header, title, muted lipgloss.Style
	status, errText           lipgloss.Style
	card, cardSelected        lipgloss.Style
	more, cardName            lipgloss.Style
	label, section            lipgloss.Style
	panel, modal              lipgloss.Style
	accent                    lipgloss.Color
}

func newStyles(mode theme.Mode) styles {
	fg := lipgloss.Color("#1f2937")
	muted := lipgloss.Color("#6b7280")
	accent := lipgloss.Color("#7c3aed")
	border := lipgloss.Color("#d1d5db")
	errColor := lipgloss.Color("#dc2626")
	if mode.IsDark() {
		fg = lipgloss.Color("#f3f4f6")
		muted = lipgloss.Color("#9ca3af")
		accent = lipgloss.Color("#a78bfa")
		border = lipgloss.Color("#4b5563")
		errColor = lipgloss.Color("#f87171")
	}

	base := lipgloss.NewStyle().Foreground(fg)
	card := base.Border(lipgloss.RoundedBorder()).BorderForeground(border).Width(cardWidth)

	return styles{
		app:          base.Padding(1, 2),
		header:       base.MarginBottom(1),
		title:        base.Bold(true).Foreground(accent),
		muted:        base.Foreground(muted),
		status:       base.Foreground(accent),
		errText:      base.Foreground(errColor).Bold(true),
		card:         card,
		cardSelected: card.BorderForeground(accent),
		more:         base.Foreground(muted).Width(cardWidth).Align(lipgloss.Center),
		cardName:     base.Bold(true),
		label:        base.Bold(true),
		section:      base.Bold(true).Foreground(accent).MarginTop(1),
		panel:        base.Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		modal:        base.Border(lipgloss.DoubleBorder()).BorderForeground(errColor).Padding(1, 2),
		accent:       accent,
	}
}

// layerStyle colours one layer row with the first stop of its gradient.
func (s styles) layerStyle(gradient string, width int) lipgloss.Style {
	from, _ := palette.Stops(gradient)
	bg := s.accent
	if from != "" {
		bg = lipgloss.Color(from)
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.Color("#ffffff")).
		Width(width).
		Padding(0, 1)
}
