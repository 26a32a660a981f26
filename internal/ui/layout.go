package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// LayoutCompactWidth is the terminal width below which the header drops
// detail.
const LayoutCompactWidth = 100

// DefaultUIInterval is how often the UI re-reads the store.
const DefaultUIInterval = time.Second

var contentStyle = lipgloss.NewStyle().Padding(1, 2)

// padContent indents a view body from the bars around it.
func padContent(s string) string {
	return contentStyle.Render(s)
}

// overlay centres body in a bordered box over a width x height screen.
func overlay(theme Theme, width, height, boxWidth int, border, body string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Width(boxWidth).
		Render(body)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
