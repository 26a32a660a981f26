package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens value to limit runes, ending with an ellipsis.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

// padRight pads s with spaces to a display width of width cells.
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// barStyle renders header segments on one background. lipgloss resets the
// background after every styled span, so spaces between words are painted
// separately.
type barStyle struct {
	bg   lipgloss.Color
	fill lipgloss.Style
}

func newBar(color string) barStyle {
	bg := lipgloss.Color(color)
	return barStyle{bg: bg, fill: lipgloss.NewStyle().Background(bg)}
}

// Render styles each word of text and joins the words with painted spaces.
func (b barStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	st := style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = st.Render(w)
		}
	}
	return strings.Join(words, b.Space())
}

func (b barStyle) Space() string { return b.Spaces(1) }

func (b barStyle) Spaces(n int) string { return b.fill.Render(strings.Repeat(" ", n)) }

func (b barStyle) Sep(sep string) string { return b.fill.Render(sep) }

func (b barStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}
