package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alzaabi555/rased/internal/classroom"
	"github.com/alzaabi555/rased/internal/state"
)

// saveState is the persistence indicator shown in the header.
type saveState int

const (
	saveClean saveState = iota
	savePending
	saveRetrying
	saveFailing
)

// classifySave maps the store status to an indicator state.
func classifySave(st state.Status) saveState {
	switch {
	case st.IsFailing():
		return saveFailing
	case st.SaveError != nil:
		return saveRetrying
	case st.Dirty():
		return savePending
	default:
		return saveClean
	}
}

// renderHeader renders the status bar with all information.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBar(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	var parts []string
	parts = append(parts, bg.Render("rased", styles.Logo))

	class := m.class
	if class == "" {
		class = "—"
	}
	parts = append(parts,
		bg.Render("الفصل:", styles.MutedText)+bg.Space()+bg.Render(class, styles.Text),
	)

	if period := m.formatPeriod(); period != "" {
		parts = append(parts, bg.Render(period, styles.InfoText))
	}

	parts = append(parts, m.formatSaveIndicator(compact, styles, bg))

	if st := m.status; st.LoadError != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render("LOAD", styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(truncate(st.LoadError.Error(), maxErr), styles.WarningText),
		)
	}

	if reach := m.formatReachability(styles, bg); reach != "" {
		parts = append(parts, reach)
	}

	if m.errorMsg != "" {
		parts = append(parts,
			bg.Render("!", styles.DangerText)+bg.Space()+
				bg.Render(m.errorMsg, styles.DangerText),
		)
	} else if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.SuccessText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}

// formatSaveIndicator renders the persistence status.
func (m Model) formatSaveIndicator(compact bool, styles Styles, bg barStyle) string {
	st := m.status
	switch classifySave(st) {
	case saveFailing:
		text := "● فشل الحفظ"
		if !compact && st.SaveError != nil {
			text += " " + truncate(st.SaveError.Error(), 50)
		}
		return bg.Render(text, styles.DangerText)
	case saveRetrying:
		return bg.Render("● إعادة المحاولة", styles.WarningText)
	case savePending:
		return bg.Render("● غير محفوظ", styles.WarningText)
	}
	text := "● محفوظ"
	if !st.LastSaved.IsZero() {
		text += " " + formatRelative(st.LastSaved, m.now())
	} else if st.Source != "" && !compact {
		text += " (" + st.Source + ")"
	}
	return bg.Render(text, styles.SuccessText)
}

// formatPeriod names the current period and the class scheduled in it.
func (m Model) formatPeriod() string {
	now := m.now()
	p, ok := classroom.CurrentPeriod(m.snapshot.PeriodTimes, now)
	if !ok {
		return ""
	}
	text := fmt.Sprintf("الحصة %d", p.PeriodNumber)
	if scheduled := classroom.ClassAt(m.snapshot.Schedule, now.Weekday(), p.PeriodNumber); scheduled != "" {
		text += " • " + scheduled
	}
	return text
}

func (m Model) formatReachability(styles Styles, bg barStyle) string {
	if m.reach == nil {
		return ""
	}
	checked, reachable, _ := m.reach.Get()
	switch {
	case !checked:
		return ""
	case reachable:
		return bg.Render("MOE", styles.MutedText) + bg.Space() + bg.Render("●", styles.SuccessText)
	default:
		return bg.Render("MOE", styles.MutedText) + bg.Space() + bg.Render("●", styles.DangerText)
	}
}

// renderCommandBar renders the view tabs and the keys of the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBar(m.theme.Surface)

	segments := make([]string, 0, len(viewOrder)+8)
	for i, v := range viewOrder {
		label := fmt.Sprintf("%d:%s", i+1, v)
		if v == m.currentView {
			segments = append(segments, bg.Render(label, styles.AccentText.Bold(true).Underline(true)))
		} else {
			segments = append(segments, bg.Render(label, styles.MutedText))
		}
	}

	type cmd struct{ key, desc string }
	var commands []cmd
	switch m.currentView {
	case ViewAttendance:
		commands = []cmd{{"p/a/l/t", "Mark"}, {"A", "All present"}, {"←/→", "Day"}, {"n", "Today"}}
	case ViewBehavior:
		commands = []cmd{{"+", "Award"}, {"-", "Deduct"}}
	case ViewMinistry:
		if !m.login.active(m.ministryPhase()) {
			commands = []cmd{{"enter", "Select"}, {"s", "Submit"}, {"r", "Reload"}, {"o", "Logout"}}
		}
	default:
		commands = []cmd{{"j/k", "Navigate"}}
	}
	commands = append(commands, cmd{"[/]", "Class"})

	colon := bg.Sep(":")
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderFooter shows the short key help and the semester.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	sem := fmt.Sprintf("الفصل الدراسي %s", m.snapshot.CurrentSemester.Normalize())
	return styles.Footer.Width(m.width).Render(m.help.View(m.keys) + "  " + sem)
}

// formatRelative renders how long ago t was.
func formatRelative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("2006-01-02")
	}
}
