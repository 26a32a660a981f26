package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alzaabi555/rased/internal/classroom"
)

const dateLayout = "2006-01-02"

var statusLabels = map[classroom.AttendanceStatus]string{
	classroom.StatusPresent: "حاضر",
	classroom.StatusAbsent:  "غائب",
	classroom.StatusLate:    "متأخر",
	classroom.StatusTruant:  "متسرب",
}

func (m Model) handleAttendanceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.PrevDay):
		m.shiftDate(-1)
	case key.Matches(msg, k.NextDay):
		m.shiftDate(1)
	case key.Matches(msg, k.Today):
		m.date = m.now().Format(dateLayout)
	case key.Matches(msg, k.Present):
		m.toggleStatus(classroom.StatusPresent)
	case key.Matches(msg, k.Absent):
		m.toggleStatus(classroom.StatusAbsent)
	case key.Matches(msg, k.Late):
		m.toggleStatus(classroom.StatusLate)
	case key.Matches(msg, k.Truant):
		m.toggleStatus(classroom.StatusTruant)
	case key.Matches(msg, k.AllPresent):
		m.markAllPresent()
	default:
		return m.handleListKey(msg, len(m.classStudents()))
	}
	return m, nil
}

// shiftDate moves the register by days.
func (m *Model) shiftDate(days int) {
	day, err := time.Parse(dateLayout, m.date)
	if err != nil {
		day = m.now()
	}
	m.date = day.AddDate(0, 0, days).Format(dateLayout)
}

// toggleStatus marks the selected student; repeating the same mark clears it.
func (m *Model) toggleStatus(status classroom.AttendanceStatus) {
	s, ok := m.selectedStudent()
	if !ok {
		return
	}
	date := m.date
	m.mutate(func(snap classroom.Snapshot) classroom.Snapshot {
		snap.Students = classroom.UpdateStudent(snap.Students, s.ID, func(st classroom.Student) classroom.Student {
			return classroom.ToggleAttendance(st, date, status)
		})
		return snap
	})
}

func (m *Model) markAllPresent() {
	if m.class == "" {
		return
	}
	class, date := m.class, m.date
	m.mutate(func(snap classroom.Snapshot) classroom.Snapshot {
		snap.Students = classroom.MarkClass(snap.Students, class, date, classroom.StatusPresent)
		return snap
	})
	m.notice = fmt.Sprintf("تم تحضير %s", class)
}

// renderAttendance shows the register for the selected class and date.
func (m Model) renderAttendance() string {
	if m.class == "" {
		return m.renderEmpty("لا توجد فصول بعد")
	}
	styles := m.theme.Styles()
	students := m.classStudents()

	var b strings.Builder
	sum := classroom.DailySummary(m.snapshot.Students, m.class, m.date)
	b.WriteString(styles.AccentText.Bold(true).Render(m.date))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf(
		"حاضر %d • غائب %d • متأخر %d • متسرب %d • بدون رصد %d",
		sum.Present, sum.Absent, sum.Late, sum.Truant, sum.Unmarked)))
	b.WriteString("\n\n")

	if len(students) == 0 {
		b.WriteString(m.renderEmpty(fmt.Sprintf("لا يوجد طلاب في %s", m.class)))
		return b.String()
	}

	cols := []column{{"م", 4}, {"اسم الطالب", 28}, {"الحالة", 8}, {"غياب", 5}}
	rows := make([]tableRow, len(students))
	for i, s := range students {
		label, key := "—", "unmarked"
		if status, ok := classroom.AttendanceOn(s, m.date); ok {
			label, key = statusLabels[status], string(status)
		}
		rows[i] = tableRow{
			cells: []string{fmt.Sprintf("%d", i+1), s.Name, label, fmt.Sprintf("%d", classroom.CountStatus(s, classroom.StatusAbsent))},
			badge: 2,
			key:   key,
		}
	}
	b.WriteString(m.renderTable(cols, rows, m.selectedRow))
	return b.String()
}
