package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alzaabi555/rased/internal/classroom"
)

const (
	rewardReason = "مشاركة متميزة"
	deductReason = "سلوك غير مناسب"
)

func (m Model) handleBehaviorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reward):
		m.addPoints(1, rewardReason)
		return m, nil
	case key.Matches(msg, m.keys.Deduct):
		m.addPoints(-1, deductReason)
		return m, nil
	}
	return m.handleListKey(msg, len(m.classStudents()))
}

// addPoints records a behaviour entry for the selected student in the
// current semester.
func (m *Model) addPoints(points int, reason string) {
	s, ok := m.selectedStudent()
	if !ok {
		return
	}
	rec := classroom.BehaviorRecord{
		Date:        m.now().Format(dateLayout),
		Description: reason,
		Points:      points,
		Semester:    m.snapshot.CurrentSemester.Normalize(),
	}
	if p, ok := classroom.CurrentPeriod(m.snapshot.PeriodTimes, m.now()); ok {
		rec.Period = fmt.Sprintf("%d", p.PeriodNumber)
	}
	m.mutate(func(snap classroom.Snapshot) classroom.Snapshot {
		snap.Students = classroom.UpdateStudent(snap.Students, s.ID, func(st classroom.Student) classroom.Student {
			return classroom.AddBehavior(st, rec)
		})
		return snap
	})
}

// renderBehavior shows points, coins and level for the selected class.
func (m Model) renderBehavior() string {
	if m.class == "" {
		return m.renderEmpty("لا توجد فصول بعد")
	}
	students := m.classStudents()
	if len(students) == 0 {
		return m.renderEmpty(fmt.Sprintf("لا يوجد طلاب في %s", m.class))
	}
	styles := m.theme.Styles()
	sem := m.snapshot.CurrentSemester.Normalize()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("الفصل الدراسي %s", sem)))
	b.WriteString("\n\n")

	cols := []column{{"م", 4}, {"اسم الطالب", 28}, {"النقاط", 7}, {"العملات", 8}, {"المستوى", 10}, {"آخر ملاحظة", 24}}
	rows := make([]tableRow, len(students))
	for i, s := range students {
		points := classroom.Points(s, sem)
		key, last := "", ""
		if n := len(s.Behaviors); n > 0 {
			rec := s.Behaviors[n-1]
			key, last = string(rec.Type), rec.Description
		}
		rows[i] = tableRow{
			cells: []string{
				fmt.Sprintf("%d", i+1),
				s.Name,
				fmt.Sprintf("%+d", points),
				fmt.Sprintf("%d", classroom.CoinBalance(s)),
				classroom.LevelFor(classroom.PositivePoints(s)).Name,
				last,
			},
			badge: 5,
			key:   key,
		}
	}
	b.WriteString(m.renderTable(cols, rows, m.selectedRow))
	return b.String()
}
