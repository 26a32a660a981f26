package ui

import (
	"fmt"
	"strings"

	"github.com/alzaabi555/rased/internal/classroom"
)

// column is one table column; width counts runes.
type column struct {
	title string
	width int
}

// tableRow is one rendered row. key names the badge colour used for
// the badge cell.
type tableRow struct {
	cells []string
	badge int // index of the badge cell, -1 for none
	key   string
}

// renderTable draws a fixed-width table with the cursor row highlighted.
func (m Model) renderTable(cols []column, rows []tableRow, selected int) string {
	styles := m.theme.Styles()
	var b strings.Builder

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = padRight(truncate(c.title, c.width), c.width)
	}
	b.WriteString(styles.MutedText.Bold(true).Render(strings.Join(header, " ")))
	b.WriteString("\n")

	for i, row := range rows {
		cells := make([]string, len(cols))
		for j, c := range cols {
			value := ""
			if j < len(row.cells) {
				value = row.cells[j]
			}
			cell := padRight(truncate(value, c.width), c.width)
			if j == row.badge && row.key != "" && i != selected {
				cell = styles.StatusStyle(row.key).Padding(0).Render(cell)
			}
			cells[j] = cell
		}
		line := strings.Join(cells, " ")
		if i == selected {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderEmpty renders a placeholder hint.
func (m Model) renderEmpty(text string) string {
	return m.theme.Styles().FaintText.Render(text)
}

// renderRoster lists the selected class.
func (m Model) renderRoster() string {
	if m.class == "" {
		return m.renderEmpty("لا توجد فصول بعد. استورد كشف الطلاب: rased import-roster -class <الفصل> <ملف>")
	}
	students := m.classStudents()
	if len(students) == 0 {
		return m.renderEmpty(fmt.Sprintf("لا يوجد طلاب في %s", m.class))
	}

	sem := m.snapshot.CurrentSemester
	cols := []column{
		{"م", 4},
		{"اسم الطالب", 28},
		{"ولي الأمر", 14},
		{"غياب", 5},
		{"تأخير", 5},
		{"النقاط", 7},
		{"المستوى", 10},
	}
	rows := make([]tableRow, len(students))
	for i, s := range students {
		level := classroom.LevelFor(classroom.PositivePoints(s))
		rows[i] = tableRow{
			cells: []string{
				fmt.Sprintf("%d", i+1),
				s.Name,
				s.ParentPhone,
				fmt.Sprintf("%d", classroom.CountStatus(s, classroom.StatusAbsent)),
				fmt.Sprintf("%d", classroom.CountStatus(s, classroom.StatusLate)),
				fmt.Sprintf("%+d", classroom.Points(s, sem)),
				level.Name,
			},
			badge: -1,
		}
	}
	return m.renderTable(cols, rows, m.selectedRow)
}
