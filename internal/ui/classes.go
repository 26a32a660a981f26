package ui

import (
	"slices"

	"github.com/alzaabi555/rased/internal/classroom"
	"github.com/alzaabi555/rased/internal/prefs"
)

// classes returns the classes the switcher offers.
func (m Model) classes() []string {
	return classroom.VisibleClasses(m.snapshot)
}

// syncClass keeps the selected class valid after the snapshot changes and
// clamps the row cursor to the class size.
func (m *Model) syncClass() {
	classes := m.classes()
	if len(classes) == 0 {
		m.class = ""
	} else if !slices.Contains(classes, m.class) {
		m.class = classes[0]
	}
	if n := len(m.classStudents()); m.selectedRow >= n {
		m.selectedRow = max(0, n-1)
	}
}

// cycleClass moves the switcher by step and remembers the choice.
func (m *Model) cycleClass(step int) {
	classes := m.classes()
	if len(classes) == 0 {
		return
	}
	i := slices.Index(classes, m.class)
	if i < 0 {
		i = 0
	} else {
		i = (i + step + len(classes)) % len(classes)
	}
	if classes[i] == m.class {
		return
	}
	m.class = classes[i]
	m.selectedRow = 0
	m.savePrefs(func(p *prefs.Prefs) { p.LastClass = m.class })
}

// classStudents returns the members of the selected class.
func (m Model) classStudents() []classroom.Student {
	if m.class == "" {
		return nil
	}
	return classroom.StudentsInClass(m.snapshot.Students, m.class)
}

// selectedStudent returns the student under the cursor.
func (m Model) selectedStudent() (classroom.Student, bool) {
	students := m.classStudents()
	if m.selectedRow < 0 || m.selectedRow >= len(students) {
		return classroom.Student{}, false
	}
	return students[m.selectedRow], true
}
