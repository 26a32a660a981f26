package classroom

import (
	"slices"
	"strings"
)

// NewStudent builds an empty student record in class.
func NewStudent(name, class string) Student {
	s := Student{
		ID:         NewID(),
		Name:       strings.TrimSpace(name),
		Classes:    []string{},
		Attendance: []AttendanceRecord{},
		Behaviors:  []BehaviorRecord{},
		Grades:     []GradeRecord{},
	}
	if class = strings.TrimSpace(class); class != "" {
		s.Classes = append(s.Classes, class)
	}
	return s
}

// AddStudents appends the new students, assigning ids to any without one.
func AddStudents(students []Student, added ...Student) []Student {
	out := CloneStudents(students)
	for _, s := range added {
		s = s.Clone()
		if s.ID == "" {
			s.ID = NewID()
		}
		s.Classes = trimmed(s.Classes)
		out = append(out, s)
	}
	return out
}

// ReplaceStudent swaps in updated for the student with the same id.
func ReplaceStudent(students []Student, updated Student) []Student {
	return UpdateStudent(students, updated.ID, func(Student) Student { return updated.Clone() })
}

// DeleteStudent removes the student with id.
func DeleteStudent(students []Student, id string) []Student {
	out := CloneStudents(students)
	return slices.DeleteFunc(out, func(s Student) bool { return s.ID == id })
}

// DropSelection removes id from a selection set, used alongside
// DeleteStudent so a deleted student cannot stay selected.
func DropSelection(selected map[string]bool, id string) map[string]bool {
	out := make(map[string]bool, len(selected))
	for k, v := range selected {
		if k != id && v {
			out[k] = true
		}
	}
	return out
}

// StudentsInClass returns the members of class in roster order.
func StudentsInClass(students []Student, class string) []Student {
	var out []Student
	for _, s := range students {
		if s.InClass(class) {
			out = append(out, s.Clone())
		}
	}
	return out
}

// AssignGroup moves a student to groupID (empty clears it).
func AssignGroup(students []Student, id, groupID string) []Student {
	return UpdateStudent(students, id, func(s Student) Student {
		s.GroupID = groupID
		return s
	})
}

// AddClass appends name unless it is blank or already present.
func AddClass(snap Snapshot, name string) Snapshot {
	name = strings.TrimSpace(name)
	out := snap.Clone()
	if name == "" || slices.Contains(out.Classes, name) {
		return out
	}
	out.Classes = append(out.Classes, name)
	return out
}

// RenameClass renames a class everywhere it is referenced: the class list,
// student memberships, hidden classes and timetable cells.
func RenameClass(snap Snapshot, oldName, newName string) Snapshot {
	oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
	out := snap.Clone()
	if oldName == "" || newName == "" || oldName == newName {
		return out
	}
	rename := func(values []string) []string {
		for i, v := range values {
			if strings.TrimSpace(v) == oldName {
				values[i] = newName
			}
		}
		return values
	}
	out.Classes = dedupe(rename(out.Classes))
	out.HiddenClasses = dedupe(rename(out.HiddenClasses))
	for i := range out.Students {
		out.Students[i].Classes = dedupe(rename(out.Students[i].Classes))
	}
	for i := range out.Schedule {
		out.Schedule[i].Periods = renameCells(out.Schedule[i].Periods, oldName, newName)
	}
	return out
}

// DeleteClass removes a class from the list and from every membership.
// Students themselves are kept.
func DeleteClass(snap Snapshot, name string) Snapshot {
	name = strings.TrimSpace(name)
	out := snap.Clone()
	drop := func(v string) bool { return strings.TrimSpace(v) == name }
	out.Classes = slices.DeleteFunc(out.Classes, drop)
	out.HiddenClasses = slices.DeleteFunc(out.HiddenClasses, drop)
	for i := range out.Students {
		out.Students[i].Classes = slices.DeleteFunc(out.Students[i].Classes, drop)
	}
	return out
}

// HideClass hides a class from pickers without deleting it.
func HideClass(snap Snapshot, name string) Snapshot {
	out := snap.Clone()
	if name = strings.TrimSpace(name); name != "" && !slices.Contains(out.HiddenClasses, name) {
		out.HiddenClasses = append(out.HiddenClasses, name)
	}
	return out
}

// UnhideClass reverses HideClass.
func UnhideClass(snap Snapshot, name string) Snapshot {
	name = strings.TrimSpace(name)
	out := snap.Clone()
	out.HiddenClasses = slices.DeleteFunc(out.HiddenClasses, func(v string) bool { return v == name })
	return out
}

// VisibleClasses lists classes that are not hidden.
func VisibleClasses(snap Snapshot) []string {
	var out []string
	for _, c := range snap.Classes {
		if !slices.Contains(snap.HiddenClasses, c) {
			out = append(out, c)
		}
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func renameCells(cells []string, oldName, newName string) []string {
	for i, c := range cells {
		if strings.TrimSpace(c) == oldName {
			cells[i] = newName
		}
	}
	return cells
}
