package classroom

import (
	"slices"
	"strings"
)

// UpsertGrade stores rec for the student. Any earlier record with the same
// category in the same semester is removed first, so a student never holds
// two scores for one (category, semester).
func UpsertGrade(s Student, rec GradeRecord) Student {
	if rec.ID == "" {
		rec.ID = NewID()
	}
	sem := rec.Semester.Normalize()
	category := strings.TrimSpace(rec.Category)

	out := s.Clone()
	out.Grades = slices.DeleteFunc(out.Grades, func(g GradeRecord) bool {
		return strings.TrimSpace(g.Category) == category && g.Semester.Normalize() == sem
	})
	out.Grades = append(out.Grades, rec)
	return out
}

// RemoveGrade deletes the grade with id.
func RemoveGrade(s Student, id string) Student {
	out := s.Clone()
	out.Grades = slices.DeleteFunc(out.Grades, func(g GradeRecord) bool { return g.ID == id })
	return out
}

// GradesFor returns the student's grades for a semester.
func GradesFor(s Student, sem Semester) []GradeRecord {
	sem = sem.Normalize()
	var out []GradeRecord
	for _, g := range s.Grades {
		if g.Semester.Normalize() == sem {
			out = append(out, g)
		}
	}
	return out
}

// GradeFor returns the grade recorded for category in sem.
func GradeFor(s Student, category string, sem Semester) (GradeRecord, bool) {
	category = strings.TrimSpace(category)
	for _, g := range GradesFor(s, sem) {
		if strings.TrimSpace(g.Category) == category {
			return g, true
		}
	}
	return GradeRecord{}, false
}

// ClearSemesterGrades removes every grade of sem for all students in class.
func ClearSemesterGrades(students []Student, class string, sem Semester) []Student {
	sem = sem.Normalize()
	out := CloneStudents(students)
	for i := range out {
		if !out[i].InClass(class) {
			continue
		}
		out[i].Grades = slices.DeleteFunc(out[i].Grades, func(g GradeRecord) bool {
			return g.Semester.Normalize() == sem
		})
	}
	return out
}
