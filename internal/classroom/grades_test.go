package classroom

import "testing"

func TestUpsertGrade_OneRecordPerCategoryAndSemester(t *testing.T) {
	s := NewStudent("Ali", "4A")

	s = UpsertGrade(s, GradeRecord{Category: "project", Score: 7, MaxScore: 10, Semester: SemesterFirst})
	s = UpsertGrade(s, GradeRecord{Category: "project", Score: 9, MaxScore: 10, Semester: SemesterFirst})
	s = UpsertGrade(s, GradeRecord{Category: "project", Score: 5, MaxScore: 10, Semester: SemesterSecond})

	if len(s.Grades) != 2 {
		t.Fatalf("len(Grades) = %d, want 2: %#v", len(s.Grades), s.Grades)
	}
	g, ok := GradeFor(s, "project", SemesterFirst)
	if !ok || g.Score != 9 {
		t.Fatalf("GradeFor(first) = %#v, %v; want score 9", g, ok)
	}
	g, ok = GradeFor(s, "project", SemesterSecond)
	if !ok || g.Score != 5 {
		t.Fatalf("GradeFor(second) = %#v, %v; want score 5", g, ok)
	}
}

func TestUpsertGrade_LegacyRecordCountsAsFirstSemester(t *testing.T) {
	s := NewStudent("Ali", "4A")
	s.Grades = append(s.Grades, GradeRecord{ID: "old", Category: "quiz", Score: 3})

	s = UpsertGrade(s, GradeRecord{Category: "quiz", Score: 8, Semester: SemesterFirst})
	if len(s.Grades) != 1 || s.Grades[0].Score != 8 {
		t.Fatalf("Grades = %#v, want the legacy record replaced", s.Grades)
	}
	if s.Grades[0].ID == "" {
		t.Fatalf("UpsertGrade should assign an id")
	}
}

func TestClearSemesterGrades(t *testing.T) {
	a := UpsertGrade(NewStudent("a", "4A"), GradeRecord{Category: "x", Score: 1, Semester: SemesterFirst})
	a = UpsertGrade(a, GradeRecord{Category: "x", Score: 2, Semester: SemesterSecond})
	b := UpsertGrade(NewStudent("b", "4B"), GradeRecord{Category: "x", Score: 3, Semester: SemesterFirst})

	out := ClearSemesterGrades([]Student{a, b}, "4A", SemesterFirst)
	if got := GradesFor(out[0], SemesterFirst); len(got) != 0 {
		t.Fatalf("first semester grades = %#v, want none", got)
	}
	if got := GradesFor(out[0], SemesterSecond); len(got) != 1 {
		t.Fatalf("second semester grades = %#v, want one", got)
	}
	if got := GradesFor(out[1], SemesterFirst); len(got) != 1 {
		t.Fatalf("other class grades were cleared")
	}
}

func TestRemoveGrade(t *testing.T) {
	s := UpsertGrade(NewStudent("a", "4A"), GradeRecord{ID: "g1", Category: "x", Score: 1})
	s = RemoveGrade(s, "g1")
	if len(s.Grades) != 0 {
		t.Fatalf("Grades = %#v, want empty", s.Grades)
	}
}
