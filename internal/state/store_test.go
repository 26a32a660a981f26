package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/alzaabi555/rased/internal/classroom"
)

func TestStore_SetterAndSnapshotClone(t *testing.T) {
	s := New(classroom.DefaultSnapshot())

	ali := classroom.NewStudent("Ali", "4A")
	next := s.SetStudents(Value([]classroom.Student{ali}))
	if len(next.Students) != 1 {
		t.Fatalf("setter returned %d students, want 1", len(next.Students))
	}

	snap := s.Snapshot()
	snap.Students[0].Name = "changed"
	snap.Students[0].Classes[0] = "changed"
	next.Students[0].Name = "changed too"

	again := s.Snapshot()
	if again.Students[0].Name != "Ali" || again.Students[0].Classes[0] != "4A" {
		t.Fatalf("store was mutated through a returned snapshot: %#v", again.Students[0])
	}
}

func TestStore_UpdaterSeesPreviousValue(t *testing.T) {
	s := New(classroom.DefaultSnapshot())
	s.SetStudents(Value([]classroom.Student{classroom.NewStudent("Ali", "4A")}))
	id := s.Snapshot().Students[0].ID

	toggle := func(prev []classroom.Student) []classroom.Student {
		return classroom.UpdateStudent(prev, id, func(st classroom.Student) classroom.Student {
			return classroom.ToggleAttendance(st, "2024-01-10", classroom.StatusAbsent)
		})
	}
	s.SetStudents(toggle)
	s.SetStudents(toggle)

	if _, ok := classroom.AttendanceOn(s.Snapshot().Students[0], "2024-01-10"); ok {
		t.Fatalf("double toggle should leave no record")
	}
}

func TestStore_TypedSetters(t *testing.T) {
	s := New(classroom.DefaultSnapshot())
	s.SetClasses(Value([]string{"4A"}))
	s.SetHiddenClasses(Value([]string{"4A"}))
	s.SetTeacherInfo(func(prev classroom.TeacherInfo) classroom.TeacherInfo {
		prev.Name = "Mona"
		return prev
	})
	s.SetCurrentSemester(Value(classroom.SemesterSecond))
	s.SetGradeSettings(Value(classroom.GradeSettings{TotalScore: 50}))
	s.SetDefaultStudentGender(Value(classroom.GenderFemale))
	s.SetAssessmentTools(Value([]classroom.AssessmentTool{{ID: "t", Name: "quiz"}}))
	s.SetGroups(Value([]classroom.Group{}))
	s.SetSchedule(Value(classroom.DefaultSchedule()[:1]))
	s.SetPeriodTimes(Value(classroom.DefaultPeriodTimes()[:2]))
	s.SetCertificateSettings(Value(classroom.CertificateSettings{Title: "t"}))

	snap := s.Snapshot()
	if snap.TeacherInfo.Name != "Mona" || snap.CurrentSemester != classroom.SemesterSecond ||
		snap.GradeSettings.TotalScore != 50 || snap.DefaultStudentGender != classroom.GenderFemale ||
		len(snap.AssessmentTools) != 1 || len(snap.Groups) != 0 || len(snap.Schedule) != 1 ||
		len(snap.PeriodTimes) != 2 || snap.CertificateSettings.Title != "t" ||
		!reflect.DeepEqual(snap.HiddenClasses, []string{"4A"}) {
		t.Fatalf("unexpected snapshot after setters: %#v", snap)
	}
	if got := s.Status().Version; got != 11 {
		t.Fatalf("Version = %d, want 11", got)
	}
}

func TestStore_ChangesCoalesce(t *testing.T) {
	s := New(classroom.DefaultSnapshot())
	ch := s.Changes()

	s.SetClasses(Value([]string{"a"}))
	s.SetClasses(Value([]string{"b"}))
	s.SetClasses(Value([]string{"c"}))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should coalesce into one")
	default:
	}
}

func TestStore_ZeroValueUsable(t *testing.T) {
	var s Store
	ch := s.Changes()
	s.SetClasses(Value([]string{"4A"}))
	select {
	case <-ch:
	default:
		t.Fatal("zero-value store did not signal")
	}
	if got := s.Snapshot().Classes; len(got) != 1 {
		t.Fatalf("Classes = %v, want [4A]", got)
	}
}

func TestStore_RecordLoadAndSave(t *testing.T) {
	s := New(classroom.DefaultSnapshot())
	loadErr := errors.New("corrupt file")
	s.RecordLoad(SourceDefaults, loadErr)

	st := s.Status()
	if !st.Loaded || st.Source != SourceDefaults || !errors.Is(st.LoadError, loadErr) {
		t.Fatalf("status after load = %#v", st)
	}
	if st.Dirty() {
		t.Fatal("freshly loaded store should not be dirty")
	}

	s.SetClasses(Value([]string{"4A"}))
	_, version := s.Versioned()
	if !s.Status().Dirty() {
		t.Fatal("store should be dirty after an update")
	}

	s.RecordSave(version, errors.New("disk full"))
	s.RecordSave(version, errors.New("disk full"))
	st = s.Status()
	if !st.Dirty() || !st.IsFailing() || st.ConsecutiveFailures != 2 {
		t.Fatalf("status after failures = %#v", st)
	}

	s.RecordSave(version, nil)
	st = s.Status()
	if st.Dirty() || st.IsFailing() || st.SaveError != nil || st.LastSaved.IsZero() {
		t.Fatalf("status after success = %#v", st)
	}
}

func TestStore_StatusReturnsRecordedErrors(t *testing.T) {
	s := New(classroom.DefaultSnapshot())
	orig := errors.New("boom")
	s.RecordSave(1, orig)

	if got := s.Status().SaveError; got != orig {
		t.Fatalf("SaveError = %v, want the recorded error", got)
	}
}

func TestStore_Replace(t *testing.T) {
	s := New(classroom.DefaultSnapshot())
	s.SetClasses(Value([]string{"old"}))

	restored := classroom.DefaultSnapshot()
	restored.Classes = []string{"new"}
	s.Replace(restored)

	if got := s.Snapshot().Classes; !reflect.DeepEqual(got, []string{"new"}) {
		t.Fatalf("Classes = %v, want [new]", got)
	}
}
