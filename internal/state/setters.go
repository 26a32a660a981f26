package state

import "github.com/alzaabi555/rased/internal/classroom"

func set[T any](s *Store, field func(*classroom.Snapshot) *T, fn Updater[T]) classroom.Snapshot {
	return s.Update(func(snap classroom.Snapshot) classroom.Snapshot {
		p := field(&snap)
		*p = fn(*p)
		return snap
	})
}

func (s *Store) SetStudents(fn Updater[[]classroom.Student]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *[]classroom.Student { return &snap.Students }, fn)
}

func (s *Store) SetClasses(fn Updater[[]string]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *[]string { return &snap.Classes }, fn)
}

func (s *Store) SetHiddenClasses(fn Updater[[]string]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *[]string { return &snap.HiddenClasses }, fn)
}

func (s *Store) SetGroups(fn Updater[[]classroom.Group]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *[]classroom.Group { return &snap.Groups }, fn)
}

func (s *Store) SetSchedule(fn Updater[[]classroom.ScheduleDay]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *[]classroom.ScheduleDay { return &snap.Schedule }, fn)
}

func (s *Store) SetPeriodTimes(fn Updater[[]classroom.PeriodTime]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *[]classroom.PeriodTime { return &snap.PeriodTimes }, fn)
}

func (s *Store) SetTeacherInfo(fn Updater[classroom.TeacherInfo]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *classroom.TeacherInfo { return &snap.TeacherInfo }, fn)
}

func (s *Store) SetCurrentSemester(fn Updater[classroom.Semester]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *classroom.Semester { return &snap.CurrentSemester }, fn)
}

func (s *Store) SetAssessmentTools(fn Updater[[]classroom.AssessmentTool]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *[]classroom.AssessmentTool { return &snap.AssessmentTools }, fn)
}

func (s *Store) SetGradeSettings(fn Updater[classroom.GradeSettings]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *classroom.GradeSettings { return &snap.GradeSettings }, fn)
}

func (s *Store) SetCertificateSettings(fn Updater[classroom.CertificateSettings]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *classroom.CertificateSettings { return &snap.CertificateSettings }, fn)
}

func (s *Store) SetDefaultStudentGender(fn Updater[classroom.Gender]) classroom.Snapshot {
	return set(s, func(snap *classroom.Snapshot) *classroom.Gender { return &snap.DefaultStudentGender }, fn)
}
