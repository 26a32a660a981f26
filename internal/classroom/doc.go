// Package classroom holds the Rased data model and the pure operations the
// feature screens perform on it.
//
// # Overview
//
// A Snapshot is the whole application state: the student roster with its
// attendance, behaviour and grade records, the class list, the timetable,
// the teacher profile and the gradebook configuration. It is persisted as a
// single JSON document, so every type here carries the JSON field names of
// that document.
//
// # Value semantics
//
// Every operation takes values and returns new values. Nothing in this
// package mutates its arguments; callers feed the results back into the
// state store, which keeps snapshots immutable once published:
//
//	next := classroom.ToggleAttendance(student, "2024-01-10", classroom.StatusAbsent)
//	store.SetStudents(func(list []classroom.Student) []classroom.Student {
//		return classroom.ReplaceStudent(list, next)
//	})
//
// # Record invariants
//
// Uniqueness rules are enforced by filter-then-append rather than by a
// schema:
//
//   - At most one AttendanceRecord per (student, date). SetAttendance drops
//     the day's record before appending; ToggleAttendance with the status
//     already recorded clears the day.
//   - At most one GradeRecord per (student, category, semester). UpsertGrade
//     removes the previous record first.
//
// Records written before semesters existed have no semester and are read as
// semester "1" (see Semester.Normalize).
//
// # Relationships
//
// There are no foreign keys. Class membership is the class name stored in
// Student.Classes; team membership is Student.GroupID. RenameClass and
// DeleteClass rewrite those strings so the roster stays consistent.
//
// # Identifiers
//
// All ids are generated on the device (NewID, backed by google/uuid). The
// ministry identifier of a student, when known, lives in MinistryID and is
// only used when submitting batches to the ministry service.
package classroom
