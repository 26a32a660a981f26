package ministry

import (
	"strconv"
	"strings"

	"github.com/alzaabi555/rased/internal/classroom"
)

// Matches reports whether a local student belongs to the filter's class.
func (f Filter) Matches(s classroom.Student) bool {
	if name := strings.TrimSpace(f.ClassName); name != "" && s.InClass(name) {
		return true
	}
	return f.ClassID != "" && s.InClass(f.ClassID)
}

func remoteID(s classroom.Student) string {
	if id := strings.TrimSpace(s.MinistryID); id != "" {
		return id
	}
	return s.ID
}

// AbsenceBatch lists the non-present students of the filter's class on
// date. Present or unmarked students are left out.
func AbsenceBatch(students []classroom.Student, f Filter, date string) []AbsenceEntry {
	out := []AbsenceEntry{}
	for _, s := range students {
		if !f.Matches(s) {
			continue
		}
		status, ok := classroom.AttendanceOn(s, date)
		if !ok {
			continue
		}
		var code int
		switch status {
		case classroom.StatusAbsent:
			code = AbsenceAbsent
		case classroom.StatusLate:
			code = AbsenceLate
		case classroom.StatusTruant:
			code = AbsenceTruant
		default:
			continue
		}
		out = append(out, AbsenceEntry{StudentID: remoteID(s), AbsenceType: code})
	}
	return out
}

// MarksBatch maps each student of the filter's class to their grade in
// category for sem. Students without a grade are sent as absent with an
// empty mark.
func MarksBatch(students []classroom.Student, f Filter, category string, sem classroom.Semester) []MarkEntry {
	out := []MarkEntry{}
	for _, s := range students {
		if !f.Matches(s) {
			continue
		}
		entry := MarkEntry{StudentID: remoteID(s)}
		if g, ok := classroom.GradeFor(s, category, sem); ok {
			entry.MarkValue = strconv.FormatFloat(g.Score, 'f', -1, 64)
		} else {
			entry.IsAbsent = true
		}
		out = append(out, entry)
	}
	return out
}
