package classroom

import "slices"

// AttendanceOn returns the status recorded for date, if any.
func AttendanceOn(s Student, date string) (AttendanceStatus, bool) {
	for _, a := range s.Attendance {
		if a.Date == date {
			return a.Status, true
		}
	}
	return "", false
}

// ToggleAttendance flips a status for date. Marking the status already
// recorded removes the record; any other status replaces it.
func ToggleAttendance(s Student, date string, status AttendanceStatus) Student {
	current, ok := AttendanceOn(s, date)
	if ok && current == status {
		return ClearAttendance(s, date)
	}
	return SetAttendance(s, date, status)
}

// SetAttendance records status for date, replacing any earlier record for
// the same date.
func SetAttendance(s Student, date string, status AttendanceStatus) Student {
	out := ClearAttendance(s, date)
	out.Attendance = append(out.Attendance, AttendanceRecord{Date: date, Status: status})
	return out
}

// ClearAttendance drops every record for date.
func ClearAttendance(s Student, date string) Student {
	out := s.Clone()
	out.Attendance = slices.DeleteFunc(out.Attendance, func(a AttendanceRecord) bool {
		return a.Date == date
	})
	return out
}

// MarkClass applies status to every student in class for date. An empty
// status clears the day for the class.
func MarkClass(students []Student, class, date string, status AttendanceStatus) []Student {
	out := make([]Student, len(students))
	for i, s := range students {
		switch {
		case !s.InClass(class):
			out[i] = s.Clone()
		case status == "":
			out[i] = ClearAttendance(s, date)
		default:
			out[i] = SetAttendance(s, date, status)
		}
	}
	return out
}

// UpdateStudent applies fn to the student with id and returns the new list.
// The list is returned unchanged when no student matches.
func UpdateStudent(students []Student, id string, fn func(Student) Student) []Student {
	out := CloneStudents(students)
	if i := FindStudent(out, id); i >= 0 {
		out[i] = fn(out[i])
	}
	return out
}

// DaySummary counts attendance marks for a class on one date.
type DaySummary struct {
	Total    int
	Present  int
	Absent   int
	Late     int
	Truant   int
	Unmarked int
}

// DailySummary tallies the attendance of class on date.
func DailySummary(students []Student, class, date string) DaySummary {
	var sum DaySummary
	for _, s := range students {
		if !s.InClass(class) {
			continue
		}
		sum.Total++
		status, ok := AttendanceOn(s, date)
		if !ok {
			sum.Unmarked++
			continue
		}
		switch status {
		case StatusPresent:
			sum.Present++
		case StatusAbsent:
			sum.Absent++
		case StatusLate:
			sum.Late++
		case StatusTruant:
			sum.Truant++
		}
	}
	return sum
}

// CountStatus returns how many records of status the student has.
func CountStatus(s Student, status AttendanceStatus) int {
	n := 0
	for _, a := range s.Attendance {
		if a.Status == status {
			n++
		}
	}
	return n
}
