package classroom

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// PeriodsPerDay is the number of teaching periods in a school day.
const PeriodsPerDay = 8

// DefaultFinalExamName is the gradebook column treated as the final exam
// when no tool is flagged explicitly.
const DefaultFinalExamName = "الامتحان النهائي"

// Snapshot is the complete serializable application state.
type Snapshot struct {
	Students             []Student           `json:"students"`
	Classes              []string            `json:"classes"`
	HiddenClasses        []string            `json:"hiddenClasses"`
	Groups               []Group             `json:"groups"`
	Schedule             []ScheduleDay       `json:"schedule"`
	PeriodTimes          []PeriodTime        `json:"periodTimes"`
	TeacherInfo          TeacherInfo         `json:"teacherInfo"`
	CurrentSemester      Semester            `json:"currentSemester"`
	AssessmentTools      []AssessmentTool    `json:"assessmentTools"`
	GradeSettings        GradeSettings       `json:"gradeSettings"`
	CertificateSettings  CertificateSettings `json:"certificateSettings"`
	DefaultStudentGender Gender              `json:"defaultStudentGender"`
}

// NewID returns a fresh client-side identifier.
func NewID() string {
	return uuid.NewString()
}

// DefaultSnapshot returns the state of a freshly installed application.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Students:             []Student{},
		Classes:              []string{},
		HiddenClasses:        []string{},
		Groups:               DefaultGroups(),
		Schedule:             DefaultSchedule(),
		PeriodTimes:          DefaultPeriodTimes(),
		CurrentSemester:      SemesterFirst,
		AssessmentTools:      []AssessmentTool{},
		GradeSettings:        DefaultGradeSettings(),
		CertificateSettings:  DefaultCertificateSettings(),
		DefaultStudentGender: GenderMale,
	}
}

// DefaultGroups returns the four starter competition teams.
func DefaultGroups() []Group {
	return []Group{
		{ID: "g1", Name: "الصقور", Color: "emerald"},
		{ID: "g2", Name: "النمور", Color: "orange"},
		{ID: "g3", Name: "النجوم", Color: "purple"},
		{ID: "g4", Name: "الرواد", Color: "blue"},
	}
}

// DefaultSchedule returns an empty Sunday-Thursday timetable.
func DefaultSchedule() []ScheduleDay {
	days := []string{"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس"}
	out := make([]ScheduleDay, len(days))
	for i, d := range days {
		out[i] = ScheduleDay{DayName: d, Periods: make([]string, PeriodsPerDay)}
	}
	return out
}

// DefaultPeriodTimes returns eight periods with no bell times set.
func DefaultPeriodTimes() []PeriodTime {
	out := make([]PeriodTime, PeriodsPerDay)
	for i := range out {
		out[i] = PeriodTime{PeriodNumber: i + 1}
	}
	return out
}

// PadPeriodTimes fills missing trailing entries from the defaults so the
// table always has PeriodsPerDay rows.
func PadPeriodTimes(times []PeriodTime) []PeriodTime {
	defaults := DefaultPeriodTimes()
	for i := range defaults {
		if i < len(times) {
			defaults[i] = times[i]
		}
	}
	return defaults
}

// DefaultGradeSettings mirrors the ministry's 100-point scheme.
func DefaultGradeSettings() GradeSettings {
	return GradeSettings{TotalScore: 100, FinalExamScore: 40, FinalExamName: DefaultFinalExamName}
}

// DefaultCertificateSettings returns the stock appreciation certificate.
func DefaultCertificateSettings() CertificateSettings {
	return CertificateSettings{
		Title:             "شهادة شكر وتقدير",
		BodyText:          "يسرنا تكريم الطالب لتميزه في السلوك والتحصيل الدراسي",
		ShowDefaultDesign: true,
	}
}

// Clone returns a deep copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Students = CloneStudents(s.Students)
	out.Classes = slices.Clone(s.Classes)
	out.HiddenClasses = slices.Clone(s.HiddenClasses)
	out.Groups = slices.Clone(s.Groups)
	out.Schedule = cloneSchedule(s.Schedule)
	out.PeriodTimes = slices.Clone(s.PeriodTimes)
	out.AssessmentTools = slices.Clone(s.AssessmentTools)
	return out
}

// CloneStudents deep-copies a student list.
func CloneStudents(students []Student) []Student {
	if students == nil {
		return nil
	}
	out := make([]Student, len(students))
	for i, st := range students {
		out[i] = st.Clone()
	}
	return out
}

// Clone deep-copies a single student.
func (s Student) Clone() Student {
	out := s
	out.Classes = slices.Clone(s.Classes)
	out.Attendance = slices.Clone(s.Attendance)
	out.Behaviors = slices.Clone(s.Behaviors)
	out.Grades = slices.Clone(s.Grades)
	return out
}

func cloneSchedule(days []ScheduleDay) []ScheduleDay {
	if days == nil {
		return nil
	}
	out := make([]ScheduleDay, len(days))
	for i, d := range days {
		out[i] = ScheduleDay{DayName: d.DayName, Periods: slices.Clone(d.Periods)}
	}
	return out
}

// FindStudent returns the index of the student with id, or -1.
func FindStudent(students []Student, id string) int {
	return slices.IndexFunc(students, func(s Student) bool { return s.ID == id })
}

func trimmed(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
