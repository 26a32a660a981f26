package ministry

// Credentials are the teacher's portal login.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Session is the authenticated context returned by Login. It lives only in
// memory.
type Session struct {
	UserID     string
	AuthToken  string
	UserRoleID string
	SchoolID   string
	TeacherID  string
}

// Filter is one class the teacher can submit for.
type Filter struct {
	ClassID   string
	ClassName string
	GradeID   string
	GradeName string
}

// ID identifies the filter within a list.
func (f Filter) ID() string {
	return f.GradeID + "/" + f.ClassID
}

// Label is a display name for pickers.
func (f Filter) Label() string {
	switch {
	case f.GradeName != "" && f.ClassName != "":
		return f.GradeName + " - " + f.ClassName
	case f.ClassName != "":
		return f.ClassName
	default:
		return f.ClassID
	}
}

// AbsenceQuery selects absence history for one student.
type AbsenceQuery struct {
	GradeID         string
	ClassID         string
	StudentSchoolNo string
	StartDate       string // YYYY-MM-DD
	EndDate         string
}

// StudentAbsence is one record from the absence history.
type StudentAbsence struct {
	StudentID   string
	StudentName string
	AbsenceType string
	Date        string
}

// Absence type codes used by the service.
const (
	AbsenceAbsent = 1
	AbsenceLate   = 2
	AbsenceTruant = 3
)

// AbsenceEntry is one line of an attendance submission.
type AbsenceEntry struct {
	StudentID   string `json:"StudentId"`
	AbsenceType int    `json:"AbsenceType"`
	Notes       string `json:"Notes"`
}

// MarkEntry is one line of a marks submission.
type MarkEntry struct {
	StudentID string `json:"StudentId"`
	MarkValue string `json:"MarkValue"`
	IsAbsent  bool   `json:"IsAbsent"`
	Notes     string `json:"Notes"`
}

// MarksConfig identifies the exam a marks batch belongs to. Empty EduSysID
// and StageID and a zero ExamGradeType take the service defaults.
type MarksConfig struct {
	ClassID       string
	GradeID       string
	TermID        string
	SubjectID     string
	ExamID        string
	EduSysID      string
	StageID       string
	ExamGradeType int
}

// Ack is the service's answer to a submission.
type Ack struct {
	Message string
}
