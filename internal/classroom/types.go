package classroom

import "strings"

// Semester is the school term a record belongs to ("1" or "2").
type Semester string

const (
	SemesterFirst  Semester = "1"
	SemesterSecond Semester = "2"
)

// Normalize maps an empty or unknown semester to the first term. Records
// written before semesters existed carry no value and count as term one.
func (s Semester) Normalize() Semester {
	if s == SemesterSecond {
		return SemesterSecond
	}
	return SemesterFirst
}

// AttendanceStatus is the state recorded for a student on a given date.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusTruant  AttendanceStatus = "truant"
)

// Valid reports whether the status is one of the known values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusTruant:
		return true
	}
	return false
}

// BehaviorType separates rewarded from penalised behaviour.
type BehaviorType string

const (
	BehaviorPositive BehaviorType = "positive"
	BehaviorNegative BehaviorType = "negative"
)

// Gender is optional student metadata used by reports and certificates.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// AttendanceRecord is one attendance mark. At most one exists per date.
type AttendanceRecord struct {
	Date   string           `json:"date"`
	Status AttendanceStatus `json:"status"`
	Period string           `json:"period,omitempty"`
}

// BehaviorRecord is an awarded or deducted behaviour entry.
type BehaviorRecord struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Type        BehaviorType `json:"type"`
	Description string       `json:"description"`
	Points      int          `json:"points"`
	Semester    Semester     `json:"semester,omitempty"`
	Period      string       `json:"period,omitempty"`
}

// GradeRecord is a single assessment score.
type GradeRecord struct {
	ID       string   `json:"id"`
	Subject  string   `json:"subject"`
	Category string   `json:"category"`
	Score    float64  `json:"score"`
	MaxScore float64  `json:"maxScore"`
	Date     string   `json:"date"`
	Semester Semester `json:"semester,omitempty"`
}

// Student is the central roster entity.
type Student struct {
	ID          string             `json:"id" validate:"required"`
	Name        string             `json:"name" validate:"required"`
	MinistryID  string             `json:"ministryId,omitempty"`
	Gender      Gender             `json:"gender,omitempty"`
	Grade       string             `json:"grade"`
	Classes     []string           `json:"classes"`
	Attendance  []AttendanceRecord `json:"attendance"`
	Behaviors   []BehaviorRecord   `json:"behaviors"`
	Grades      []GradeRecord      `json:"grades"`
	ParentPhone string             `json:"parentPhone,omitempty"`
	Avatar      string             `json:"avatar,omitempty"`
	SpentCoins  int                `json:"spentCoins,omitempty"`
	GroupID     string             `json:"groupId,omitempty"`
}

// InClass reports whether the student is a member of the named class.
func (s Student) InClass(class string) bool {
	class = strings.TrimSpace(class)
	for _, c := range s.Classes {
		if strings.TrimSpace(c) == class {
			return true
		}
	}
	return false
}

// Group is a competition team students can be assigned to.
type Group struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ScheduleDay holds the class taught in each period of one weekday.
type ScheduleDay struct {
	DayName string   `json:"dayName"`
	Periods []string `json:"periods"`
}

// PeriodTime is the bell schedule for one period ("07:30"-"08:10").
type PeriodTime struct {
	PeriodNumber int    `json:"periodNumber"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// TeacherInfo is the teacher profile printed on reports.
type TeacherInfo struct {
	Name        string `json:"name"`
	School      string `json:"school"`
	Subject     string `json:"subject"`
	Governorate string `json:"governorate"`
	Avatar      string `json:"avatar,omitempty"`
}

// AssessmentTool is a gradebook column.
type AssessmentTool struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	MaxScore float64 `json:"maxScore"`
	IsFinal  bool    `json:"isFinal,omitempty"`
}

// GradeSettings describes how a semester total is composed.
type GradeSettings struct {
	TotalScore     float64 `json:"totalScore"`
	FinalExamScore float64 `json:"finalExamScore"`
	FinalExamName  string  `json:"finalExamName"`
}

// CertificateSettings configures generated appreciation certificates.
type CertificateSettings struct {
	Title             string `json:"title"`
	BodyText          string `json:"bodyText"`
	BackgroundImage   string `json:"backgroundImage,omitempty"`
	ShowDefaultDesign bool   `json:"showDefaultDesign"`
}
