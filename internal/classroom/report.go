package classroom

import "strings"

// ReportRow is one assessment line of a student report.
type ReportRow struct {
	Tool     string
	Score    float64
	MaxScore float64
	Recorded bool
}

// Report is the per-semester summary printed on a report card.
type Report struct {
	Student        Student
	Semester       Semester
	Continuous     []ReportRow
	Final          ReportRow
	ContinuousSum  float64
	Total          float64
	MaxTotal       float64
	PositivePoints int
	NegativePoints int
	Absences       int
	Truancies      int
}

// BuildReport computes a student's semester totals. The final exam tool is
// the one flagged IsFinal, else the tool named in settings. With no tools
// configured every grade of the semester counts toward the total.
func BuildReport(s Student, tools []AssessmentTool, settings GradeSettings, sem Semester) Report {
	sem = sem.Normalize()
	r := Report{
		Student:   s.Clone(),
		Semester:  sem,
		MaxTotal:  settings.TotalScore,
		Absences:  CountStatus(s, StatusAbsent),
		Truancies: CountStatus(s, StatusTruant),
	}
	if r.MaxTotal <= 0 {
		r.MaxTotal = 100
	}

	for _, b := range s.Behaviors {
		if b.Semester.Normalize() != sem {
			continue
		}
		switch b.Type {
		case BehaviorPositive:
			r.PositivePoints += b.Points
		case BehaviorNegative:
			r.NegativePoints += abs(b.Points)
		}
	}

	grades := GradesFor(s, sem)
	if len(tools) == 0 {
		for _, g := range grades {
			r.Continuous = append(r.Continuous, ReportRow{Tool: g.Category, Score: g.Score, MaxScore: g.MaxScore, Recorded: true})
			r.ContinuousSum += g.Score
		}
		r.Total = r.ContinuousSum
		return r
	}

	final := finalTool(tools, settings)
	for _, t := range tools {
		if (final.ID != "" && t.ID == final.ID) || strings.TrimSpace(t.Name) == strings.TrimSpace(final.Name) {
			continue
		}
		row := ReportRow{Tool: t.Name, MaxScore: t.MaxScore}
		if g, ok := GradeFor(s, t.Name, sem); ok {
			row.Score, row.Recorded = g.Score, true
			r.ContinuousSum += g.Score
		}
		r.Continuous = append(r.Continuous, row)
	}

	r.Final = ReportRow{Tool: final.Name, MaxScore: final.MaxScore}
	if r.Final.MaxScore == 0 {
		r.Final.MaxScore = settings.FinalExamScore
	}
	if g, ok := GradeFor(s, final.Name, sem); ok {
		r.Final.Score, r.Final.Recorded = g.Score, true
	}
	r.Total = r.ContinuousSum + r.Final.Score
	return r
}

func finalTool(tools []AssessmentTool, settings GradeSettings) AssessmentTool {
	for _, t := range tools {
		if t.IsFinal {
			return t
		}
	}
	name := strings.TrimSpace(settings.FinalExamName)
	if name == "" {
		name = DefaultFinalExamName
	}
	for _, t := range tools {
		if strings.TrimSpace(t.Name) == name {
			return t
		}
	}
	return AssessmentTool{Name: name}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
