package sheets

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alzaabi555/rased/internal/classroom"
)

// Arabic labels written to exported sheets.
var statusLabels = map[classroom.AttendanceStatus]string{
	classroom.StatusPresent: "حاضر",
	classroom.StatusAbsent:  "غائب",
	classroom.StatusLate:    "متأخر",
	classroom.StatusTruant:  "تسرب",
}

const maxSheetName = 31

// ExportGrades writes one row per student of class with their semester
// report: each continuous tool, the final exam and the total.
func ExportGrades(w io.Writer, students []classroom.Student, class string, tools []classroom.AssessmentTool, settings classroom.GradeSettings, sem classroom.Semester) error {
	members := classroom.StudentsInClass(students, class)

	header := []any{"م", "اسم الطالب"}
	var final string
	if len(tools) > 0 {
		probe := classroom.BuildReport(classroom.Student{}, tools, settings, sem)
		for _, row := range probe.Continuous {
			header = append(header, row.Tool)
		}
		final = probe.Final.Tool
		header = append(header, final)
	}
	header = append(header, "المجموع", "نقاط إيجابية", "نقاط سلبية")

	rows := make([][]any, 0, len(members))
	for i, s := range members {
		r := classroom.BuildReport(s, tools, settings, sem)
		row := []any{i + 1, s.Name}
		if len(tools) > 0 {
			for _, c := range r.Continuous {
				row = append(row, score(c))
			}
			row = append(row, score(r.Final))
		}
		row = append(row, r.Total, r.PositivePoints, r.NegativePoints)
		rows = append(rows, row)
	}
	return writeSheet(w, class, header, rows)
}

// ExportAttendance writes a class register: one column per date, then the
// absence, late and truancy counts over those dates.
func ExportAttendance(w io.Writer, students []classroom.Student, class string, dates []string) error {
	members := classroom.StudentsInClass(students, class)

	header := []any{"م", "اسم الطالب"}
	for _, d := range dates {
		header = append(header, d)
	}
	header = append(header, "غياب", "تأخير", "تسرب")

	rows := make([][]any, 0, len(members))
	for i, s := range members {
		row := []any{i + 1, s.Name}
		var absent, late, truant int
		for _, d := range dates {
			status, ok := classroom.AttendanceOn(s, d)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, statusLabels[status])
			switch status {
			case classroom.StatusAbsent:
				absent++
			case classroom.StatusLate:
				late++
			case classroom.StatusTruant:
				truant++
			}
		}
		row = append(row, absent, late, truant)
		rows = append(rows, row)
	}
	return writeSheet(w, class, header, rows)
}

func score(r classroom.ReportRow) any {
	if !r.Recorded {
		return ""
	}
	return r.Score
}

func writeSheet(w io.Writer, class string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetName(class)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	rtl := true
	if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return fmt.Errorf("set sheet view: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 28); err != nil {
		return fmt.Errorf("set width: %w", err)
	}

	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sheetName makes class usable as a worksheet name.
func sheetName(class string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(class))
	if name == "" {
		return "Sheet1"
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}
