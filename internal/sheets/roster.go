package sheets

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alzaabi555/rased/internal/classroom"
)

var (
	// ErrEmpty is returned when a workbook has no usable student rows.
	ErrEmpty = errors.New("sheets: no student rows found")
	// ErrNoClass is returned when the import has no target class.
	ErrNoClass = errors.New("sheets: target class is required")
)

var (
	nameKeywords  = []string{"الاسم", "اسم الطالب", "اسم", "name", "student", "full name", "المتعلم"}
	phoneKeywords = []string{"جوال", "هاتف", "phone", "mobile", "contact", "تواصل", "ولي", "parent", "رقم", "cell"}
	gradeKeywords = []string{"الصف", "صف", "grade", "level", "المرحلة"}
)

const phoneSampleRows = 10

var (
	zeroWidth   = strings.NewReplacer("\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "")
	nonPhone    = regexp.MustCompile(`[^0-9+]`)
	phoneNumber = regexp.MustCompile(`^\+?\d{7,15}$`)
)

// Columns records which header each roster field was read from. A negative
// index means the column was not found.
type Columns struct {
	Name  int
	Phone int
	Grade int
}

// RosterImport is the result of ImportRoster.
type RosterImport struct {
	Students []classroom.Student
	Headers  []string
	Columns  Columns
	Skipped  int
}

// ImportRoster reads students from the first sheet of an xlsx workbook and
// assigns them to class. The first row is the header. Columns are found by
// keyword; when no header names a phone column the first column whose
// sample rows look like phone numbers is used, else the column after the
// name.
func ImportRoster(r io.Reader, class string) (RosterImport, error) {
	class = strings.TrimSpace(class)
	if class == "" {
		return RosterImport{}, ErrNoClass
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return RosterImport{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return RosterImport{}, errors.New("sheets: workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return RosterImport{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return RosterImport{}, ErrEmpty
	}

	headers := rows[0]
	data := slices.DeleteFunc(slices.Clone(rows[1:]), blankRow)
	if len(data) == 0 {
		return RosterImport{}, ErrEmpty
	}

	cols := detectColumns(headers, data)
	out := RosterImport{Headers: slices.Clone(headers), Columns: cols}
	for _, row := range data {
		name := strings.TrimSpace(cell(row, cols.Name))
		if name == "" || slices.Contains(nameKeywords, cleanHeader(name)) {
			out.Skipped++
			continue
		}
		s := classroom.NewStudent(name, class)
		s.ParentPhone = cleanPhone(cell(row, cols.Phone))
		s.Grade = strings.TrimSpace(cell(row, cols.Grade))
		out.Students = append(out.Students, s)
	}
	if len(out.Students) == 0 {
		return out, ErrEmpty
	}
	return out, nil
}

func detectColumns(headers []string, data [][]string) Columns {
	cols := Columns{
		Name:  findHeader(headers, nameKeywords),
		Phone: findHeader(headers, phoneKeywords),
		Grade: findHeader(headers, gradeKeywords),
	}
	if cols.Name < 0 {
		cols.Name = 0
	}
	if cols.Phone >= 0 {
		return cols
	}

	limit := min(len(data), phoneSampleRows)
	for i := range headers {
		if i == cols.Name {
			continue
		}
		matches := 0
		for _, row := range data[:limit] {
			if looksLikePhone(cell(row, i)) {
				matches++
			}
		}
		if float64(matches) >= float64(limit)*0.3 {
			cols.Phone = i
			return cols
		}
	}
	if cols.Name+1 < len(headers) {
		cols.Phone = cols.Name + 1
	}
	return cols
}

func findHeader(headers []string, keywords []string) int {
	for i, h := range headers {
		clean := cleanHeader(h)
		if clean == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(clean, kw) {
				return i
			}
		}
	}
	return -1
}

func cleanHeader(h string) string {
	return strings.ToLower(zeroWidth.Replace(strings.TrimSpace(h)))
}

func cleanPhone(raw string) string {
	return nonPhone.ReplaceAllString(strings.TrimSpace(raw), "")
}

func looksLikePhone(v string) bool {
	return phoneNumber.MatchString(cleanPhone(v))
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
