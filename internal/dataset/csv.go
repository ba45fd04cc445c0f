package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"student-analytics/internal/domain"
)

// Dataset CSV template. Keep header order EXACT: external consumers and the
// weekly job both rely on it.
var Header = []string{
	"student_id",
	"name",
	"age",
	"attendance_rate",
	"avg_assignment_score",
	"avg_quiz_score",
	"forum_posts",
	"time_on_platform",
	"n_late_submissions",
	"final_grade",
	"at_risk",
}

// Columns that must be present when loading an external CSV. name and age are
// optional: the documented exchange schema omits them.
var requiredColumns = []string{
	"student_id",
	"attendance_rate",
	"avg_assignment_score",
	"avg_quiz_score",
	"forum_posts",
	"time_on_platform",
	"n_late_submissions",
	"final_grade",
	"at_risk",
}

// WriteCSV writes the dataset to path, creating parent directories as needed.
func WriteCSV(path string, records []domain.StudentRecord) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dataset: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", path, err)
	}
	defer f.Close()

	if err := writeCSV(f, records); err != nil {
		return fmt.Errorf("dataset: write %s: %w", path, err)
	}
	return nil
}

func writeCSV(w io.Writer, records []domain.StudentRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, s := range records {
		if err := cw.Write(toRow(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toRow(s domain.StudentRecord) []string {
	return []string{
		s.StudentID,
		s.Name,
		strconv.Itoa(s.Age),
		floatToString(s.AttendanceRate),
		floatToString(s.AvgAssignmentScore),
		floatToString(s.AvgQuizScore),
		strconv.Itoa(s.ForumPosts),
		floatToString(s.TimeOnPlatform),
		strconv.Itoa(s.LateSubmissions),
		floatToString(s.FinalGrade),
		boolToFlag(s.AtRisk),
	}
}

// ReadCSV loads a dataset from a local file.
func ReadCSV(path string) ([]domain.StudentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}
	return records, nil
}

func parseCSV(r io.Reader) ([]domain.StudentRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var records []domain.StudentRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		s, err := fromRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, s)
	}

	return records, nil
}

func fromRow(row []string, idx map[string]int) (domain.StudentRecord, error) {
	var s domain.StudentRecord
	var err error

	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	s.StudentID = get("student_id")
	if s.StudentID == "" {
		return s, fmt.Errorf("empty student_id")
	}
	s.Name = get("name")

	if v := get("age"); v != "" {
		if s.Age, err = strconv.Atoi(v); err != nil {
			return s, fmt.Errorf("bad age %q: %w", v, err)
		}
	}
	if s.AttendanceRate, err = parseFloat(get("attendance_rate"), "attendance_rate"); err != nil {
		return s, err
	}
	if s.AvgAssignmentScore, err = parseFloat(get("avg_assignment_score"), "avg_assignment_score"); err != nil {
		return s, err
	}
	if s.AvgQuizScore, err = parseFloat(get("avg_quiz_score"), "avg_quiz_score"); err != nil {
		return s, err
	}
	if s.ForumPosts, err = parseInt(get("forum_posts"), "forum_posts"); err != nil {
		return s, err
	}
	if s.TimeOnPlatform, err = parseFloat(get("time_on_platform"), "time_on_platform"); err != nil {
		return s, err
	}
	if s.LateSubmissions, err = parseInt(get("n_late_submissions"), "n_late_submissions"); err != nil {
		return s, err
	}
	if s.FinalGrade, err = parseFloat(get("final_grade"), "final_grade"); err != nil {
		return s, err
	}

	risk := get("at_risk")
	b, err := strconv.ParseBool(risk)
	if err != nil {
		return s, fmt.Errorf("bad at_risk %q: %w", risk, err)
	}
	s.AtRisk = b

	return s, nil
}

func parseFloat(v, col string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", col, v, err)
	}
	return f, nil
}

func parseInt(v, col string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", col, v, err)
	}
	return n, nil
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boolToFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
