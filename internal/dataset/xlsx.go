package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"student-analytics/internal/domain"
)

const sheetName = "Students"

// WriteXLSX exports the dataset as an Excel workbook with the same column
// layout as the CSV.
func WriteXLSX(path string, records []domain.StudentRecord) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dataset: mkdir %s: %w", dir, err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("dataset: rename sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("dataset: write header: %w", err)
	}

	for i, s := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("dataset: cell name: %w", err)
		}
		row := []interface{}{
			s.StudentID,
			s.Name,
			s.Age,
			s.AttendanceRate,
			s.AvgAssignmentScore,
			s.AvgQuizScore,
			s.ForumPosts,
			s.TimeOnPlatform,
			s.LateSubmissions,
			s.FinalGrade,
			boolToFlag(s.AtRisk),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("dataset: write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("dataset: save %s: %w", path, err)
	}
	return nil
}
