package dataset

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "students.xlsx")
	records := sampleRecords()

	if err := WriteXLSX(tempFile, records); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenFile(tempFile)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}

	if len(rows) != len(records)+1 {
		t.Fatalf("Expected %d rows (header + records), got %d", len(records)+1, len(rows))
	}
	if rows[0][0] != "student_id" || rows[0][len(Header)-1] != "at_risk" {
		t.Errorf("Unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "STU0001" {
		t.Errorf("Expected first data row to start with STU0001, got %q", rows[1][0])
	}
	if rows[2][len(Header)-1] != "1" {
		t.Errorf("Expected at-risk flag '1' for second record, got %q", rows[2][len(Header)-1])
	}
}
