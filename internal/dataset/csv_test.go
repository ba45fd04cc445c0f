package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"student-analytics/internal/domain"
)

func sampleRecords() []domain.StudentRecord {
	return []domain.StudentRecord{
		{
			StudentID:          "STU0001",
			Name:               "Alice Example",
			Age:                21,
			AttendanceRate:     0.95,
			AvgAssignmentScore: 88.5,
			AvgQuizScore:       81.2,
			ForumPosts:         12,
			TimeOnPlatform:     7.5,
			LateSubmissions:    0,
			FinalGrade:         86.88,
			AtRisk:             false,
		},
		{
			StudentID:          "STU0002",
			Name:               "Bob Example",
			Age:                24,
			AttendanceRate:     0.55,
			AvgAssignmentScore: 48,
			AvgQuizScore:       42.5,
			ForumPosts:         1,
			TimeOnPlatform:     2.1,
			LateSubmissions:    6,
			FinalGrade:         47.2,
			AtRisk:             true,
		},
	}
}

func TestWriteCSVHeaderAndRows(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "students.csv")

	if err := WriteCSV(tempFile, sampleRecords()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	content, err := os.ReadFile(tempFile)
	if err != nil {
		t.Fatalf("Failed to read test CSV file: %v", err)
	}
	csvContent := string(content)

	if !strings.Contains(csvContent, "student_id,name,age,attendance_rate,avg_assignment_score,avg_quiz_score,forum_posts,time_on_platform,n_late_submissions,final_grade,at_risk") {
		t.Error("CSV header is incorrect")
	}
	if !strings.Contains(csvContent, "STU0001,Alice Example,21,0.95,88.5,81.2,12,7.5,0,86.88,0") {
		t.Error("First record row is incorrect")
	}
	if !strings.Contains(csvContent, "STU0002,Bob Example,24,0.55,48,42.5,1,2.1,6,47.2,1") {
		t.Error("Second record row is incorrect")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "students.csv")
	want := sampleRecords()

	if err := WriteCSV(tempFile, want); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	got, err := ReadCSV(tempFile)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("ReadCSV() returned %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d differs after round trip:\ngot  %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

func TestReadCSVWithoutOptionalColumns(t *testing.T) {
	// The documented exchange schema has no name/age columns.
	tempFile := filepath.Join(t.TempDir(), "external.csv")
	csvData := "student_id,attendance_rate,avg_assignment_score,avg_quiz_score,forum_posts,time_on_platform,n_late_submissions,final_grade,at_risk\n" +
		"S1,0.8,70,65,4,6.5,2,68.5,0\n"

	if err := os.WriteFile(tempFile, []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadCSV(tempFile)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	s := records[0]
	if s.StudentID != "S1" || s.Name != "" || s.Age != 0 {
		t.Errorf("unexpected record: %+v", s)
	}
	if s.AttendanceRate != 0.8 || s.FinalGrade != 68.5 || s.AtRisk {
		t.Errorf("unexpected values: %+v", s)
	}
}

func TestReadCSVErrors(t *testing.T) {
	testCases := []struct {
		name          string
		csvData       string
		errorContains string
	}{
		{
			name:          "missing required column",
			csvData:       "student_id,attendance_rate\nS1,0.8\n",
			errorContains: "missing column",
		},
		{
			name: "bad numeric value",
			csvData: "student_id,attendance_rate,avg_assignment_score,avg_quiz_score,forum_posts,time_on_platform,n_late_submissions,final_grade,at_risk\n" +
				"S1,not-a-number,70,65,4,6.5,2,68.5,0\n",
			errorContains: "bad attendance_rate",
		},
		{
			name: "bad at_risk flag",
			csvData: "student_id,attendance_rate,avg_assignment_score,avg_quiz_score,forum_posts,time_on_platform,n_late_submissions,final_grade,at_risk\n" +
				"S1,0.8,70,65,4,6.5,2,68.5,maybe\n",
			errorContains: "bad at_risk",
		},
		{
			name: "empty student id",
			csvData: "student_id,attendance_rate,avg_assignment_score,avg_quiz_score,forum_posts,time_on_platform,n_late_submissions,final_grade,at_risk\n" +
				",0.8,70,65,4,6.5,2,68.5,0\n",
			errorContains: "empty student_id",
		},
	}

	for _, tc := range testCases {
		tempFile := filepath.Join(t.TempDir(), "bad.csv")
		if err := os.WriteFile(tempFile, []byte(tc.csvData), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := ReadCSV(tempFile)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.errorContains) {
			t.Errorf("%s: error %q does not contain %q", tc.name, err.Error(), tc.errorContains)
		}
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}
