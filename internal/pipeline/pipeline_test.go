package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"student-analytics/internal/dataset"
	"student-analytics/internal/predict"
	"student-analytics/internal/report"
	"student-analytics/internal/visualize"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{
		Students:  200,
		Seed:      42,
		DataPath:  filepath.Join(dir, "data", "student_data.csv"),
		ModelPath: filepath.Join(dir, "models", "risk_predictor.gob"),
		OutDir:    filepath.Join(dir, "reports"),
	}
}

func TestRunFullPipeline(t *testing.T) {
	opts := testOptions(t)

	res, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Students != 200 {
		t.Errorf("Students = %d, want 200", res.Students)
	}
	if res.AtRisk <= 0 {
		t.Error("Expected some at-risk students in the synthetic cohort")
	}
	if res.Accuracy < 0.7 {
		t.Errorf("Accuracy = %v, want >= 0.7", res.Accuracy)
	}
	if res.Uploaded != nil {
		t.Errorf("Expected no uploads without a publish target, got %v", res.Uploaded)
	}

	// Dataset artifacts
	records, err := dataset.ReadCSV(opts.DataPath)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(records) != 200 {
		t.Errorf("Persisted %d records, want 200", len(records))
	}
	xlsxPath := strings.TrimSuffix(opts.DataPath, ".csv") + ".xlsx"
	if _, err := os.Stat(xlsxPath); err != nil {
		t.Errorf("Missing XLSX sibling: %v", err)
	}

	// Model artifact
	if _, err := predict.Load(opts.ModelPath); err != nil {
		t.Errorf("Load() error = %v", err)
	}

	// Report artifacts
	content, err := os.ReadFile(filepath.Join(opts.OutDir, report.FileName))
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if !strings.Contains(string(content), "Student Performance Report") {
		t.Error("Report is missing its title")
	}
	if strings.Contains(string(content), "Risk Drift") {
		t.Error("First run should have no drift section")
	}
	for _, chart := range res.Charts {
		if _, err := os.Stat(filepath.Join(opts.OutDir, chart)); err != nil {
			t.Errorf("Missing chart %s: %v", chart, err)
		}
	}
	if _, err := os.Stat(filepath.Join(opts.OutDir, filepath.Base(opts.DataPath))); err != nil {
		t.Errorf("Dataset not staged next to the report: %v", err)
	}
}

func TestRunComputesDriftFromPreviousSnapshot(t *testing.T) {
	opts := testOptions(t)

	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatalf("First Run() error = %v", err)
	}

	// Second run with a different seed diffs against the persisted snapshot.
	opts.Seed = 7
	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatalf("Second Run() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(opts.OutDir, report.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "Week-over-Week Risk Drift") {
		t.Error("Second run should include the drift section")
	}
}

func TestRunWithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	if opts.Students != 200 {
		t.Errorf("Students default = %d, want 200", opts.Students)
	}
	if opts.DataPath != "data/processed/student_data.csv" {
		t.Errorf("DataPath default = %q", opts.DataPath)
	}
	if opts.ModelPath != "models/risk_predictor.gob" {
		t.Errorf("ModelPath default = %q", opts.ModelPath)
	}
	if opts.OutDir != "reports" {
		t.Errorf("OutDir default = %q", opts.OutDir)
	}
}

func TestRunRendersImportanceChart(t *testing.T) {
	opts := testOptions(t)

	res, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	found := false
	for _, chart := range res.Charts {
		if chart == visualize.FeatureImportancePNG {
			found = true
		}
	}
	if !found {
		t.Errorf("Charts %v missing %s", res.Charts, visualize.FeatureImportancePNG)
	}
}
