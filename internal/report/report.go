package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"student-analytics/internal/analyze"
	"student-analytics/internal/domain"
	"student-analytics/internal/predict"
)

// FileName is the report file inside the output directory.
const FileName = "index.html"

// Data is everything the HTML report renders. Model and drift sections are
// optional: nil pointers hide them.
type Data struct {
	RunID       string
	GeneratedAt time.Time

	Summary       analyze.Summary
	Distribution  analyze.Distribution
	Engagement    analyze.Engagement
	Correlations  []analyze.Correlation
	AtRisk        []analyze.AtRiskStudent
	TopPerformers []domain.StudentRecord

	Metrics    *predict.Metrics
	Importance []predict.Importance

	Drift *analyze.DriftReport

	// Chart file names, relative to the report location.
	Charts []string
}

// Build assembles report data from a dataset and an optional trained model.
func Build(records []domain.StudentRecord, p *predict.Predictor, charts []string, drift *analyze.DriftReport) Data {
	a := analyze.New(records)

	data := Data{
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		Summary:       a.Summary(),
		Distribution:  a.Distribution(),
		Engagement:    a.Engagement(),
		Correlations:  a.Correlations(),
		AtRisk:        a.AtRisk(domain.PassingGrade),
		TopPerformers: a.TopPerformers(10),
		Drift:         drift,
		Charts:        charts,
	}

	if p != nil {
		if m, err := p.Metrics(); err == nil {
			data.Metrics = &m
		}
		if imps, err := p.FeatureImportance(); err == nil {
			data.Importance = imps
		}
	}

	return data
}

// Write renders the report to path.
func Write(path string, data Data) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("report: render %s: %w", path, err)
	}
	return nil
}
