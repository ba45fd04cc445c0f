package visualize

import (
	"context"
	"errors"
	"path/filepath"

	"student-analytics/internal/analyze"
	"student-analytics/internal/concurrency"
	"student-analytics/internal/domain"
	"student-analytics/internal/predict"
)

type chartTask struct {
	file   string
	render func(path string) error
}

// RenderAll renders the full chart set into outDir and returns the generated
// file names. The feature importance chart is skipped when imps is empty
// (no trained model available). Charts are independent, so they render in
// parallel.
func RenderAll(ctx context.Context, records []domain.StudentRecord, imps []predict.Importance, outDir string) ([]string, error) {
	dist := analyze.New(records).Distribution()

	tasks := []chartTask{
		{GradeDistributionPNG, func(path string) error { return GradeHistogram(records, path) }},
		{CorrelationHeatmapPNG, func(path string) error { return CorrelationHeatmap(records, path) }},
		{RiskComparisonPNG, func(path string) error { return RiskComparison(records, path) }},
		{PerformanceCategoriesPNG, func(path string) error { return PerformanceCategories(dist, path) }},
	}
	if len(imps) > 0 {
		tasks = append(tasks, chartTask{FeatureImportancePNG, func(path string) error { return FeatureImportance(imps, path) }})
	}

	errs := concurrency.ForEach(ctx, tasks, concurrency.ParallelOptions{MaxWorkers: 4},
		func(ctx context.Context, _ int, t chartTask) error {
			return t.render(filepath.Join(outDir, t.file))
		})
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	files := make([]string, len(tasks))
	for i, t := range tasks {
		files[i] = t.file
	}
	return files, nil
}
