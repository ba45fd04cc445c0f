package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"student-analytics/internal/analyze"
	"student-analytics/internal/dataset"
	"student-analytics/internal/domain"
	"student-analytics/internal/gen"
	"student-analytics/internal/predict"
	"student-analytics/internal/publish"
	"student-analytics/internal/report"
	"student-analytics/internal/visualize"
)

// Options configures one full pipeline run.
type Options struct {
	// Students and Seed drive synthetic generation. When DataURL is set the
	// dataset is fetched instead of generated.
	Students int
	Seed     int64
	DataURL  string

	// PrevDataPath is an explicit snapshot to diff against. When empty, the
	// existing file at DataPath (from the previous run) is used.
	PrevDataPath string

	DataPath  string
	ModelPath string
	OutDir    string

	Train predict.TrainOptions

	// Publish, when non-nil, uploads OutDir to the static hosting target
	// after a successful run.
	Publish *publish.Config
}

func (o Options) withDefaults() Options {
	if o.Students <= 0 {
		o.Students = 200
	}
	if o.DataPath == "" {
		o.DataPath = "data/processed/student_data.csv"
	}
	if o.ModelPath == "" {
		o.ModelPath = "models/risk_predictor.gob"
	}
	if o.OutDir == "" {
		o.OutDir = "reports"
	}
	return o
}

// Result summarizes a pipeline run. Field names double as the keys used in
// run logs.
type Result struct {
	Students  int      `json:"students"`
	AtRisk    int      `json:"at_risk"`
	Accuracy  float64  `json:"accuracy"`
	F1        float64  `json:"f1"`
	DataPath  string   `json:"data_path"`
	ModelPath string   `json:"model_path"`
	Report    string   `json:"report"`
	Charts    []string `json:"charts"`
	Uploaded  []string `json:"uploaded"`
	Elapsed   string   `json:"elapsed"`
}

// Run executes the whole flow: acquire records, persist the dataset, train
// the risk model, render charts, write the HTML report and optionally
// publish everything.
func Run(ctx context.Context, opts Options) (Result, error) {
	opts = opts.withDefaults()
	start := time.Now()

	prev := loadPrevious(ctx, opts)

	records, err := acquire(ctx, opts)
	if err != nil {
		return Result{}, err
	}

	if err := persistDataset(opts.DataPath, records); err != nil {
		return Result{}, err
	}

	p := predict.New()
	metrics, err := p.Train(records, opts.Train)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: train: %w", err)
	}
	if err := p.Save(opts.ModelPath); err != nil {
		return Result{}, fmt.Errorf("pipeline: save model: %w", err)
	}

	imps, err := p.FeatureImportance()
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: importances: %w", err)
	}

	charts, err := visualize.RenderAll(ctx, records, imps, opts.OutDir)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: charts: %w", err)
	}

	var drift *analyze.DriftReport
	if prev != nil {
		d := analyze.Drift(prev, records)
		drift = &d
	}

	data := report.Build(records, p, charts, drift)
	reportPath := filepath.Join(opts.OutDir, report.FileName)
	if err := report.Write(reportPath, data); err != nil {
		return Result{}, fmt.Errorf("pipeline: report: %w", err)
	}

	// The published site carries the dataset next to the report.
	if err := copyFile(opts.DataPath, filepath.Join(opts.OutDir, filepath.Base(opts.DataPath))); err != nil {
		return Result{}, fmt.Errorf("pipeline: stage dataset: %w", err)
	}

	res := Result{
		Students:  len(records),
		AtRisk:    len(analyze.New(records).AtRisk(domain.PassingGrade)),
		Accuracy:  metrics.Accuracy,
		F1:        metrics.F1,
		DataPath:  opts.DataPath,
		ModelPath: opts.ModelPath,
		Report:    reportPath,
		Charts:    charts,
		Elapsed:   time.Since(start).Round(time.Millisecond).String(),
	}

	if opts.Publish != nil {
		uploaded, err := publish.UploadDir(ctx, *opts.Publish, opts.OutDir)
		if err != nil {
			return res, fmt.Errorf("pipeline: publish: %w", err)
		}
		res.Uploaded = uploaded
	}

	return res, nil
}

// acquire fetches the dataset from DataURL when configured, otherwise
// generates a fresh synthetic cohort.
func acquire(ctx context.Context, opts Options) ([]domain.StudentRecord, error) {
	if opts.DataURL != "" {
		records, err := dataset.Load(ctx, opts.DataURL)
		if err != nil {
			return nil, fmt.Errorf("pipeline: fetch dataset: %w", err)
		}
		return records, nil
	}
	return gen.New(uint64(opts.Seed)).Students(opts.Students), nil
}

// loadPrevious reads last week's snapshot for the drift section. A missing
// or unreadable snapshot just disables drift.
func loadPrevious(ctx context.Context, opts Options) []domain.StudentRecord {
	src := opts.PrevDataPath
	if src == "" {
		src = opts.DataPath
	}
	if _, err := os.Stat(src); err != nil {
		return nil
	}
	prev, err := dataset.Load(ctx, src)
	if err != nil {
		return nil
	}
	return prev
}

// persistDataset writes the CSV of record plus an XLSX sibling for people
// who want to open the cohort in a spreadsheet.
func persistDataset(path string, records []domain.StudentRecord) error {
	if err := dataset.WriteCSV(path, records); err != nil {
		return fmt.Errorf("pipeline: write csv: %w", err)
	}
	xlsxPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
	if err := dataset.WriteXLSX(xlsxPath, records); err != nil {
		return fmt.Errorf("pipeline: write xlsx: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
