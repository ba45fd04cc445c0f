package visualize

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"student-analytics/internal/analyze"
	"student-analytics/internal/domain"
	"student-analytics/internal/predict"
)

// Chart file names inside the output directory. The HTML report references
// them by these exact names.
const (
	GradeDistributionPNG     = "grade_distribution.png"
	CorrelationHeatmapPNG    = "correlation_heatmap.png"
	RiskComparisonPNG        = "risk_comparison.png"
	PerformanceCategoriesPNG = "performance_categories.png"
	FeatureImportancePNG     = "feature_importance.png"
)

var (
	colorBar      = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff} // blue
	colorMeanLine = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff} // red
	colorImport   = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff} // sky blue
)

// GradeHistogram renders the final grade distribution with a dashed mean line.
func GradeHistogram(records []domain.StudentRecord, path string) error {
	if len(records) == 0 {
		return fmt.Errorf("visualize: empty dataset")
	}

	grades := make(plotter.Values, len(records))
	for i, r := range records {
		grades[i] = r.FinalGrade
	}

	p := plot.New()
	p.Title.Text = "Distribution of Final Grades"
	p.X.Label.Text = "Final Grade"
	p.Y.Label.Text = "Number of Students"

	h, err := plotter.NewHist(grades, 20)
	if err != nil {
		return fmt.Errorf("visualize: histogram: %w", err)
	}
	h.FillColor = colorBar
	p.Add(h)

	mean := stat.Mean(grades, nil)
	_, _, _, ymax := h.DataRange()

	meanLine, err := plotter.NewLine(plotter.XYs{{X: mean, Y: 0}, {X: mean, Y: ymax}})
	if err != nil {
		return fmt.Errorf("visualize: mean line: %w", err)
	}
	meanLine.LineStyle.Color = colorMeanLine
	meanLine.LineStyle.Width = vg.Points(2)
	meanLine.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(meanLine)
	p.Legend.Add(fmt.Sprintf("Mean: %.2f", mean), meanLine)
	p.Legend.Top = true

	return save(p, 10*vg.Inch, 6*vg.Inch, path)
}

// heatmap feature set, matching the original chart: the model features minus
// late submissions, plus the final grade.
var heatmapColumns = []string{
	"attendance_rate",
	"avg_assignment_score",
	"avg_quiz_score",
	"forum_posts",
	"time_on_platform",
	"final_grade",
}

type corrGrid struct {
	m [][]float64
}

func (g corrGrid) Dims() (c, r int)   { return len(g.m), len(g.m) }
func (g corrGrid) Z(c, r int) float64 { return g.m[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// CorrelationHeatmap renders the pairwise feature correlation matrix.
func CorrelationHeatmap(records []domain.StudentRecord, path string) error {
	if len(records) < 2 {
		return fmt.Errorf("visualize: need at least 2 records for correlations")
	}

	m := analyze.New(records).CorrelationMatrix(heatmapColumns)

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	pal := cm.Palette(255)

	p := plot.New()
	p.Title.Text = "Feature Correlation Heatmap"
	p.Add(plotter.NewHeatMap(corrGrid{m: m}, pal))

	ticks := make([]plot.Tick, len(heatmapColumns))
	for i, name := range heatmapColumns {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = draw.XRight

	// Annotate each cell with its value.
	var xys plotter.XYs
	var labels []string
	for r := range m {
		for c := range m[r] {
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			labels = append(labels, fmt.Sprintf("%.2f", m[r][c]))
		}
	}
	annot, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("visualize: heatmap labels: %w", err)
	}
	p.Add(annot)

	return save(p, 10*vg.Inch, 8*vg.Inch, path)
}

// RiskComparison renders a 2x2 panel of box plots comparing at-risk and
// not-at-risk students across four metrics.
func RiskComparison(records []domain.StudentRecord, path string) error {
	if len(records) == 0 {
		return fmt.Errorf("visualize: empty dataset")
	}

	metrics := []struct {
		title string
		get   func(domain.StudentRecord) float64
	}{
		{"Attendance Rate", func(r domain.StudentRecord) float64 { return r.AttendanceRate }},
		{"Average Assignment Score", func(r domain.StudentRecord) float64 { return r.AvgAssignmentScore }},
		{"Forum Posts", func(r domain.StudentRecord) float64 { return float64(r.ForumPosts) }},
		{"Time on Platform (hours/week)", func(r domain.StudentRecord) float64 { return r.TimeOnPlatform }},
	}

	plots := make([][]*plot.Plot, 2)
	for i := range plots {
		plots[i] = make([]*plot.Plot, 2)
	}

	for idx, metric := range metrics {
		var healthy, atRisk plotter.Values
		for _, r := range records {
			if r.AtRisk {
				atRisk = append(atRisk, metric.get(r))
			} else {
				healthy = append(healthy, metric.get(r))
			}
		}

		p := plot.New()
		p.Title.Text = metric.title
		p.Y.Label.Text = metric.title
		p.NominalX("Not At Risk", "At Risk")

		for loc, vals := range []plotter.Values{healthy, atRisk} {
			if len(vals) == 0 {
				continue
			}
			box, err := plotter.NewBoxPlot(vg.Points(40), float64(loc), vals)
			if err != nil {
				return fmt.Errorf("visualize: box plot %s: %w", metric.title, err)
			}
			p.Add(box)
		}

		plots[idx/2][idx%2] = p
	}

	img := vgimg.New(14*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}

	return writePNG(img, path)
}

// FeatureImportance renders model importances as horizontal bars, most
// important on top.
func FeatureImportance(imps []predict.Importance, path string) error {
	if len(imps) == 0 {
		return fmt.Errorf("visualize: no feature importances")
	}

	// Reverse so the highest score renders at the top of the axis.
	vals := make(plotter.Values, len(imps))
	names := make([]string, len(imps))
	for i, imp := range imps {
		j := len(imps) - 1 - i
		vals[j] = imp.Score
		names[j] = imp.Feature
	}

	p := plot.New()
	p.Title.Text = "Feature Importance for Risk Prediction"
	p.X.Label.Text = "Importance"

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return fmt.Errorf("visualize: importance bars: %w", err)
	}
	bars.Horizontal = true
	bars.Color = colorImport
	p.Add(bars)
	p.NominalY(names...)

	return save(p, 10*vg.Inch, 6*vg.Inch, path)
}

// PerformanceCategories renders the performance band counts as a bar chart.
func PerformanceCategories(dist analyze.Distribution, path string) error {
	vals := plotter.Values{
		float64(dist.Excellent),
		float64(dist.Good),
		float64(dist.Satisfactory),
		float64(dist.Poor),
	}

	p := plot.New()
	p.Title.Text = "Student Performance Distribution"
	p.Y.Label.Text = "Number of Students"

	bars, err := plotter.NewBarChart(vals, vg.Points(50))
	if err != nil {
		return fmt.Errorf("visualize: category bars: %w", err)
	}
	bars.Color = colorBar
	p.Add(bars)
	p.NominalX("Excellent (>=90)", "Good (75-89)", "Satisfactory (60-74)", "Poor (<60)")

	return save(p, 10*vg.Inch, 8*vg.Inch, path)
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("visualize: save %s: %w", path, err)
	}
	return nil
}

func writePNG(img *vgimg.Canvas, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("visualize: create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("visualize: write %s: %w", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("visualize: mkdir %s: %w", dir, err)
		}
	}
	return nil
}
