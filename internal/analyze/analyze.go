package analyze

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"student-analytics/internal/domain"
)

// Analyzer computes descriptive statistics over a student dataset.
// The dataset is read-only; all methods return derived values.
type Analyzer struct {
	records []domain.StudentRecord
}

func New(records []domain.StudentRecord) *Analyzer {
	return &Analyzer{records: records}
}

// Summary holds dataset-level summary statistics.
type Summary struct {
	TotalStudents      int     `json:"total_students"`
	AtRiskCount        int     `json:"at_risk_count"`
	AtRiskPercentage   float64 `json:"at_risk_percentage"`
	AvgFinalGrade      float64 `json:"avg_final_grade"`
	AvgAttendance      float64 `json:"avg_attendance"`
	AvgAssignmentScore float64 `json:"avg_assignment_score"`
	AvgQuizScore       float64 `json:"avg_quiz_score"`
	TotalForumPosts    int     `json:"total_forum_posts"`
	AvgTimeOnPlatform  float64 `json:"avg_time_on_platform"`
}

func (a *Analyzer) Summary() Summary {
	s := Summary{TotalStudents: len(a.records)}
	if len(a.records) == 0 {
		return s
	}

	for _, r := range a.records {
		if r.AtRisk {
			s.AtRiskCount++
		}
		s.TotalForumPosts += r.ForumPosts
	}

	s.AtRiskPercentage = round2(float64(s.AtRiskCount) / float64(len(a.records)) * 100)
	s.AvgFinalGrade = round2(stat.Mean(a.column(func(r domain.StudentRecord) float64 { return r.FinalGrade }), nil))
	s.AvgAttendance = round2(stat.Mean(a.column(func(r domain.StudentRecord) float64 { return r.AttendanceRate }), nil))
	s.AvgAssignmentScore = round2(stat.Mean(a.column(func(r domain.StudentRecord) float64 { return r.AvgAssignmentScore }), nil))
	s.AvgQuizScore = round2(stat.Mean(a.column(func(r domain.StudentRecord) float64 { return r.AvgQuizScore }), nil))
	s.AvgTimeOnPlatform = round2(stat.Mean(a.column(func(r domain.StudentRecord) float64 { return r.TimeOnPlatform }), nil))

	return s
}

// AtRiskStudent pairs a record with the reasons it is flagged.
type AtRiskStudent struct {
	domain.StudentRecord
	Factors []string
}

// AtRisk returns students below the grade threshold or the attendance floor,
// sorted by final grade ascending (most at risk first).
func (a *Analyzer) AtRisk(gradeThreshold float64) []AtRiskStudent {
	var out []AtRiskStudent
	for _, r := range a.records {
		if r.FinalGrade < gradeThreshold || r.AttendanceRate < domain.MinAttendanceRate {
			out = append(out, AtRiskStudent{StudentRecord: r, Factors: r.RiskFactors()})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FinalGrade < out[j].FinalGrade
	})
	return out
}

// TopPerformers returns the n students with the highest final grades.
func (a *Analyzer) TopPerformers(n int) []domain.StudentRecord {
	sorted := make([]domain.StudentRecord, len(a.records))
	copy(sorted, a.records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].FinalGrade > sorted[j].FinalGrade
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Correlation is a feature's Pearson correlation with the final grade.
type Correlation struct {
	Feature string  `json:"feature"`
	R       float64 `json:"correlation"`
}

// Correlations computes each feature's correlation with the final grade,
// sorted by absolute value descending.
func (a *Analyzer) Correlations() []Correlation {
	grades := a.column(func(r domain.StudentRecord) float64 { return r.FinalGrade })

	features := []struct {
		name string
		get  func(domain.StudentRecord) float64
	}{
		{"attendance_rate", func(r domain.StudentRecord) float64 { return r.AttendanceRate }},
		{"avg_assignment_score", func(r domain.StudentRecord) float64 { return r.AvgAssignmentScore }},
		{"avg_quiz_score", func(r domain.StudentRecord) float64 { return r.AvgQuizScore }},
		{"forum_posts", func(r domain.StudentRecord) float64 { return float64(r.ForumPosts) }},
		{"time_on_platform", func(r domain.StudentRecord) float64 { return r.TimeOnPlatform }},
		{"n_late_submissions", func(r domain.StudentRecord) float64 { return float64(r.LateSubmissions) }},
	}

	out := make([]Correlation, 0, len(features))
	for _, f := range features {
		r := stat.Correlation(a.column(f.get), grades, nil)
		out = append(out, Correlation{Feature: f.name, R: round3(r)})
	}

	sort.Slice(out, func(i, j int) bool {
		return math.Abs(out[i].R) > math.Abs(out[j].R)
	})
	return out
}

// CorrelationMatrix returns the pairwise correlation matrix for the given
// numeric columns (used by the heatmap).
func (a *Analyzer) CorrelationMatrix(columns []string) [][]float64 {
	series := make([][]float64, len(columns))
	for i, col := range columns {
		series[i] = a.namedColumn(col)
	}

	m := make([][]float64, len(columns))
	for i := range columns {
		m[i] = make([]float64, len(columns))
		for j := range columns {
			if i == j {
				m[i][j] = 1
				continue
			}
			m[i][j] = stat.Correlation(series[i], series[j], nil)
		}
	}
	return m
}

// Distribution summarizes how final grades spread across performance bands.
type Distribution struct {
	Excellent    int     `json:"excellent"`
	Good         int     `json:"good"`
	Satisfactory int     `json:"satisfactory"`
	Poor         int     `json:"poor"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Std          float64 `json:"std"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
}

func (a *Analyzer) Distribution() Distribution {
	var d Distribution
	if len(a.records) == 0 {
		return d
	}

	grades := a.column(func(r domain.StudentRecord) float64 { return r.FinalGrade })

	for _, g := range grades {
		switch domain.GradeBand(g) {
		case domain.BandExcellent:
			d.Excellent++
		case domain.BandGood:
			d.Good++
		case domain.BandSatisfactory:
			d.Satisfactory++
		default:
			d.Poor++
		}
	}

	d.Mean = round2(stat.Mean(grades, nil))
	d.Median = round2(median(grades))
	if len(grades) > 1 {
		d.Std = round2(stat.StdDev(grades, nil))
	}

	min, max := grades[0], grades[0]
	for _, g := range grades[1:] {
		if g < min {
			min = g
		}
		if g > max {
			max = g
		}
	}
	d.Min = round2(min)
	d.Max = round2(max)

	return d
}

// Engagement summarizes forum and platform usage.
type Engagement struct {
	AvgForumPosts    float64 `json:"avg_forum_posts"`
	MedianForumPosts float64 `json:"median_forum_posts"`
	HighlyEngaged    int     `json:"highly_engaged"`
	LowEngagement    int     `json:"low_engagement"`
	AvgPlatformTime  float64 `json:"avg_platform_time"`
}

func (a *Analyzer) Engagement() Engagement {
	var e Engagement
	if len(a.records) == 0 {
		return e
	}

	posts := a.column(func(r domain.StudentRecord) float64 { return float64(r.ForumPosts) })
	for _, r := range a.records {
		if r.ForumPosts > 10 {
			e.HighlyEngaged++
		}
		if r.ForumPosts < domain.MinForumPosts {
			e.LowEngagement++
		}
	}

	e.AvgForumPosts = round2(stat.Mean(posts, nil))
	e.MedianForumPosts = median(posts)
	e.AvgPlatformTime = round2(stat.Mean(a.column(func(r domain.StudentRecord) float64 { return r.TimeOnPlatform }), nil))

	return e
}

func (a *Analyzer) column(get func(domain.StudentRecord) float64) []float64 {
	out := make([]float64, len(a.records))
	for i, r := range a.records {
		out[i] = get(r)
	}
	return out
}

func (a *Analyzer) namedColumn(name string) []float64 {
	switch name {
	case "attendance_rate":
		return a.column(func(r domain.StudentRecord) float64 { return r.AttendanceRate })
	case "avg_assignment_score":
		return a.column(func(r domain.StudentRecord) float64 { return r.AvgAssignmentScore })
	case "avg_quiz_score":
		return a.column(func(r domain.StudentRecord) float64 { return r.AvgQuizScore })
	case "forum_posts":
		return a.column(func(r domain.StudentRecord) float64 { return float64(r.ForumPosts) })
	case "time_on_platform":
		return a.column(func(r domain.StudentRecord) float64 { return r.TimeOnPlatform })
	case "n_late_submissions":
		return a.column(func(r domain.StudentRecord) float64 { return float64(r.LateSubmissions) })
	case "final_grade":
		return a.column(func(r domain.StudentRecord) float64 { return r.FinalGrade })
	default:
		return make([]float64, len(a.records))
	}
}

// median interpolates between the middle two values for even-length input,
// matching the usual dataframe semantics (gonum's empirical quantile does not).
func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
