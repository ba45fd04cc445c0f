package domain

// StudentRecord is the canonical per-student row inside this service.
// The generator produces it, the analyzer and predictor consume it read-only,
// and the dataset package maps it to/from the CSV column schema.
type StudentRecord struct {
	StudentID string
	Name      string
	Age       int

	AttendanceRate     float64 // 0..1
	AvgAssignmentScore float64 // 0..100
	AvgQuizScore       float64 // 0..100
	ForumPosts         int
	TimeOnPlatform     float64 // hours per week
	LateSubmissions    int

	FinalGrade float64 // 0..100
	AtRisk     bool
}

// Thresholds used by the labeling rule and the risk factor breakdown.
const (
	PassingGrade        = 60.0
	MinAttendanceRate   = 0.7
	LateSubmissionLimit = 5
	MinForumPosts       = 3
	MinPlatformHours    = 3.0
)

// ComputeAtRisk applies the labeling rule: a student is at risk when the
// final grade is failing or attendance is below the minimum.
func (s StudentRecord) ComputeAtRisk() bool {
	return s.FinalGrade < PassingGrade || s.AttendanceRate < MinAttendanceRate
}

// RiskFactors returns the human-readable reasons a student counts as at risk.
// Empty for students with no flagged metric.
func (s StudentRecord) RiskFactors() []string {
	var factors []string
	if s.FinalGrade < PassingGrade {
		factors = append(factors, "Low final grade")
	}
	if s.AttendanceRate < MinAttendanceRate {
		factors = append(factors, "Poor attendance")
	}
	if s.AvgAssignmentScore < PassingGrade {
		factors = append(factors, "Low assignment scores")
	}
	if s.AvgQuizScore < PassingGrade {
		factors = append(factors, "Low quiz scores")
	}
	if s.LateSubmissions > LateSubmissionLimit {
		factors = append(factors, "Frequent late submissions")
	}
	if s.ForumPosts < MinForumPosts {
		factors = append(factors, "Low engagement")
	}
	if s.TimeOnPlatform < MinPlatformHours {
		factors = append(factors, "Insufficient study time")
	}
	return factors
}

// Band buckets a final grade for the performance distribution.
type Band string

const (
	BandExcellent    Band = "excellent"    // >= 90
	BandGood         Band = "good"         // 75-89
	BandSatisfactory Band = "satisfactory" // 60-74
	BandPoor         Band = "poor"         // < 60
)

// GradeBand returns the performance band for a final grade.
func GradeBand(grade float64) Band {
	switch {
	case grade >= 90:
		return BandExcellent
	case grade >= 75:
		return BandGood
	case grade >= PassingGrade:
		return BandSatisfactory
	default:
		return BandPoor
	}
}

// FeatureColumns are the model inputs, in the order the predictor expects.
// Keep order EXACT: a saved model is only valid against this schema.
var FeatureColumns = []string{
	"attendance_rate",
	"avg_assignment_score",
	"avg_quiz_score",
	"forum_posts",
	"time_on_platform",
	"n_late_submissions",
}

// Features returns the numeric feature vector in FeatureColumns order.
func (s StudentRecord) Features() []float64 {
	return []float64{
		s.AttendanceRate,
		s.AvgAssignmentScore,
		s.AvgQuizScore,
		float64(s.ForumPosts),
		s.TimeOnPlatform,
		float64(s.LateSubmissions),
	}
}
