package gen

import (
	"fmt"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"student-analytics/internal/domain"
)

const (
	assignmentsPerStudent = 10
	quizzesPerStudent     = 5
)

// Generator produces synthetic student records from fixed parameterized
// distributions. Same seed, same output.
type Generator struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

// New returns a generator seeded for reproducible output.
func New(seed uint64) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		faker: gofakeit.New(seed),
	}
}

// Students generates n synthetic student records.
//
// Attendance drives everything else: students with better attendance tend to
// score higher, post more, spend more time on the platform and submit late
// less often. The at-risk label follows the rule in domain.ComputeAtRisk.
func (g *Generator) Students(n int) []domain.StudentRecord {
	records := make([]domain.StudentRecord, 0, n)

	for i := 0; i < n; i++ {
		attendance := g.uniform(0.5, 1.0)

		var assignmentSum float64
		for j := 0; j < assignmentsPerStudent; j++ {
			assignmentSum += clamp(g.normal(attendance*85, 15), 0, 100)
		}
		avgAssignment := assignmentSum / assignmentsPerStudent

		var quizSum float64
		for j := 0; j < quizzesPerStudent; j++ {
			quizSum += clamp(g.normal(attendance*80, 20), 0, 100)
		}
		avgQuiz := quizSum / quizzesPerStudent

		forumPosts := g.poisson(attendance * 10)
		timeOnPlatform := math.Max(0, g.normal(attendance*8, 3))
		lateSubmissions := g.poisson((1 - attendance) * 3)

		finalGrade := 0.4*avgAssignment + 0.4*avgQuiz + 0.2*attendance*100

		s := domain.StudentRecord{
			StudentID:          fmt.Sprintf("STU%04d", i+1),
			Name:               g.faker.Name(),
			Age:                18 + g.rng.Intn(12),
			AttendanceRate:     round2(attendance),
			AvgAssignmentScore: round2(avgAssignment),
			AvgQuizScore:       round2(avgQuiz),
			ForumPosts:         forumPosts,
			TimeOnPlatform:     round2(timeOnPlatform),
			LateSubmissions:    lateSubmissions,
			FinalGrade:         round2(finalGrade),
		}
		s.AtRisk = s.ComputeAtRisk()

		records = append(records, s)
	}

	return records
}

// WeeklyActivity generates per-week performance data for one student.
// Each student gets a base performance level plus a small weekly trend.
func (g *Generator) WeeklyActivity(studentID string, weeks int) []domain.WeeklyActivity {
	start := time.Now().AddDate(0, 0, -7*weeks)

	base := g.uniform(60, 90)
	trend := g.uniform(-1, 1)

	data := make([]domain.WeeklyActivity, 0, weeks)
	for week := 0; week < weeks; week++ {
		performance := base + trend*float64(week) + g.normal(0, 5)

		data = append(data, domain.WeeklyActivity{
			StudentID:            studentID,
			Week:                 week + 1,
			Date:                 start.AddDate(0, 0, 7*week).Format("2006-01-02"),
			WeeklyScore:          round2(clamp(performance, 0, 100)),
			HoursStudied:         round2(math.Max(0, g.normal(8, 2))),
			AssignmentsCompleted: g.rng.Intn(4),
		})
	}

	return data
}

func (g *Generator) uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: g.rng}.Rand()
}

func (g *Generator) normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: g.rng}.Rand()
}

func (g *Generator) poisson(lambda float64) int {
	// distuv.Poisson is undefined at lambda <= 0 (perfect attendance gives
	// lambda 0 for late submissions).
	if lambda <= 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: lambda, Src: g.rng}.Rand())
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
