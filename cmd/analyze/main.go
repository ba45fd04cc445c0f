package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"student-analytics/internal/analyze"
	"student-analytics/internal/config"
	"student-analytics/internal/dataset"
	"student-analytics/internal/domain"
)

func main() {
	cfg := config.Load()

	var (
		dataSrc = flag.String("data", cfg.DataPath, "dataset path or http(s) url")
		top     = flag.Int("top", 5, "number of top performers to list")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	records, err := dataset.Load(ctx, *dataSrc)
	if err != nil {
		log.Fatal(err)
	}

	a := analyze.New(records)
	s := a.Summary()
	d := a.Distribution()
	e := a.Engagement()

	fmt.Printf("Dataset: %s (%d students)\n\n", *dataSrc, s.TotalStudents)

	fmt.Println("Summary")
	fmt.Printf("  at risk:              %d (%.1f%%)\n", s.AtRiskCount, s.AtRiskPercentage)
	fmt.Printf("  avg final grade:      %.2f\n", s.AvgFinalGrade)
	fmt.Printf("  avg attendance:       %.2f\n", s.AvgAttendance)
	fmt.Printf("  avg assignment score: %.2f\n", s.AvgAssignmentScore)
	fmt.Printf("  avg quiz score:       %.2f\n", s.AvgQuizScore)
	fmt.Printf("  total forum posts:    %d\n", s.TotalForumPosts)
	fmt.Printf("  avg hours/week:       %.2f\n\n", s.AvgTimeOnPlatform)

	fmt.Println("Grade distribution")
	fmt.Printf("  excellent=%d good=%d satisfactory=%d poor=%d\n", d.Excellent, d.Good, d.Satisfactory, d.Poor)
	fmt.Printf("  mean=%.2f median=%.2f std=%.2f min=%.2f max=%.2f\n\n", d.Mean, d.Median, d.Std, d.Min, d.Max)

	fmt.Println("Engagement")
	fmt.Printf("  forum posts avg=%.2f median=%.1f highly_engaged=%d low=%d\n\n",
		e.AvgForumPosts, e.MedianForumPosts, e.HighlyEngaged, e.LowEngagement)

	fmt.Println("Correlation with final grade")
	for _, c := range a.Correlations() {
		fmt.Printf("  %-22s %+.3f\n", c.Feature, c.R)
	}
	fmt.Println()

	atRisk := a.AtRisk(domain.PassingGrade)
	fmt.Printf("At-risk students (%d)\n", len(atRisk))
	for _, r := range atRisk {
		fmt.Printf("  %s grade=%.2f attendance=%.2f: %s\n",
			r.StudentID, r.FinalGrade, r.AttendanceRate, strings.Join(r.Factors, ", "))
	}
	fmt.Println()

	fmt.Printf("Top %d performers\n", *top)
	for i, r := range a.TopPerformers(*top) {
		fmt.Printf("  %d) %s grade=%.2f attendance=%.2f\n", i+1, r.StudentID, r.FinalGrade, r.AttendanceRate)
	}
}
