package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	"student-analytics/internal/analyze"
	"student-analytics/internal/config"
	"student-analytics/internal/dataset"
	"student-analytics/internal/gen"
)

func main() {
	cfg := config.Load()

	var (
		n       = flag.Int("n", cfg.Students, "number of students to generate")
		seed    = flag.Int64("seed", cfg.Seed, "random seed")
		outPath = flag.String("out", cfg.DataPath, "output csv path")
		xlsx    = flag.Bool("xlsx", true, "also write an xlsx sibling")
	)
	flag.Parse()

	records := gen.New(uint64(*seed)).Students(*n)

	if err := dataset.WriteCSV(*outPath, records); err != nil {
		log.Fatal(err)
	}
	if *xlsx {
		xlsxPath := strings.TrimSuffix(*outPath, filepath.Ext(*outPath)) + ".xlsx"
		if err := dataset.WriteXLSX(xlsxPath, records); err != nil {
			log.Fatal(err)
		}
	}

	s := analyze.New(records).Summary()
	log.Printf(
		"wrote %d students to %s (at_risk=%d [%0.1f%%], avg_grade=%.2f, seed=%d)",
		s.TotalStudents, *outPath, s.AtRiskCount, s.AtRiskPercentage, s.AvgFinalGrade, *seed,
	)
}
