package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"student-analytics/internal/config"
	"student-analytics/internal/dataset"
	"student-analytics/internal/predict"
	"student-analytics/internal/visualize"
)

func main() {
	cfg := config.Load()

	var (
		dataSrc   = flag.String("data", cfg.DataPath, "dataset path or http(s) url")
		modelPath = flag.String("model", cfg.ModelPath, "trained model path (for the importance chart)")
		outDir    = flag.String("out", cfg.ReportDir, "chart output directory")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	records, err := dataset.Load(ctx, *dataSrc)
	if err != nil {
		log.Fatal(err)
	}

	// The importance chart only renders when a trained model is around.
	var imps []predict.Importance
	if _, err := os.Stat(*modelPath); err == nil {
		p, err := predict.Load(*modelPath)
		if err != nil {
			log.Fatal(err)
		}
		if imps, err = p.FeatureImportance(); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Printf("WARN: no model at %s, skipping feature importance chart", *modelPath)
	}

	charts, err := visualize.RenderAll(ctx, records, imps, *outDir)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("rendered %d charts to %s: %v", len(charts), *outDir, charts)
}
