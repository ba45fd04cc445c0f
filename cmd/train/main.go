package main

import (
	"context"
	"flag"
	"log"
	"time"

	"student-analytics/internal/config"
	"student-analytics/internal/dataset"
	"student-analytics/internal/predict"
)

func main() {
	cfg := config.Load()

	var (
		dataSrc   = flag.String("data", cfg.DataPath, "dataset path or http(s) url")
		modelPath = flag.String("model", cfg.ModelPath, "output model path")
		trees     = flag.Int("trees", 100, "number of trees in the forest")
		testFrac  = flag.Float64("test-frac", 0.2, "held-out test fraction")
		seed      = flag.Int64("seed", cfg.Seed, "split shuffle seed")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	records, err := dataset.Load(ctx, *dataSrc)
	if err != nil {
		log.Fatal(err)
	}

	p := predict.New()
	metrics, err := p.Train(records, predict.TrainOptions{
		Trees:        *trees,
		TestFraction: *testFrac,
		Seed:         *seed,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := p.Save(*modelPath); err != nil {
		log.Fatal(err)
	}

	log.Printf(
		"trained on %d students (train=%d test=%d): accuracy=%.3f precision=%.3f recall=%.3f f1=%.3f",
		len(records), metrics.TrainSize, metrics.TestSize,
		metrics.Accuracy, metrics.Precision, metrics.Recall, metrics.F1,
	)
	log.Printf("confusion matrix [actual x predicted]: %v", metrics.Confusion)

	imps, err := p.FeatureImportance()
	if err != nil {
		log.Fatal(err)
	}
	for _, imp := range imps {
		log.Printf("importance %-22s %.3f", imp.Feature, imp.Score)
	}

	log.Printf("saved model to %s", *modelPath)
}
