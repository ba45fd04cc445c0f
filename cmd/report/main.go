package main

import (
	"context"
	"flag"
	"log"
	"time"

	"student-analytics/internal/config"
	"student-analytics/internal/devutil"
	"student-analytics/internal/pipeline"
	"student-analytics/internal/publish"
)

func main() {
	cfg := config.Load()

	var (
		n          = flag.Int("n", cfg.Students, "number of students to generate")
		seed       = flag.Int64("seed", cfg.Seed, "random seed")
		dataURL    = flag.String("data-url", cfg.DataURL, "fetch the dataset from this url instead of generating")
		dataPath   = flag.String("data", cfg.DataPath, "dataset output path")
		prevData   = flag.String("prev", cfg.PrevDataPath, "previous snapshot to diff against (default: last run's dataset)")
		modelPath  = flag.String("model", cfg.ModelPath, "model output path")
		outDir     = flag.String("out", cfg.ReportDir, "report output directory")
		uploadSFTP = flag.Bool("sftp", false, "publish the report directory via SFTP")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var target *publish.Config
	if *uploadSFTP {
		if !cfg.PublishEnabled() {
			log.Fatal("missing env vars: SFTP_HOST / SFTP_USER / SFTP_PASS")
		}
		t := cfg.SFTP()
		target = &t
	}

	res, err := pipeline.Run(ctx, pipeline.Options{
		Students:     *n,
		Seed:         *seed,
		DataURL:      *dataURL,
		PrevDataPath: *prevData,
		DataPath:     *dataPath,
		ModelPath:    *modelPath,
		OutDir:       *outDir,
		Publish:      target,
	})
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("report run done: %v", devutil.Pick(res, "students", "at_risk", "accuracy", "report", "elapsed"))
	if target != nil {
		log.Printf("uploaded %d files to sftp://%s:%d%s", len(res.Uploaded), cfg.SFTPHost, cfg.SFTPPort, cfg.SFTPDir)
	}
}
