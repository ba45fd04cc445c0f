package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student-analytics/internal/config"
	"student-analytics/internal/devutil"
	"student-analytics/internal/pipeline"
	"student-analytics/internal/publish"
	"student-analytics/internal/schedule"
)

func main() {
	cfg := config.Load()

	var (
		weekday = flag.String("weekday", cfg.ScheduleWeekday, "weekday to run on")
		at      = flag.String("at", cfg.ScheduleAt, "time of day to run (HH:MM, UTC)")
		now     = flag.Bool("now", false, "run once immediately and exit")
	)
	flag.Parse()

	var target *publish.Config
	if cfg.PublishEnabled() {
		t := cfg.SFTP()
		target = &t
	} else {
		log.Print("WARN: SFTP target not configured, reports stay local")
	}

	job := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		res, err := pipeline.Run(ctx, pipeline.Options{
			Students:     cfg.Students,
			Seed:         time.Now().UnixNano(),
			DataURL:      cfg.DataURL,
			PrevDataPath: cfg.PrevDataPath,
			DataPath:     cfg.DataPath,
			ModelPath:    cfg.ModelPath,
			OutDir:       cfg.ReportDir,
			Publish:      target,
		})
		if err != nil {
			log.Printf("ERROR: weekly run failed: %v", err)
			return
		}
		log.Printf("weekly run done: %v", devutil.Pick(res, "students", "at_risk", "accuracy", "report", "uploaded", "elapsed"))
	}

	s := schedule.New(job)

	if *now {
		s.RunNow()
		return
	}

	if err := s.Start(*weekday, *at); err != nil {
		log.Fatal(err)
	}
	defer s.Stop()

	log.Printf("scheduled weekly report for %s %s UTC, next run at %s", *weekday, *at, s.NextRun().Format(time.RFC3339))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Print("shutting down")
}
