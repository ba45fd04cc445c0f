package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-co-op/gocron"
)

// Job is the unit of scheduled work.
type Job func()

// Scheduler runs the weekly report job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       Job
}

// New creates a scheduler that runs job on the configured weekday/time (UTC).
func New(job Job) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		job:       job,
	}
}

// Start registers the weekly run and starts the scheduler in the background.
// weekday is a lowercase english day name ("monday"); at is "HH:MM".
func (s *Scheduler) Start(weekday, at string) error {
	day, err := ParseWeekday(weekday)
	if err != nil {
		return err
	}

	if _, err := s.scheduler.Every(1).Week().Weekday(day).At(at).Do(s.job); err != nil {
		return fmt.Errorf("schedule: register weekly job: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// NextRun reports when the next execution will happen.
func (s *Scheduler) NextRun() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

// RunNow executes the job once, outside the schedule.
func (s *Scheduler) RunNow() {
	s.job()
}

// ParseWeekday maps an english day name onto time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("schedule: unknown weekday %q", name)
}
