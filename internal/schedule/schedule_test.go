package schedule

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	testCases := []struct {
		input    string
		expected time.Weekday
		wantErr  bool
	}{
		{"monday", time.Monday, false},
		{"Monday", time.Monday, false},
		{" friday ", time.Friday, false},
		{"SUNDAY", time.Sunday, false},
		{"someday", time.Sunday, true},
		{"", time.Sunday, true},
	}

	for _, tc := range testCases {
		day, err := ParseWeekday(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseWeekday(%q): expected error, got nil", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWeekday(%q): unexpected error %v", tc.input, err)
			continue
		}
		if day != tc.expected {
			t.Errorf("ParseWeekday(%q) = %v, want %v", tc.input, day, tc.expected)
		}
	}
}

func TestStartRejectsBadWeekday(t *testing.T) {
	s := New(func() {})
	if err := s.Start("noday", "06:00"); err == nil {
		t.Error("Expected error for unknown weekday")
	}
}

func TestStartAndNextRun(t *testing.T) {
	s := New(func() {})
	if err := s.Start("monday", "06:00"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	next := s.NextRun()
	if next.IsZero() {
		t.Error("Expected a scheduled next run")
	}
	if next.Weekday() != time.Monday {
		t.Errorf("Next run weekday = %v, want Monday", next.Weekday())
	}
}

func TestRunNow(t *testing.T) {
	var runs int64
	s := New(func() { atomic.AddInt64(&runs, 1) })

	s.RunNow()
	if atomic.LoadInt64(&runs) != 1 {
		t.Errorf("Expected 1 run, got %d", runs)
	}
}
