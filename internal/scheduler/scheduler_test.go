package scheduler

import (
	"context"
	"io"
	"log"
	"testing"
)

func newTestScheduler() *Scheduler {
	return NewScheduler(log.New(io.Discard, "", 0))
}

func noopJob(ctx context.Context) error {
	return nil
}

func TestScheduleAndStart(t *testing.T) {
	s := newTestScheduler()

	if err := s.ScheduleJob("scan", "@every 1h", noopJob); err != nil {
		t.Fatalf("ScheduleJob: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if !s.IsRunning() {
		t.Error("scheduler not running after Start")
	}
	if s.GetNextRun().IsZero() {
		t.Error("no next run time for a scheduled job")
	}
	if len(s.Entries()) != 1 {
		t.Errorf("got %d entries, want 1", len(s.Entries()))
	}
}

func TestStartWithoutJobs(t *testing.T) {
	s := newTestScheduler()

	if err := s.Start(); err == nil {
		t.Error("Start with no jobs should fail")
	}
}

func TestDoubleStart(t *testing.T) {
	s := newTestScheduler()

	if err := s.ScheduleJob("scan", "@every 1h", noopJob); err != nil {
		t.Fatalf("ScheduleJob: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if err := s.Start(); err == nil {
		t.Error("second Start should fail")
	}
}

func TestScheduleWhileRunning(t *testing.T) {
	s := newTestScheduler()

	if err := s.ScheduleJob("scan", "@every 1h", noopJob); err != nil {
		t.Fatalf("ScheduleJob: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if err := s.ScheduleJob("another", "@every 1h", noopJob); err == nil {
		t.Error("scheduling while running should fail")
	}
}

func TestInvalidCronExpression(t *testing.T) {
	s := newTestScheduler()

	if err := s.ScheduleJob("scan", "not a cron expression", noopJob); err == nil {
		t.Error("invalid cron expression accepted")
	}
}

func TestStopWhenNotRunning(t *testing.T) {
	s := newTestScheduler()

	if err := s.Stop(); err != nil {
		t.Errorf("Stop on idle scheduler: %v", err)
	}
}

func TestRemoveJob(t *testing.T) {
	s := newTestScheduler()

	if err := s.ScheduleJob("scan", "@every 1h", noopJob); err != nil {
		t.Fatalf("ScheduleJob: %v", err)
	}

	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if err := s.RemoveJob(entries[0].ID); err != nil {
		t.Fatalf("RemoveJob: %v", err)
	}

	if len(s.Entries()) != 0 {
		t.Error("entry still present after removal")
	}
	if err := s.Start(); err == nil {
		t.Error("Start should fail once the only job is removed")
	}
}

func TestStopClearsRunning(t *testing.T) {
	s := newTestScheduler()

	if err := s.ScheduleJob("scan", "@every 1h", noopJob); err != nil {
		t.Fatalf("ScheduleJob: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if s.IsRunning() {
		t.Error("scheduler still running after Stop")
	}
	if !s.GetNextRun().IsZero() {
		t.Error("stopped scheduler reports a next run")
	}
}
