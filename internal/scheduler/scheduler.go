// Package scheduler runs named jobs on cron expressions, in UTC.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// JobFunc is one schedulable unit of work.
type JobFunc func(ctx context.Context) error

// Scheduler wraps a cron runner with job registration and lifecycle control.
// Jobs are registered first, then Start begins ticking; registration is
// closed while running.
type Scheduler struct {
	cron            *cron.Cron
	logger          *log.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobTimeout      time.Duration
	gracefulTimeout time.Duration
}

// NewScheduler creates a scheduler. Ticks that land while the previous run of
// the same job is still going are skipped, not queued.
func NewScheduler(logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger))),
		),
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      10 * time.Minute,
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleJob registers a named job on a cron expression. Each run gets a
// context bounded by the job timeout.
func (s *Scheduler) ScheduleJob(name, cronExpression string, job JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("jobs cannot be added while the scheduler is running")
	}

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.logger.Printf("Scheduled %s job failed: %v", name, err)
			return
		}
		s.logger.Printf("Scheduled %s job completed in %v", name, time.Since(start))
	}

	id, err := s.cron.AddFunc(cronExpression, run)
	if err != nil {
		return fmt.Errorf("failed to add %s job: %w", name, err)
	}

	s.jobIDs = append(s.jobIDs, id)
	s.logger.Printf("Scheduled %s job with cron expression: %s", name, cronExpression)

	return nil
}

// Start begins executing registered jobs on their schedules.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler already started")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs registered")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Printf("Scheduler started with %d jobs", len(s.jobIDs))

	return nil
}

// Stop halts scheduling and waits for in-flight jobs up to the graceful
// timeout.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(s.gracefulTimeout):
		s.logger.Printf("Scheduler stop timed out after %v", s.gracefulTimeout)
	}

	s.isRunning = false
	s.logger.Printf("Scheduler stopped")

	return nil
}

// IsRunning reports whether Start has been called without a matching Stop.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the earliest upcoming run across all jobs, or the zero
// time when nothing is scheduled to run.
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	var next time.Time
	for _, entry := range s.entriesLocked() {
		if next.IsZero() || entry.Next.Before(next) {
			next = entry.Next
		}
	}
	return next
}

// Entries returns the currently registered cron entries.
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entriesLocked()
}

// entriesLocked collects valid entries. Callers hold at least a read lock.
func (s *Scheduler) entriesLocked() []cron.Entry {
	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, id := range s.jobIDs {
		if entry := s.cron.Entry(id); entry.Valid() {
			entries = append(entries, entry)
		}
	}
	return entries
}

// RemoveJob unregisters a job before the scheduler starts.
func (s *Scheduler) RemoveJob(id cron.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("jobs cannot be removed while the scheduler is running")
	}

	s.cron.Remove(id)
	for i, known := range s.jobIDs {
		if known == id {
			s.jobIDs = append(s.jobIDs[:i], s.jobIDs[i+1:]...)
			break
		}
	}
	s.logger.Printf("Removed job: %d", id)

	return nil
}
