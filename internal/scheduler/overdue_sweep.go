// Package scheduler drives time-based work: the daily sweep that
// enqueues an overdue-loan scan and the audit-trail cleanup.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/librarium/bibliotheque/internal/tasks"
)

// OverdueSweepScheduler enqueues an overdue scan and an audit cleanup
// on a cron schedule. The work itself runs on the task queue so a slow
// scan never blocks the cron loop.
type OverdueSweepScheduler struct {
	taskClient    *tasks.Client
	schedule      string
	retentionDays int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewOverdueSweepScheduler creates a new scheduler instance.
func NewOverdueSweepScheduler(taskClient *tasks.Client, schedule string, retentionDays int) *OverdueSweepScheduler {
	return &OverdueSweepScheduler{
		taskClient:    taskClient,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *OverdueSweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule overdue sweep '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Overdue sweep scheduler: started with schedule '%s'. Next run: %v",
		s.schedule, s.nextRunLocked())

	// Monitor for context cancellation
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *OverdueSweepScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Overdue sweep scheduler: stopped")
}

// RunNow enqueues an immediate sweep.
func (s *OverdueSweepScheduler) RunNow() {
	go s.runSweep()
}

// IsRunning returns whether the scheduler is active.
func (s *OverdueSweepScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next sweep will occur.
func (s *OverdueSweepScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	return s.nextRunLocked()
}

func (s *OverdueSweepScheduler) nextRunLocked() *time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runSweep enqueues the overdue scan and the audit cleanup.
func (s *OverdueSweepScheduler) runSweep() {
	if s.taskClient == nil {
		log.Printf("Overdue sweep: skipped (task queue not configured)")
		return
	}

	if _, err := s.taskClient.Add(tasks.OverdueScanTask{AsOf: time.Now()}).Save(); err != nil {
		log.Printf("Overdue sweep: failed to enqueue overdue scan: %v", err)
	}

	if _, err := s.taskClient.Add(tasks.CleanupAuditEventsTask{RetentionDays: s.retentionDays}).Save(); err != nil {
		log.Printf("Overdue sweep: failed to enqueue audit cleanup: %v", err)
	}
}
