package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/librarium/bibliotheque/internal/entities"
)

// OverdueLister provides the open loans past their due date.
type OverdueLister interface {
	Overdue(asOf time.Time) ([]entities.Loan, error)
}

// OverdueReporter records the outcome of an overdue scan.
type OverdueReporter interface {
	LogCirculation(action string, loanID uint, description string, err error)
}

// OverdueScanTask walks the open loans and records every one past its
// due date on the audit trail. It never mutates loans; due dates are
// fixed at checkout.
type OverdueScanTask struct {
	AsOf time.Time `json:"as_of"`
}

// Config returns the queue configuration for overdue scans.
func (t OverdueScanTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "overdue_scan",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// OverdueScanProcessor creates a processor function for OverdueScanTask.
func OverdueScanProcessor(lister OverdueLister, reporter OverdueReporter) backlite.QueueProcessor[OverdueScanTask] {
	return func(ctx context.Context, task OverdueScanTask) error {
		if lister == nil {
			return fmt.Errorf("overdue lister not configured")
		}

		asOf := task.AsOf
		if asOf.IsZero() {
			asOf = time.Now()
		}

		overdue, err := lister.Overdue(asOf)
		if err != nil {
			return fmt.Errorf("overdue scan: %w", err)
		}

		for _, loan := range overdue {
			days := int(asOf.Sub(loan.DueDate).Hours() / 24)
			if reporter != nil {
				reporter.LogCirculation("overdue", loan.ID,
					fmt.Sprintf("book %d to member %d, %d days late", loan.BookID, loan.MemberID, days), nil)
			}
		}

		log.Printf("[TASK] Overdue scan found %d loans past due as of %s", len(overdue), asOf.Format("2006-01-02"))
		return nil
	}
}

// NewOverdueScanQueue creates a backlite queue for overdue scans.
func NewOverdueScanQueue(lister OverdueLister, reporter OverdueReporter) backlite.Queue {
	return backlite.NewQueue(OverdueScanProcessor(lister, reporter))
}
