package cycle

import (
	"context"
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
)

// Service manages the monthly cycle state machine.
type Service interface {
	// Ensure returns the cycle for a site and month, creating it lazily
	Ensure(ctx context.Context, siteID string, month string) (Cycle, error)

	// MarkUploaded flips an upload flag, creating the cycle if needed
	MarkUploaded(ctx context.Context, siteID string, month string, dataType evidence.DataType, at time.Time) (Cycle, error)

	// IsAllDataUploaded reports whether every evidence feed is uploaded;
	// false when no cycle exists yet
	IsAllDataUploaded(ctx context.Context, siteID string, month string) (bool, error)

	// MarkMismatchProcessed records that detection has run
	MarkMismatchProcessed(ctx context.Context, siteID string, month string) error

	// LockForTimesheet locks uploads and marks the timesheet generated.
	// Fails with ErrAlreadyLocked when already locked.
	LockForTimesheet(ctx context.Context, siteID string, month string) (Cycle, error)

	// IsTimesheetGenerated reports whether the month is locked; attendance
	// edits for a locked month route to the offset ledger
	IsTimesheetGenerated(ctx context.Context, siteID string, month string) (bool, error)

	// ListBySite returns a site's cycles, newest first
	ListBySite(ctx context.Context, siteID string) ([]Cycle, error)
}
