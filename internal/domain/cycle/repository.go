package cycle

import (
	"context"
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
)

// Repository defines data access for monthly cycles. One cycle exists per
// (site, month), created lazily on first upload or lock.
type Repository interface {
	// GetByMonth returns the cycle for a site and month, or nil
	GetByMonth(ctx context.Context, siteID string, month string) (*Cycle, error)

	// Create inserts a fresh cycle with no uploads and the given
	// mismatch-resolution deadline
	Create(ctx context.Context, siteID string, month string, deadline time.Time) (Cycle, error)

	// MarkUploaded flips one evidence feed's upload flag
	MarkUploaded(ctx context.Context, siteID string, month string, dataType evidence.DataType, at time.Time) error

	// MarkMismatchProcessed records that detection has run for the month
	MarkMismatchProcessed(ctx context.Context, siteID string, month string) error

	// Lock sets uploads_locked and timesheet_status=generated in a single
	// update; the flip must commit before any offset routing decision
	Lock(ctx context.Context, siteID string, month string) error

	// ListBySite returns a site's cycles, newest month first
	ListBySite(ctx context.Context, siteID string) ([]Cycle, error)
}
