package evidence

import (
	"context"
	"time"
)

// SwipeRepository stores badge-swipe evidence.
type SwipeRepository interface {
	// FindByVendorAndDate returns the swipe record for one vendor on one
	// day, or nil when none exists
	FindByVendorAndDate(ctx context.Context, vendorID string, date time.Time) (*SwipeRecord, error)

	// ReplaceMonth wholesale-replaces a month's swipe data: delete then
	// bulk insert, in one transaction. Returns the inserted count.
	ReplaceMonth(ctx context.Context, month string, records []SwipeRecord) (int, error)
}

// WFHRepository stores work-from-home evidence.
type WFHRepository interface {
	// FindCovering returns a WFH span overlapping the given day for the
	// vendor, or nil when none exists
	FindCovering(ctx context.Context, vendorID string, date time.Time) (*WFHRecord, error)

	ReplaceMonth(ctx context.Context, month string, records []WFHRecord) (int, error)
}

// LeaveRepository stores leave evidence. A day can be covered by several
// leave spans, so lookups return all of them.
type LeaveRepository interface {
	// FindCovering returns every leave span overlapping the given day
	FindCovering(ctx context.Context, vendorID string, date time.Time) ([]LeaveRecord, error)

	ReplaceMonth(ctx context.Context, month string, records []LeaveRecord) (int, error)
}

// Store bundles the three evidence feeds for consumers that need lookups
// across all of them, such as the mismatch detector.
type Store interface {
	FindSwipe(ctx context.Context, vendorID string, date time.Time) (*SwipeRecord, error)
	FindWFH(ctx context.Context, vendorID string, date time.Time) (*WFHRecord, error)
	FindLeave(ctx context.Context, vendorID string, date time.Time) ([]LeaveRecord, error)
}
