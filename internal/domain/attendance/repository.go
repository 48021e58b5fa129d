package attendance

import (
	"context"
	"time"
)

// Repository defines data access methods for attendance records.
type Repository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves an attendance record by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByVendorAndDate retrieves the record for one vendor on one day,
	// or nil when none exists
	GetByVendorAndDate(ctx context.Context, vendorID string, date time.Time) (*Attendance, error)

	// ListByVendorAndMonth retrieves a vendor's records for a month
	// (month is "YYYY-MM"), ordered by date
	ListByVendorAndMonth(ctx context.Context, vendorID string, month string) ([]Attendance, error)

	// ListBySiteAndMonth retrieves every record for a site in a month
	ListBySiteAndMonth(ctx context.Context, siteID string, month string) ([]Attendance, error)

	// ListPendingApproval retrieves records awaiting manager approval for
	// the given manager's team, newest first
	ListPendingApproval(ctx context.Context, managerID string) ([]Attendance, error)

	// Update persists the full mutable state of an attendance record
	Update(ctx context.Context, att Attendance) error

	// SetMismatchFlag marks whether a record currently has a detected
	// mismatch and resets the resolution state (mismatch_resolved, final
	// status) so a reopened mismatch starts its workflow from scratch
	SetMismatchFlag(ctx context.Context, id string, isMismatch bool) error

	// SetFinalStatus records the authoritative status after a mismatch
	// reaches a terminal state, and marks the mismatch resolved
	SetFinalStatus(ctx context.Context, vendorID string, date time.Time, final Status) error
}
