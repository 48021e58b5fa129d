package mismatch

import (
	"context"
	"time"
)

// Repository defines data access for mismatch records.
type Repository interface {
	// Create persists a draft as a new pending mismatch with the given deadline
	Create(ctx context.Context, draft Draft, deadline time.Time) (Mismatch, error)

	// Overwrite replaces an existing mismatch's detection payload with the
	// draft, resets its status to pending and clears prior resolutions
	Overwrite(ctx context.Context, id string, draft Draft, deadline time.Time) error

	// GetByID retrieves a mismatch by ID
	GetByID(ctx context.Context, id string) (Mismatch, error)

	// FindByVendorAndDate returns the mismatch for a vendor on a day, or nil
	FindByVendorAndDate(ctx context.Context, vendorID string, date time.Time) (*Mismatch, error)

	// ListByVendor returns a vendor's mismatches, optionally filtered by status
	ListByVendor(ctx context.Context, vendorID string, status *Status) ([]Mismatch, error)

	// ListByManager returns mismatches across a manager's team, newest first,
	// joined with vendor info
	ListByManager(ctx context.Context, managerID string) ([]Mismatch, error)

	// ListByVendorAndMonth returns a vendor's mismatches for one month
	ListByVendorAndMonth(ctx context.Context, vendorID string, month string) ([]Mismatch, error)

	// ListOpenPastDeadline returns pending/vendor_updated mismatches whose
	// deadline is before now
	ListOpenPastDeadline(ctx context.Context, now time.Time) ([]Mismatch, error)

	// SetVendorResolution moves a mismatch to vendor_updated with the
	// vendor's proposed status
	SetVendorResolution(ctx context.Context, id string, res VendorResolution) error

	// SetManagerResolution moves a mismatch to the given terminal status
	// with the manager's action
	SetManagerResolution(ctx context.Context, id string, status Status, res ManagerResolution) error

	// Expire moves a mismatch to expired, recording the synthetic vendor
	// resolution used in place of the vendor's answer
	Expire(ctx context.Context, id string, res VendorResolution) error

	// Delete removes a mismatch (re-detection found the day clean)
	Delete(ctx context.Context, id string) error

	// StatsForMonth counts a site's mismatches per status for one month
	StatsForMonth(ctx context.Context, siteID string, month string) (MonthlyStats, error)

	// DeleteByMonth removes a site's mismatches for one month (re-detection
	// after a full evidence re-upload)
	DeleteByMonth(ctx context.Context, siteID string, month string) error
}
