package timesheet

import "context"

type Repository interface {
	// Upsert replaces the vendor's timesheet for the month wholesale.
	Upsert(ctx context.Context, sheet *Timesheet) error
	GetByVendorAndMonth(ctx context.Context, vendorID, month string) (*Timesheet, error)
	ListByMonth(ctx context.Context, siteID, month string) ([]Timesheet, error)
	ListByVendor(ctx context.Context, vendorID string) ([]Timesheet, error)
}
