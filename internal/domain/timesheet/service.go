package timesheet

import "context"

type Service interface {
	// Generate builds timesheets for every vendor matched by the request,
	// locking the monthly cycle on first successful run.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)
	ForVendor(ctx context.Context, vendorID, month string) (*Timesheet, error)
	ForMonth(ctx context.Context, siteID, month string) ([]Timesheet, error)
	WorkdayReportForMonth(ctx context.Context, siteID, month string) ([]WorkdayReport, error)
}
