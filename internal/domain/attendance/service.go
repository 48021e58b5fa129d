package attendance

import (
	"context"
)

// Service defines business logic for vendor attendance operations
type Service interface {
	// Mark creates or edits a vendor's attendance for one day, routing the
	// edit to the offset ledger when the month is already locked and staging
	// a reapproval when the record was already approved or rejected
	Mark(ctx context.Context, req MarkRequest) (MarkResult, error)

	// Approve processes manager approval, merging any staged reapproval
	Approve(ctx context.Context, req ApproveRequest) (Attendance, error)

	// Reject processes manager rejection, discarding any staged reapproval
	Reject(ctx context.Context, req ApproveRequest) (Attendance, error)

	// MonthForVendor lists a vendor's records for one month
	MonthForVendor(ctx context.Context, vendorID string, month string) ([]Attendance, error)

	// PendingApprovals lists records awaiting the manager's approval
	PendingApprovals(ctx context.Context, managerID string) ([]Attendance, error)

	// MonthlySummary aggregates a vendor's month for the dashboard
	MonthlySummary(ctx context.Context, vendorID string, month string) (MonthlySummary, error)
}
