package offset

import "context"

type Repository interface {
	// Record appends a credit entry. The ledger is append-only: repeat
	// edits of the same date add further entries, and readers sum per
	// date instead of the writer replacing anything.
	Record(ctx context.Context, entry *Entry) error
	// SummaryForMonth sums the vendor's credits for one target month,
	// grouped by edited date.
	SummaryForMonth(ctx context.Context, vendorID, month string) (Summary, error)
}
