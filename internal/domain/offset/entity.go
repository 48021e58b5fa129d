// Package offset records hour credits produced by late edits: attendance
// changes for a month whose timesheet is already generated are credited to
// the following month instead of rewriting the locked one.
package offset

import "time"

// SourceLateUpdate tags credits produced by an attendance edit that landed
// after the month's timesheet was generated.
const SourceLateUpdate = "late_attendance_update"

type Entry struct {
	ID       string
	VendorID string
	// Month the credit lands in (YYYY-MM), always the month after the
	// edited date's month.
	Month string
	// Date is the edited attendance date (YYYY-MM-DD) the hours came from.
	Date  string
	Hours float64
	// AttendanceID links back to the edited record; a late edit that
	// created a brand-new day has none yet when the credit is written.
	AttendanceID *string
	Source       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary aggregates a vendor's credits for one target month: hours summed
// per edited date, plus the month total.
type Summary struct {
	DatesHours map[string]float64
	TotalHours float64
}
