// Package timesheet holds the payroll-grade monthly output: per-date work
// hours from finalized attendance, mismatch-driven deductions, and offset
// credits carried over from late edits to prior locked months.
package timesheet

import "time"

type Timesheet struct {
	ID       string
	VendorID string
	Month    string // YYYY-MM

	// WorkDatesHours maps "YYYY-MM-DD" to the hour credit earned that day.
	WorkDatesHours map[string]float64
	// MismatchLeaveDays counts days zeroed by an unresolved mismatch.
	MismatchLeaveDays int
	// OffsetDatesHours maps dates of late prior-month edits to the hours
	// credited to this month.
	OffsetDatesHours map[string]float64

	TotalWorkHours       float64
	TotalOffsetHours     float64
	TotalHoursWithOffset float64

	GeneratedOn time.Time

	// DTO
	VendorName       *string
	EmployeeCode     *string
	VendingCompanyID *string
}

// Recompute refreshes the totals from the per-date maps.
func (t *Timesheet) Recompute() {
	t.TotalWorkHours = 0
	for _, h := range t.WorkDatesHours {
		t.TotalWorkHours += h
	}
	t.TotalOffsetHours = 0
	for _, h := range t.OffsetDatesHours {
		t.TotalOffsetHours += h
	}
	t.TotalHoursWithOffset = t.TotalWorkHours + t.TotalOffsetHours
}
