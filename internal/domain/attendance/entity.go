package attendance

import (
	"time"
)

// Status is a vendor's self-reported attendance status for one day.
// The string values are the canonical stored form.
type Status string

const (
	StatusInOfficeFull        Status = "In office full day"
	StatusHalfOfficeHalfWFH   Status = "Office half + work from home half"
	StatusHalfOfficeHalfLeave Status = "Office half + leave half"
	StatusWFHFull             Status = "Work from home full"
	StatusHalfWFHHalfLeave    Status = "Work from home half + leave half"
	StatusHoliday             Status = "Holiday"
	StatusLeave               Status = "Leave"
	StatusPending             Status = "Pending"
)

// Statuses lists every valid attendance status.
var Statuses = []Status{
	StatusInOfficeFull,
	StatusHalfOfficeHalfWFH,
	StatusHalfOfficeHalfLeave,
	StatusWFHFull,
	StatusHalfWFHHalfLeave,
	StatusHoliday,
	StatusLeave,
	StatusPending,
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// WorkHours returns the payroll hour credit for a day with this status.
// Full work days credit 8 hours, half work + half leave days credit 4,
// leave/holiday/pending credit nothing.
func (s Status) WorkHours() float64 {
	switch s {
	case StatusInOfficeFull, StatusWFHFull, StatusHalfOfficeHalfWFH:
		return 8
	case StatusHalfOfficeHalfLeave, StatusHalfWFHHalfLeave:
		return 4
	default:
		return 0
	}
}

// WorkdayValue returns the workday weight used by the per-company workday
// report. Full WFH days are discounted by wfhRate; hour credits are not.
func (s Status) WorkdayValue(wfhRate float64) float64 {
	switch s {
	case StatusInOfficeFull:
		return 1.0
	case StatusHalfOfficeHalfWFH, StatusHalfOfficeHalfLeave, StatusHalfWFHHalfLeave:
		return 0.5
	case StatusWFHFull:
		return wfhRate
	default:
		return 0.0
	}
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// Snapshot captures the vendor-editable fields of a record at a point in time.
type Snapshot struct {
	Status   Status `json:"status"`
	Comments string `json:"comments"`
}

// ReapprovalStaging holds a vendor edit made to an already approved or
// rejected record. The edit does not take effect until a manager acts on it:
// approval merges Proposed into the record, rejection discards it. A nil
// staging pointer means the record is settled.
type ReapprovalStaging struct {
	Previous Snapshot `json:"previous"`
	Proposed Snapshot `json:"proposed"`
}

type Attendance struct {
	ID               string
	SiteID           string
	VendorID         string
	Date             time.Time // day granularity, UTC midnight
	Status           Status
	ApprovalStatus   ApprovalStatus
	Comments         string
	RejectionReason  string
	IsMismatch       bool
	MismatchResolved bool
	// FinalStatus is set once a mismatch for this day reaches a terminal
	// approved/expired state; until then the reported Status stands.
	FinalStatus *Status
	Reapproval  *ReapprovalStaging
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	VendorName   *string
	EmployeeCode *string
}

// EffectiveStatus is the authoritative status for payroll purposes.
func (a *Attendance) EffectiveStatus() Status {
	if a.FinalStatus != nil {
		return *a.FinalStatus
	}
	return a.Status
}

// Finalized reports whether the record can be trusted for timesheet
// computation: either it never mismatched, or its mismatch was resolved.
func (a *Attendance) Finalized() bool {
	return !a.IsMismatch || a.MismatchResolved
}
