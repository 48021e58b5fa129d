// Package mismatch models conflicts between a vendor's self-reported
// attendance and the uploaded evidence, and the workflow that resolves them.
package mismatch

import (
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
)

// ReasonCode identifies one detection rule violation. A single mismatch
// record can carry several reasons for the same day.
type ReasonCode string

const (
	ReasonPendingStatus  ReasonCode = "PENDING_STATUS"
	ReasonNoSwipe        ReasonCode = "NO_SWIPE"
	ReasonShortSwipe     ReasonCode = "SHORT_SWIPE"
	ReasonShortHalfSwipe ReasonCode = "SHORT_HALF_SWIPE"
	ReasonNoWFH          ReasonCode = "NO_WFH"
	ReasonNoLeave        ReasonCode = "NO_LEAVE"
	ReasonShortLeave     ReasonCode = "SHORT_LEAVE"
	ReasonShortHalfLeave ReasonCode = "SHORT_HALF_LEAVE"
)

var reasonDescriptions = map[ReasonCode]string{
	ReasonPendingStatus:  "Status is Pending",
	ReasonNoSwipe:        "Swipe data missing",
	ReasonShortSwipe:     "Swipe time less than required hours",
	ReasonShortHalfSwipe: "Swipe time less than required half-day hours",
	ReasonNoWFH:          "WFH not marked",
	ReasonNoLeave:        "Leave not marked",
	ReasonShortLeave:     "Leave marked less than required hours",
	ReasonShortHalfLeave: "Leave marked less than required half-day hours",
}

func (r ReasonCode) Description() string {
	if d, ok := reasonDescriptions[r]; ok {
		return d
	}
	return string(r)
}

// Status is the lifecycle state of a mismatch. It only moves forward:
// pending → vendor_updated → manager_approved | manager_rejected, with
// pending/vendor_updated → expired when the deadline passes. The single
// exception is re-detection reopening a manager_approved mismatch to
// pending when a new reason set appears for the same day.
type Status string

const (
	StatusPending         Status = "pending"
	StatusVendorUpdated   Status = "vendor_updated"
	StatusManagerApproved Status = "manager_approved"
	StatusManagerRejected Status = "manager_rejected"
	StatusExpired         Status = "expired"
)

var Statuses = []Status{
	StatusPending,
	StatusVendorUpdated,
	StatusManagerApproved,
	StatusManagerRejected,
	StatusExpired,
}

// Terminal reports whether no further workflow action applies.
func (s Status) Terminal() bool {
	return s == StatusManagerApproved || s == StatusManagerRejected || s == StatusExpired
}

// Open reports whether the vendor or the expiry sweep can still act.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusVendorUpdated
}

// Expectation is one expected-vs-actual payload, discriminated by which
// fields are set for the paired reason code.
type Expectation struct {
	SwipeHours         *float64 `json:"swipe_hours,omitempty"`
	WFHRequired        *bool    `json:"wfh_required,omitempty"`
	WFHPresent         *bool    `json:"wfh_present,omitempty"`
	LeaveHoursInWindow *float64 `json:"leave_hours_in_window,omitempty"`
}

// VendorResolution is the vendor's answer to a mismatch: the status they
// propose the day should carry, with an explanation.
type VendorResolution struct {
	ProposedStatus attendance.Status `json:"proposed_status"`
	Comments       string            `json:"comments"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type ManagerResolution struct {
	Action    string    `json:"action"` // approve | reject
	Comments  string    `json:"comments"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Mismatch struct {
	ID             string
	SiteID         string
	VendorID       string
	Date           time.Time
	Month          string // YYYY-MM
	Reasons        []ReasonCode
	OriginalStatus attendance.Status
	// Expected and Actual are index-aligned with Reasons.
	Expected []Expectation
	Actual   []Expectation
	Status   Status
	Deadline time.Time

	VendorResolution  *VendorResolution
	ManagerResolution *ManagerResolution

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	VendorName       *string
	EmployeeCode     *string
	AttendanceStatus *attendance.Status
}

// Draft is a detected mismatch before it is persisted.
type Draft struct {
	SiteID         string
	VendorID       string
	Date           time.Time
	Month          string
	Reasons        []ReasonCode
	OriginalStatus attendance.Status
	Expected       []Expectation
	Actual         []Expectation
}

// SameReasons reports whether the draft carries exactly the reason-code
// sequence of the existing mismatch. Detection treats an identical sequence
// as a no-op re-run.
func (d *Draft) SameReasons(m *Mismatch) bool {
	if len(d.Reasons) != len(m.Reasons) {
		return false
	}
	for i, r := range d.Reasons {
		if m.Reasons[i] != r {
			return false
		}
	}
	return true
}

// MonthlyStats counts a site's mismatches for one month, keyed by status.
type MonthlyStats map[Status]int
