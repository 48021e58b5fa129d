// Package evidence holds the uploaded ground-truth records attendance is
// reconciled against: badge-swipe logs, WFH approvals and leave records.
// Evidence is immutable once uploaded for a month; a re-upload replaces the
// month wholesale.
package evidence

import "time"

// DataType identifies one evidence feed.
type DataType string

const (
	TypeSwipe DataType = "swipe_data"
	TypeWFH   DataType = "wfh_data"
	TypeLeave DataType = "leave_data"
)

var DataTypes = []DataType{TypeSwipe, TypeWFH, TypeLeave}

func (t DataType) Valid() bool {
	return t == TypeSwipe || t == TypeWFH || t == TypeLeave
}

// Availability reports which evidence feeds have been uploaded for a month.
// Detection rules only fire for feeds that are available.
type Availability struct {
	Swipe bool
	WFH   bool
	Leave bool
}

// SwipeRecord is one day of badge-swipe data for a vendor.
type SwipeRecord struct {
	ID           string
	EmployeeCode string
	VendorID     string
	Date         time.Time
	Login        *time.Time
	Logout       *time.Time
	TotalHours   float64
	Month        string // YYYY-MM
	UploadedAt   time.Time
}

// WFHRecord is an approved work-from-home span.
type WFHRecord struct {
	ID           string
	EmployeeCode string
	VendorID     string
	StartDate    time.Time
	EndDate      time.Time
	Duration     float64 // days
	Month        string
	UploadedAt   time.Time
}

// LeaveRecord is an approved leave span. StartTime/EndTime are "HH:MM:SS"
// clock times bounding the span on its first and last day; empty values mean
// the whole day.
type LeaveRecord struct {
	ID           string
	EmployeeCode string
	VendorID     string
	StartDate    time.Time
	EndDate      time.Time
	StartTime    string
	EndTime      string
	LeaveType    string
	Duration     float64 // days
	IsFullDay    bool
	Month        string
	UploadedAt   time.Time
}

// Covers reports whether the leave span overlaps the given day.
func (l *LeaveRecord) Covers(date time.Time) bool {
	return !date.Before(l.StartDate) && !date.After(l.EndDate)
}
