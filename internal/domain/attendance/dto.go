package attendance

import (
	"github.com/vams-io/vams-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// MarkRequest is a vendor marking or editing their attendance for one day.
type MarkRequest struct {
	VendorID string `json:"-"`
	SiteID   string `json:"-"`
	Date     string `json:"date"` // YYYY-MM-DD
	Status   string `json:"status"`
	Comments string `json:"comments"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "unknown attendance status",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ApproveRequest is a manager approving or rejecting a record.
type ApproveRequest struct {
	AttendanceID string `json:"attendance_id"`
	ManagerID    string `json:"-"`
	Reason       string `json:"reason"` // rejection reason, ignored on approve
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkResult struct {
	Attendance Attendance
	// OffsetRecorded is set when the edit targeted a locked month: the
	// record still took the edit, and the hour delta was credited to the
	// next month's offset ledger.
	OffsetRecorded bool
	// ReapprovalStaged is set when the edit was staged for manager reapproval.
	ReapprovalStaged bool
	// MismatchCreated is set when re-detection raised a mismatch for the
	// edited day.
	MismatchCreated bool
}

type Response struct {
	ID               string  `json:"id"`
	VendorID         string  `json:"vendor_id"`
	VendorName       *string `json:"vendor_name,omitempty"`
	Date             string  `json:"date"`
	Status           string  `json:"status"`
	FinalStatus      *string `json:"final_status,omitempty"`
	ApprovalStatus   string  `json:"approval_status"`
	Comments         string  `json:"comments,omitempty"`
	RejectionReason  string  `json:"rejection_reason,omitempty"`
	IsMismatch       bool    `json:"is_mismatch"`
	MismatchResolved bool    `json:"mismatch_resolved"`
	ReapprovalStaged bool    `json:"reapproval_staged"`
}

// ToResponse converts an Attendance entity to Response
func (a *Attendance) ToResponse() Response {
	resp := Response{
		ID:               a.ID,
		VendorID:         a.VendorID,
		VendorName:       a.VendorName,
		Date:             a.Date.Format("2006-01-02"),
		Status:           string(a.Status),
		ApprovalStatus:   string(a.ApprovalStatus),
		Comments:         a.Comments,
		RejectionReason:  a.RejectionReason,
		IsMismatch:       a.IsMismatch,
		MismatchResolved: a.MismatchResolved,
		ReapprovalStaged: a.Reapproval != nil,
	}
	if a.FinalStatus != nil {
		s := string(*a.FinalStatus)
		resp.FinalStatus = &s
	}
	return resp
}

// MonthlySummary aggregates a vendor's month, counting half days as 0.5.
type MonthlySummary struct {
	TotalDays int     `json:"total_days"`
	Present   float64 `json:"present"`
	WFH       float64 `json:"wfh"`
	Leave     float64 `json:"leave"`
	Pending   int     `json:"pending"`
	Approved  int     `json:"approved"`
	Rejected  int     `json:"rejected"`
}
