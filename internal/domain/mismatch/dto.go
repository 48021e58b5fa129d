package mismatch

import (
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/pkg/validator"
)

// ========================================
// MISMATCH WORKFLOW DTOs
// ========================================

// ResolveRequest is a vendor answering a mismatch before its deadline.
type ResolveRequest struct {
	MismatchID     string `json:"mismatch_id"`
	VendorID       string `json:"-"`
	ProposedStatus string `json:"proposed_status"`
	Comments       string `json:"comments"`
}

func (r *ResolveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.MismatchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "mismatch_id",
			Message: "mismatch_id is required",
		})
	}

	if validator.IsEmpty(r.ProposedStatus) {
		errs = append(errs, validator.ValidationError{
			Field:   "proposed_status",
			Message: "proposed_status is required",
		})
	} else if !attendance.Status(r.ProposedStatus).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "proposed_status",
			Message: "unknown attendance status",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ActionRequest is a manager approving or rejecting a vendor's resolution.
type ActionRequest struct {
	MismatchID string `json:"mismatch_id"`
	ManagerID  string `json:"-"`
	Action     string `json:"action"` // approve | reject
	Comments   string `json:"comments"`
}

func (r *ActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.MismatchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "mismatch_id",
			Message: "mismatch_id is required",
		})
	}

	if r.Action != "approve" && r.Action != "reject" {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be approve or reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DetectionResult summarizes a batch detection run.
type DetectionResult struct {
	SiteID  string `json:"site_id"`
	Month   string `json:"month"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"` // records that failed and were passed over
}

// Count is the total number of mismatches the run created or refreshed.
func (r DetectionResult) Count() int {
	return r.Created + r.Updated
}

type Response struct {
	ID             string        `json:"id"`
	VendorID       string        `json:"vendor_id"`
	VendorName     *string       `json:"vendor_name,omitempty"`
	Date           string        `json:"date"`
	Month          string        `json:"month"`
	Reasons        []string      `json:"reasons"`
	Descriptions   []string      `json:"descriptions"`
	OriginalStatus string        `json:"original_status"`
	Expected       []Expectation `json:"expected"`
	Actual         []Expectation `json:"actual"`
	Status         string        `json:"status"`
	Deadline       string        `json:"deadline"`

	VendorResolution  *VendorResolution  `json:"vendor_resolution,omitempty"`
	ManagerResolution *ManagerResolution `json:"manager_resolution,omitempty"`
}

// ToResponse converts a Mismatch entity to Response
func (m *Mismatch) ToResponse() Response {
	reasons := make([]string, len(m.Reasons))
	descriptions := make([]string, len(m.Reasons))
	for i, r := range m.Reasons {
		reasons[i] = string(r)
		descriptions[i] = r.Description()
	}

	return Response{
		ID:                m.ID,
		VendorID:          m.VendorID,
		VendorName:        m.VendorName,
		Date:              m.Date.Format("2006-01-02"),
		Month:             m.Month,
		Reasons:           reasons,
		Descriptions:      descriptions,
		OriginalStatus:    string(m.OriginalStatus),
		Expected:          m.Expected,
		Actual:            m.Actual,
		Status:            string(m.Status),
		Deadline:          m.Deadline.Format(time.RFC3339),
		VendorResolution:  m.VendorResolution,
		ManagerResolution: m.ManagerResolution,
	}
}
