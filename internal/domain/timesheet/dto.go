package timesheet

import (
	"time"

	"github.com/vams-io/vams-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	SiteID string `json:"-"`
	Month  string `json:"month"`

	// Optional filters. Empty means all vendors on the site.
	ManagerID        string `json:"manager_id,omitempty"`
	VendingCompanyID string `json:"vending_company_id,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id is required",
		})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}
	if r.ManagerID != "" && !validator.IsValidUUID(r.ManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager_id",
			Message: "manager_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GenerateResult struct {
	Month     string `json:"month"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
}

type Response struct {
	ID                   string             `json:"id"`
	VendorID             string             `json:"vendor_id"`
	VendorName           *string            `json:"vendor_name,omitempty"`
	EmployeeCode         *string            `json:"employee_code,omitempty"`
	Month                string             `json:"month"`
	WorkDatesHours       map[string]float64 `json:"work_dates_hours"`
	MismatchLeaveDays    int                `json:"mismatch_leave_days"`
	OffsetDatesHours     map[string]float64 `json:"offset_dates_hours"`
	TotalWorkHours       float64            `json:"total_work_hours"`
	TotalOffsetHours     float64            `json:"total_offset_hours"`
	TotalHoursWithOffset float64            `json:"total_hours_with_offset"`
	GeneratedOn          string             `json:"generated_on"`
}

// ToResponse converts a Timesheet entity to Response
func (t *Timesheet) ToResponse() Response {
	return Response{
		ID:                   t.ID,
		VendorID:             t.VendorID,
		VendorName:           t.VendorName,
		EmployeeCode:         t.EmployeeCode,
		Month:                t.Month,
		WorkDatesHours:       t.WorkDatesHours,
		MismatchLeaveDays:    t.MismatchLeaveDays,
		OffsetDatesHours:     t.OffsetDatesHours,
		TotalWorkHours:       t.TotalWorkHours,
		TotalOffsetHours:     t.TotalOffsetHours,
		TotalHoursWithOffset: t.TotalHoursWithOffset,
		GeneratedOn:          t.GeneratedOn.Format(time.RFC3339),
	}
}

// WorkdayReport is the manager-facing summary expressed in workday units
// rather than hours.
type WorkdayReport struct {
	VendorID     string  `json:"vendor_id"`
	VendorName   *string `json:"vendor_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Month        string  `json:"month"`
	TotalDays    float64 `json:"total_days"`
	OfficeDays   float64 `json:"office_days"`
	WFHDays      float64 `json:"wfh_days"`
	LeaveDays    float64 `json:"leave_days"`
}
