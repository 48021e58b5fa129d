package evidence

import (
	"github.com/vams-io/vams-backend-go/internal/pkg/validator"
)

// UploadRequest replaces one evidence feed for a month. Rows arrive already
// parsed; file-format handling happens upstream of the core.
type UploadRequest struct {
	SiteID   string     `json:"-"`
	Month    string     `json:"month"` // YYYY-MM
	DataType DataType   `json:"data_type"`
	Swipes   []SwipeRow `json:"swipes,omitempty"`
	WFH      []SpanRow  `json:"wfh,omitempty"`
	Leaves   []LeaveRow `json:"leaves,omitempty"`
}

type SwipeRow struct {
	EmployeeCode string  `json:"employee_code"`
	Date         string  `json:"date"` // YYYY-MM-DD
	Login        string  `json:"login,omitempty"`
	Logout       string  `json:"logout,omitempty"`
	TotalHours   float64 `json:"total_hours"`
}

type SpanRow struct {
	EmployeeCode string  `json:"employee_code"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Duration     float64 `json:"duration"`
}

type LeaveRow struct {
	EmployeeCode string  `json:"employee_code"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	StartTime    string  `json:"start_time,omitempty"` // HH:MM:SS
	EndTime      string  `json:"end_time,omitempty"`
	LeaveType    string  `json:"leave_type,omitempty"`
	Duration     float64 `json:"duration"`
	IsFullDay    bool    `json:"is_full_day"`
}

func (r *UploadRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if !r.DataType.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "data_type",
			Message: "data_type must be one of swipe_data, wfh_data, leave_data",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UploadResult struct {
	Month    string   `json:"month"`
	DataType DataType `json:"data_type"`
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
}
