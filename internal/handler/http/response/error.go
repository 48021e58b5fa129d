package response

import (
	"errors"
	"net/http"

	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/domain/auth"
	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
	"github.com/vams-io/vams-backend-go/internal/domain/timesheet"
	"github.com/vams-io/vams-backend-go/internal/domain/user"
	"github.com/vams-io/vams-backend-go/internal/domain/vendor"
	"github.com/vams-io/vams-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Role errors
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrVendorAccessRequired):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDateOutsideEditRange):
		BadRequest(w, "Date is outside the allowed edit range", nil)
	case errors.Is(err, attendance.ErrUnresolvedMismatch):
		Conflict(w, "Attendance has an unresolved mismatch")
	case errors.Is(err, attendance.ErrAlreadyProcessed):
		Conflict(w, "Attendance has already been approved or rejected")
	case errors.Is(err, attendance.ErrNotTeamManager):
		Forbidden(w, "Attendance belongs to another manager's team")
	case errors.Is(err, attendance.ErrNotOwner):
		Forbidden(w, "Attendance belongs to another vendor")

	// Mismatch workflow errors
	case errors.Is(err, mismatch.ErrMismatchNotFound):
		NotFound(w, "Mismatch not found")
	case errors.Is(err, mismatch.ErrNotOwner):
		Forbidden(w, "Mismatch belongs to another vendor")
	case errors.Is(err, mismatch.ErrNotTeamManager):
		Forbidden(w, "Mismatch belongs to another manager's team")
	case errors.Is(err, mismatch.ErrDeadlineExpired):
		Conflict(w, "Resolution deadline has passed")
	case errors.Is(err, mismatch.ErrAlreadyFinal):
		Conflict(w, "Mismatch is already in a terminal state")
	case errors.Is(err, mismatch.ErrNotYetResolved):
		Conflict(w, "Vendor has not resolved this mismatch yet")
	case errors.Is(err, mismatch.ErrNotExpirable):
		Conflict(w, "Mismatch deadline has not passed")

	// Cycle / evidence errors
	case errors.Is(err, cycle.ErrCycleNotFound):
		NotFound(w, "Monthly cycle not found")
	case errors.Is(err, cycle.ErrAlreadyLocked):
		Conflict(w, "Month is already locked for timesheets")
	case errors.Is(err, evidence.ErrUploadsLocked):
		Conflict(w, "Uploads are locked for this month")
	case errors.Is(err, evidence.ErrUnknownDataType):
		BadRequest(w, "Unknown evidence data type", nil)

	// Timesheet errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrCycleDataIncomplete):
		Conflict(w, "Not all evidence data uploaded for this month")
	case errors.Is(err, timesheet.ErrMismatchesNotProcessed):
		Conflict(w, "Mismatch detection has not run for this month")
	case errors.Is(err, timesheet.ErrUnresolvedMismatches):
		Conflict(w, "Pending mismatches remain for this month")

	// Vendor errors
	case errors.Is(err, vendor.ErrVendorNotFound):
		NotFound(w, "Vendor not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
