package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/handler/http/response"
	"github.com/vams-io/vams-backend-go/internal/pkg/dates"
	"github.com/vams-io/vams-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	MyMonth(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	PendingApprovals(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// monthOrCurrent reads the optional "month" query parameter, defaulting to
// the current month. Returns false after writing the error response when the
// value is malformed.
func monthOrCurrent(w http.ResponseWriter, r *http.Request) (string, bool) {
	month := r.URL.Query().Get("month")
	if month == "" {
		return time.Now().UTC().Format(dates.MonthLayout), true
	}
	if !validator.IsValidMonth(month) {
		response.BadRequest(w, "month must be in YYYY-MM format", nil)
		return "", false
	}
	return month, true
}

// Mark implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var markReq attendance.MarkRequest

	if err := json.NewDecoder(r.Body).Decode(&markReq); err != nil {
		slog.Error("Mark decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	caller := identityFromRequest(r)
	markReq.VendorID = caller.VendorID
	markReq.SiteID = caller.SiteID

	if err := markReq.Validate(); err != nil {
		slog.Error("Mark validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := a.attendanceService.Mark(r.Context(), markReq)
	if err != nil {
		slog.Error("Mark service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if result.OffsetRecorded {
		response.SuccessWithMessage(w, "Month is locked, hours recorded as offset for next month", result.Attendance.ToResponse())
		return
	}
	if result.ReapprovalStaged {
		response.SuccessWithMessage(w, "Change staged for manager reapproval", result.Attendance.ToResponse())
		return
	}
	response.SuccessWithMessage(w, "Attendance recorded", result.Attendance.ToResponse())
}

// MyMonth implements AttendanceHandler.
func (a *AttendanceHandlerImpl) MyMonth(w http.ResponseWriter, r *http.Request) {
	month, ok := monthOrCurrent(w, r)
	if !ok {
		return
	}

	caller := identityFromRequest(r)
	records, err := a.attendanceService.MonthForVendor(r.Context(), caller.VendorID, month)
	if err != nil {
		slog.Error("MyMonth service error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]attendance.Response, 0, len(records))
	for i := range records {
		responses = append(responses, records[i].ToResponse())
	}
	response.SuccessWithMessage(w, "Attendance retrieved successfully", responses)
}

// MySummary implements AttendanceHandler.
func (a *AttendanceHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	month, ok := monthOrCurrent(w, r)
	if !ok {
		return
	}

	caller := identityFromRequest(r)
	summary, err := a.attendanceService.MonthlySummary(r.Context(), caller.VendorID, month)
	if err != nil {
		slog.Error("MySummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Summary retrieved successfully", summary)
}

// PendingApprovals implements AttendanceHandler.
func (a *AttendanceHandlerImpl) PendingApprovals(w http.ResponseWriter, r *http.Request) {
	caller := identityFromRequest(r)
	records, err := a.attendanceService.PendingApprovals(r.Context(), caller.UserID)
	if err != nil {
		slog.Error("PendingApprovals service error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]attendance.Response, 0, len(records))
	for i := range records {
		responses = append(responses, records[i].ToResponse())
	}
	response.SuccessWithMessage(w, "Pending approvals retrieved successfully", responses)
}

// Approve implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var approveReq attendance.ApproveRequest

	if err := json.NewDecoder(r.Body).Decode(&approveReq); err != nil {
		slog.Error("Approve decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	approveReq.ManagerID = identityFromRequest(r).UserID

	if err := approveReq.Validate(); err != nil {
		slog.Error("Approve validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	record, err := a.attendanceService.Approve(r.Context(), approveReq)
	if err != nil {
		slog.Error("Approve service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance approved", record.ToResponse())
}

// Reject implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var rejectReq attendance.ApproveRequest

	if err := json.NewDecoder(r.Body).Decode(&rejectReq); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rejectReq.ManagerID = identityFromRequest(r).UserID

	if err := rejectReq.Validate(); err != nil {
		slog.Error("Reject validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	record, err := a.attendanceService.Reject(r.Context(), rejectReq)
	if err != nil {
		slog.Error("Reject service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance rejected", record.ToResponse())
}
