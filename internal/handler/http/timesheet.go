package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vams-io/vams-backend-go/internal/domain/timesheet"
	"github.com/vams-io/vams-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	MyTimesheet(w http.ResponseWriter, r *http.Request)
	ForMonth(w http.ResponseWriter, r *http.Request)
	WorkdayReport(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.Service
}

func NewTimesheetHandler(timesheetService timesheet.Service) TimesheetHandler {
	return &TimesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

// Generate implements TimesheetHandler.
func (t *TimesheetHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var generateReq timesheet.GenerateRequest

	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		slog.Error("Generate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	caller := identityFromRequest(r)
	generateReq.SiteID = caller.SiteID

	if err := generateReq.Validate(); err != nil {
		slog.Error("Generate validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := t.timesheetService.Generate(r.Context(), &generateReq)
	if err != nil {
		slog.Error("Generate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Timesheets generated",
		"site_id", generateReq.SiteID,
		"month", result.Month,
		"generated", result.Generated,
		"skipped", result.Skipped)
	response.SuccessWithMessage(w, "Timesheets generated", result)
}

// MyTimesheet implements TimesheetHandler.
func (t *TimesheetHandlerImpl) MyTimesheet(w http.ResponseWriter, r *http.Request) {
	month, ok := monthOrCurrent(w, r)
	if !ok {
		return
	}

	caller := identityFromRequest(r)
	sheet, err := t.timesheetService.ForVendor(r.Context(), caller.VendorID, month)
	if err != nil {
		slog.Error("MyTimesheet service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet retrieved successfully", sheet.ToResponse())
}

// ForMonth implements TimesheetHandler.
func (t *TimesheetHandlerImpl) ForMonth(w http.ResponseWriter, r *http.Request) {
	month, ok := monthOrCurrent(w, r)
	if !ok {
		return
	}

	caller := identityFromRequest(r)
	sheets, err := t.timesheetService.ForMonth(r.Context(), caller.SiteID, month)
	if err != nil {
		slog.Error("ForMonth service error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]timesheet.Response, 0, len(sheets))
	for i := range sheets {
		responses = append(responses, sheets[i].ToResponse())
	}
	response.SuccessWithMessage(w, "Timesheets retrieved successfully", responses)
}

// WorkdayReport implements TimesheetHandler.
func (t *TimesheetHandlerImpl) WorkdayReport(w http.ResponseWriter, r *http.Request) {
	month, ok := monthOrCurrent(w, r)
	if !ok {
		return
	}

	caller := identityFromRequest(r)
	report, err := t.timesheetService.WorkdayReportForMonth(r.Context(), caller.SiteID, month)
	if err != nil {
		slog.Error("WorkdayReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Workday report retrieved successfully", report)
}
