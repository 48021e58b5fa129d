package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"

	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
	"github.com/vams-io/vams-backend-go/internal/handler/http/response"
	"github.com/vams-io/vams-backend-go/internal/pkg/validator"
)

type MismatchHandler interface {
	MyMismatches(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	TeamMismatches(w http.ResponseWriter, r *http.Request)
	Action(w http.ResponseWriter, r *http.Request)
	RunDetection(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type MismatchHandlerImpl struct {
	mismatchService mismatch.Service
}

func NewMismatchHandler(mismatchService mismatch.Service) MismatchHandler {
	return &MismatchHandlerImpl{
		mismatchService: mismatchService,
	}
}

// MyMismatches implements MismatchHandler.
func (m *MismatchHandlerImpl) MyMismatches(w http.ResponseWriter, r *http.Request) {
	var statusFilter *mismatch.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := mismatch.Status(raw)
		if !slices.Contains(mismatch.Statuses, status) {
			response.BadRequest(w, "unknown mismatch status", nil)
			return
		}
		statusFilter = &status
	}

	caller := identityFromRequest(r)
	mismatches, err := m.mismatchService.ForVendor(r.Context(), caller.VendorID, statusFilter)
	if err != nil {
		slog.Error("MyMismatches service error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]mismatch.Response, 0, len(mismatches))
	for i := range mismatches {
		responses = append(responses, mismatches[i].ToResponse())
	}
	response.SuccessWithMessage(w, "Mismatches retrieved successfully", responses)
}

// Resolve implements MismatchHandler.
func (m *MismatchHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	var resolveReq mismatch.ResolveRequest

	if err := json.NewDecoder(r.Body).Decode(&resolveReq); err != nil {
		slog.Error("Resolve decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resolveReq.VendorID = identityFromRequest(r).VendorID

	if err := resolveReq.Validate(); err != nil {
		slog.Error("Resolve validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	resolved, err := m.mismatchService.Resolve(r.Context(), resolveReq)
	if err != nil {
		slog.Error("Resolve service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Mismatch resolution submitted", resolved.ToResponse())
}

// TeamMismatches implements MismatchHandler.
func (m *MismatchHandlerImpl) TeamMismatches(w http.ResponseWriter, r *http.Request) {
	caller := identityFromRequest(r)
	mismatches, err := m.mismatchService.ForManager(r.Context(), caller.UserID)
	if err != nil {
		slog.Error("TeamMismatches service error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]mismatch.Response, 0, len(mismatches))
	for i := range mismatches {
		responses = append(responses, mismatches[i].ToResponse())
	}
	response.SuccessWithMessage(w, "Team mismatches retrieved successfully", responses)
}

// Action implements MismatchHandler.
func (m *MismatchHandlerImpl) Action(w http.ResponseWriter, r *http.Request) {
	var actionReq mismatch.ActionRequest

	if err := json.NewDecoder(r.Body).Decode(&actionReq); err != nil {
		slog.Error("Action decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actionReq.ManagerID = identityFromRequest(r).UserID

	if err := actionReq.Validate(); err != nil {
		slog.Error("Action validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	acted, err := m.mismatchService.ManagerAction(r.Context(), actionReq)
	if err != nil {
		slog.Error("Action service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Mismatch action recorded", acted.ToResponse())
}

type runDetectionRequest struct {
	SiteID string `json:"site_id"`
	Month  string `json:"month"`
}

func (r *runDetectionRequest) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RunDetection implements MismatchHandler.
func (m *MismatchHandlerImpl) RunDetection(w http.ResponseWriter, r *http.Request) {
	var detectReq runDetectionRequest

	if err := json.NewDecoder(r.Body).Decode(&detectReq); err != nil {
		slog.Error("RunDetection decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := detectReq.Validate(); err != nil {
		slog.Error("RunDetection validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := m.mismatchService.RunDetection(r.Context(), detectReq.SiteID, detectReq.Month)
	if err != nil {
		slog.Error("RunDetection service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Mismatch detection completed",
		"site_id", result.SiteID,
		"month", result.Month,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped)
	response.SuccessWithMessage(w, "Detection completed", result)
}

// Stats implements MismatchHandler.
func (m *MismatchHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	month, ok := monthOrCurrent(w, r)
	if !ok {
		return
	}
	siteID := r.URL.Query().Get("site_id")
	if siteID == "" {
		siteID = identityFromRequest(r).SiteID
	}
	if siteID == "" {
		response.BadRequest(w, "site_id is required", nil)
		return
	}

	stats, err := m.mismatchService.StatsForMonth(r.Context(), siteID, month)
	if err != nil {
		slog.Error("Stats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Mismatch statistics retrieved successfully", stats)
}
