package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
	"github.com/vams-io/vams-backend-go/internal/handler/http/response"
)

type EvidenceHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	CycleStatus(w http.ResponseWriter, r *http.Request)
	ListCycles(w http.ResponseWriter, r *http.Request)
}

type EvidenceHandlerImpl struct {
	evidenceService evidence.Service
	cycleService    cycle.Service
}

func NewEvidenceHandler(evidenceService evidence.Service, cycleService cycle.Service) EvidenceHandler {
	return &EvidenceHandlerImpl{
		evidenceService: evidenceService,
		cycleService:    cycleService,
	}
}

// Upload implements EvidenceHandler.
func (e *EvidenceHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	var uploadReq evidence.UploadRequest

	if err := json.NewDecoder(r.Body).Decode(&uploadReq); err != nil {
		slog.Error("Upload decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	uploadReq.SiteID = chi.URLParam(r, "siteID")

	if err := uploadReq.Validate(); err != nil {
		slog.Error("Upload validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := e.evidenceService.ReplaceMonth(r.Context(), uploadReq)
	if err != nil {
		slog.Error("Upload service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Evidence uploaded",
		"site_id", uploadReq.SiteID,
		"month", result.Month,
		"data_type", result.DataType,
		"inserted", result.Inserted,
		"skipped", result.Skipped)
	response.SuccessWithMessage(w, "Evidence uploaded", result)
}

// CycleStatus implements EvidenceHandler.
func (e *EvidenceHandlerImpl) CycleStatus(w http.ResponseWriter, r *http.Request) {
	month, ok := monthOrCurrent(w, r)
	if !ok {
		return
	}
	siteID := chi.URLParam(r, "siteID")

	current, err := e.cycleService.Ensure(r.Context(), siteID, month)
	if err != nil {
		slog.Error("CycleStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Cycle retrieved successfully", current.ToResponse())
}

// ListCycles implements EvidenceHandler.
func (e *EvidenceHandlerImpl) ListCycles(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	cycles, err := e.cycleService.ListBySite(r.Context(), siteID)
	if err != nil {
		slog.Error("ListCycles service error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]cycle.Response, 0, len(cycles))
	for i := range cycles {
		responses = append(responses, cycles[i].ToResponse())
	}
	response.SuccessWithMessage(w, "Cycles retrieved successfully", responses)
}
