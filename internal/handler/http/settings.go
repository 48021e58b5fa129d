package http

import (
	"net/http"

	"github.com/vams-io/vams-backend-go/internal/config"
	"github.com/vams-io/vams-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	View(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	cfg config.ReconciliationConfig
}

func NewSettingsHandler(cfg config.ReconciliationConfig) SettingsHandler {
	return &SettingsHandlerImpl{cfg: cfg}
}

type settingsResponse struct {
	MinOfficeHours              float64 `json:"min_office_hours"`
	MinHalfOfficeHours          float64 `json:"min_half_office_hours"`
	MinHalfLeaveHours           float64 `json:"min_half_leave_hours"`
	MinFullLeaveHours           float64 `json:"min_full_leave_hours"`
	WFHWorkdayRate              float64 `json:"wfh_workday_rate"`
	LeaveWindowStart            string  `json:"leave_window_start"`
	LeaveWindowEnd              string  `json:"leave_window_end"`
	ResolutionDeadlineDays      int     `json:"resolution_deadline_days"`
	ManagerApprovalDeadlineDays int     `json:"manager_approval_deadline_days"`
	DefaultExpiredStatus        string  `json:"default_expired_status"`
	AutoApproveExpired          bool    `json:"auto_approve_expired"`
}

// View implements SettingsHandler.
func (s *SettingsHandlerImpl) View(w http.ResponseWriter, r *http.Request) {
	response.Success(w, settingsResponse{
		MinOfficeHours:              s.cfg.MinOfficeHours,
		MinHalfOfficeHours:          s.cfg.MinHalfOfficeHours,
		MinHalfLeaveHours:           s.cfg.MinHalfLeaveHours,
		MinFullLeaveHours:           s.cfg.MinFullLeaveHours,
		WFHWorkdayRate:              s.cfg.WFHWorkdayRate,
		LeaveWindowStart:            s.cfg.LeaveWindowStart,
		LeaveWindowEnd:              s.cfg.LeaveWindowEnd,
		ResolutionDeadlineDays:      s.cfg.ResolutionDeadlineDays,
		ManagerApprovalDeadlineDays: s.cfg.ManagerApprovalDeadlineDays,
		DefaultExpiredStatus:        s.cfg.DefaultExpiredStatus,
		AutoApproveExpired:          s.cfg.AutoApproveExpired,
	})
}
