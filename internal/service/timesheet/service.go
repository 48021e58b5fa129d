package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vams-io/vams-backend-go/internal/config"
	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
	"github.com/vams-io/vams-backend-go/internal/domain/offset"
	"github.com/vams-io/vams-backend-go/internal/domain/timesheet"
	"github.com/vams-io/vams-backend-go/internal/domain/vendor"
	"github.com/vams-io/vams-backend-go/internal/pkg/dates"
)

type TimesheetServiceImpl struct {
	timesheet.Repository
	attendanceRepo attendance.Repository
	mismatchRepo   mismatch.Repository
	offsetRepo     offset.Repository
	vendorRepo     vendor.Repository
	cycles         cycle.Service
	cfg            config.ReconciliationConfig
	now            func() time.Time
}

func NewTimesheetService(
	repo timesheet.Repository,
	attendanceRepo attendance.Repository,
	mismatchRepo mismatch.Repository,
	offsetRepo offset.Repository,
	vendorRepo vendor.Repository,
	cycles cycle.Service,
	cfg config.ReconciliationConfig,
) timesheet.Service {
	return &TimesheetServiceImpl{
		Repository:     repo,
		attendanceRepo: attendanceRepo,
		mismatchRepo:   mismatchRepo,
		offsetRepo:     offsetRepo,
		vendorRepo:     vendorRepo,
		cycles:         cycles,
		cfg:            cfg,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Generate implements timesheet.Service.
func (s *TimesheetServiceImpl) Generate(ctx context.Context, req *timesheet.GenerateRequest) (*timesheet.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	result := &timesheet.GenerateResult{Month: req.Month}

	cyc, err := s.cycles.Ensure(ctx, req.SiteID, req.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly cycle: %w", err)
	}
	if !cyc.AllDataUploaded() {
		return nil, timesheet.ErrCycleDataIncomplete
	}
	if !cyc.MismatchProcessed {
		return nil, timesheet.ErrMismatchesNotProcessed
	}

	vendors, err := s.vendorRepo.List(ctx, vendor.Filter{
		SiteID:           req.SiteID,
		ManagerID:        req.ManagerID,
		VendingCompanyID: req.VendingCompanyID,
		ActiveOnly:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}

	for i := range vendors {
		if err := s.generateForVendor(ctx, &vendors[i], req.Month); err != nil {
			slog.Error("Timesheet generation skipped vendor",
				"vendor_id", vendors[i].ID, "month", req.Month, "error", err)
			result.Skipped++
			continue
		}
		result.Generated++
	}

	// First successful run locks the month; regeneration hits the
	// already-locked cycle, which is fine.
	if _, err := s.cycles.LockForTimesheet(ctx, req.SiteID, req.Month); err != nil && !errors.Is(err, cycle.ErrAlreadyLocked) {
		return result, fmt.Errorf("failed to lock monthly cycle: %w", err)
	}

	return result, nil
}

// generateForVendor rebuilds one vendor's timesheet wholesale. Generation is
// idempotent: running it twice over unchanged inputs upserts the same sheet.
func (s *TimesheetServiceImpl) generateForVendor(ctx context.Context, v *vendor.Vendor, month string) error {
	records, err := s.attendanceRepo.ListByVendorAndMonth(ctx, v.ID, month)
	if err != nil {
		return fmt.Errorf("failed to list attendance: %w", err)
	}

	mismatches, err := s.mismatchRepo.ListByVendorAndMonth(ctx, v.ID, month)
	if err != nil {
		return fmt.Errorf("failed to list mismatches: %w", err)
	}
	byDate := make(map[string]*mismatch.Mismatch, len(mismatches))
	for i := range mismatches {
		byDate[mismatches[i].Date.Format(dates.DateLayout)] = &mismatches[i]
	}

	sheet := &timesheet.Timesheet{
		VendorID:         v.ID,
		Month:            month,
		WorkDatesHours:   make(map[string]float64),
		OffsetDatesHours: make(map[string]float64),
		GeneratedOn:      s.now(),
	}

	for i := range records {
		att := &records[i]
		day := att.Date.Format(dates.DateLayout)

		hours, unresolved := s.creditFor(att, byDate[day])
		sheet.WorkDatesHours[day] = hours
		if unresolved {
			sheet.MismatchLeaveDays++
		}
	}

	offsets, err := s.offsetRepo.SummaryForMonth(ctx, v.ID, month)
	if err != nil {
		return fmt.Errorf("failed to summarize offsets: %w", err)
	}
	for day, hours := range offsets.DatesHours {
		sheet.OffsetDatesHours[day] = hours
	}

	sheet.Recompute()

	if err := s.Repository.Upsert(ctx, sheet); err != nil {
		return fmt.Errorf("failed to upsert timesheet: %w", err)
	}
	return nil
}

// creditFor returns the hour credit for one day and whether the day was
// zeroed by an unresolved mismatch. A vendor_updated mismatch substitutes the
// proposed status's credit; terminal mismatches already finalized the record.
func (s *TimesheetServiceImpl) creditFor(att *attendance.Attendance, m *mismatch.Mismatch) (float64, bool) {
	if att.Finalized() {
		return att.EffectiveStatus().WorkHours(), false
	}

	if m != nil && m.Status == mismatch.StatusVendorUpdated && m.VendorResolution != nil {
		return m.VendorResolution.ProposedStatus.WorkHours(), false
	}

	return 0, true
}

// ForVendor implements timesheet.Service.
func (s *TimesheetServiceImpl) ForVendor(ctx context.Context, vendorID, month string) (*timesheet.Timesheet, error) {
	return s.Repository.GetByVendorAndMonth(ctx, vendorID, month)
}

// ForMonth implements timesheet.Service.
func (s *TimesheetServiceImpl) ForMonth(ctx context.Context, siteID, month string) ([]timesheet.Timesheet, error) {
	return s.Repository.ListByMonth(ctx, siteID, month)
}

// WorkdayReportForMonth implements timesheet.Service.
func (s *TimesheetServiceImpl) WorkdayReportForMonth(ctx context.Context, siteID, month string) ([]timesheet.WorkdayReport, error) {
	vendors, err := s.vendorRepo.List(ctx, vendor.Filter{SiteID: siteID, ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}

	reports := make([]timesheet.WorkdayReport, 0, len(vendors))
	for i := range vendors {
		v := &vendors[i]
		records, err := s.attendanceRepo.ListByVendorAndMonth(ctx, v.ID, month)
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance for vendor %s: %w", v.ID, err)
		}

		report := timesheet.WorkdayReport{
			VendorID:     v.ID,
			VendorName:   &v.Name,
			EmployeeCode: &v.EmployeeCode,
			Month:        month,
		}
		for j := range records {
			status := records[j].EffectiveStatus()
			split := splitWorkday(status, s.cfg.WFHWorkdayRate)
			report.TotalDays += status.WorkdayValue(s.cfg.WFHWorkdayRate)
			report.OfficeDays += split.office
			report.WFHDays += split.wfh
			report.LeaveDays += split.leave
		}
		reports = append(reports, report)
	}
	return reports, nil
}
