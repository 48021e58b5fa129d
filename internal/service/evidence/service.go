package evidence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
	"github.com/vams-io/vams-backend-go/internal/domain/vendor"
	"github.com/vams-io/vams-backend-go/internal/pkg/dates"
)

type EvidenceServiceImpl struct {
	swipeRepo  evidence.SwipeRepository
	wfhRepo    evidence.WFHRepository
	leaveRepo  evidence.LeaveRepository
	vendorRepo vendor.Repository
	cycles     cycle.Service
	now        func() time.Time
}

func NewEvidenceService(
	swipeRepo evidence.SwipeRepository,
	wfhRepo evidence.WFHRepository,
	leaveRepo evidence.LeaveRepository,
	vendorRepo vendor.Repository,
	cycles cycle.Service,
) evidence.Service {
	return &EvidenceServiceImpl{
		swipeRepo:  swipeRepo,
		wfhRepo:    wfhRepo,
		leaveRepo:  leaveRepo,
		vendorRepo: vendorRepo,
		cycles:     cycles,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ReplaceMonth implements evidence.Service.
func (s *EvidenceServiceImpl) ReplaceMonth(ctx context.Context, req evidence.UploadRequest) (evidence.UploadResult, error) {
	result := evidence.UploadResult{Month: req.Month, DataType: req.DataType}

	if err := req.Validate(); err != nil {
		return result, err
	}

	locked, err := s.cycles.IsTimesheetGenerated(ctx, req.SiteID, req.Month)
	if err != nil {
		return result, fmt.Errorf("failed to check cycle lock: %w", err)
	}
	if locked {
		return result, evidence.ErrUploadsLocked
	}

	byCode, err := s.vendorsByCode(ctx, req.SiteID)
	if err != nil {
		return result, err
	}

	switch req.DataType {
	case evidence.TypeSwipe:
		result.Inserted, result.Skipped, err = s.replaceSwipes(ctx, req, byCode)
	case evidence.TypeWFH:
		result.Inserted, result.Skipped, err = s.replaceWFH(ctx, req, byCode)
	case evidence.TypeLeave:
		result.Inserted, result.Skipped, err = s.replaceLeaves(ctx, req, byCode)
	default:
		return result, evidence.ErrUnknownDataType
	}
	if err != nil {
		return result, err
	}

	if _, err := s.cycles.MarkUploaded(ctx, req.SiteID, req.Month, req.DataType, s.now()); err != nil {
		return result, fmt.Errorf("failed to flip cycle upload flag: %w", err)
	}

	return result, nil
}

func (s *EvidenceServiceImpl) vendorsByCode(ctx context.Context, siteID string) (map[string]vendor.Vendor, error) {
	vendors, err := s.vendorRepo.List(ctx, vendor.Filter{SiteID: siteID})
	if err != nil {
		return nil, fmt.Errorf("failed to list site vendors: %w", err)
	}
	byCode := make(map[string]vendor.Vendor, len(vendors))
	for _, v := range vendors {
		byCode[v.EmployeeCode] = v
	}
	return byCode, nil
}

func (s *EvidenceServiceImpl) replaceSwipes(ctx context.Context, req evidence.UploadRequest, byCode map[string]vendor.Vendor) (int, int, error) {
	records := make([]evidence.SwipeRecord, 0, len(req.Swipes))
	skipped := 0
	uploadedAt := s.now()

	for _, row := range req.Swipes {
		v, ok := byCode[row.EmployeeCode]
		if !ok {
			slog.Warn("Skipping swipe row for unknown employee code",
				"employee_code", row.EmployeeCode, "month", req.Month)
			skipped++
			continue
		}
		date, err := dates.ParseDate(row.Date)
		if err != nil {
			slog.Warn("Skipping swipe row with bad date",
				"employee_code", row.EmployeeCode, "date", row.Date)
			skipped++
			continue
		}

		rec := evidence.SwipeRecord{
			EmployeeCode: row.EmployeeCode,
			VendorID:     v.ID,
			Date:         date,
			TotalHours:   row.TotalHours,
			Month:        req.Month,
			UploadedAt:   uploadedAt,
		}
		if row.Login != "" {
			if t, err := dates.AtTime(date, row.Login); err == nil {
				rec.Login = &t
			}
		}
		if row.Logout != "" {
			if t, err := dates.AtTime(date, row.Logout); err == nil {
				rec.Logout = &t
			}
		}
		records = append(records, rec)
	}

	inserted, err := s.swipeRepo.ReplaceMonth(ctx, req.Month, records)
	if err != nil {
		return 0, skipped, fmt.Errorf("failed to replace swipe data: %w", err)
	}
	return inserted, skipped, nil
}

func (s *EvidenceServiceImpl) replaceWFH(ctx context.Context, req evidence.UploadRequest, byCode map[string]vendor.Vendor) (int, int, error) {
	records := make([]evidence.WFHRecord, 0, len(req.WFH))
	skipped := 0
	uploadedAt := s.now()

	for _, row := range req.WFH {
		v, ok := byCode[row.EmployeeCode]
		if !ok {
			slog.Warn("Skipping wfh row for unknown employee code",
				"employee_code", row.EmployeeCode, "month", req.Month)
			skipped++
			continue
		}
		start, err := dates.ParseDate(row.StartDate)
		if err != nil {
			skipped++
			continue
		}
		end, err := dates.ParseDate(row.EndDate)
		if err != nil || end.Before(start) {
			skipped++
			continue
		}

		records = append(records, evidence.WFHRecord{
			EmployeeCode: row.EmployeeCode,
			VendorID:     v.ID,
			StartDate:    start,
			EndDate:      end,
			Duration:     row.Duration,
			Month:        req.Month,
			UploadedAt:   uploadedAt,
		})
	}

	inserted, err := s.wfhRepo.ReplaceMonth(ctx, req.Month, records)
	if err != nil {
		return 0, skipped, fmt.Errorf("failed to replace wfh data: %w", err)
	}
	return inserted, skipped, nil
}

func (s *EvidenceServiceImpl) replaceLeaves(ctx context.Context, req evidence.UploadRequest, byCode map[string]vendor.Vendor) (int, int, error) {
	records := make([]evidence.LeaveRecord, 0, len(req.Leaves))
	skipped := 0
	uploadedAt := s.now()

	for _, row := range req.Leaves {
		v, ok := byCode[row.EmployeeCode]
		if !ok {
			slog.Warn("Skipping leave row for unknown employee code",
				"employee_code", row.EmployeeCode, "month", req.Month)
			skipped++
			continue
		}
		start, err := dates.ParseDate(row.StartDate)
		if err != nil {
			skipped++
			continue
		}
		end, err := dates.ParseDate(row.EndDate)
		if err != nil || end.Before(start) {
			skipped++
			continue
		}

		records = append(records, evidence.LeaveRecord{
			EmployeeCode: row.EmployeeCode,
			VendorID:     v.ID,
			StartDate:    start,
			EndDate:      end,
			StartTime:    row.StartTime,
			EndTime:      row.EndTime,
			LeaveType:    row.LeaveType,
			Duration:     row.Duration,
			IsFullDay:    row.IsFullDay,
			Month:        req.Month,
			UploadedAt:   uploadedAt,
		})
	}

	inserted, err := s.leaveRepo.ReplaceMonth(ctx, req.Month, records)
	if err != nil {
		return 0, skipped, fmt.Errorf("failed to replace leave data: %w", err)
	}
	return inserted, skipped, nil
}
