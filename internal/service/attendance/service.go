package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
	"github.com/vams-io/vams-backend-go/internal/domain/offset"
	"github.com/vams-io/vams-backend-go/internal/domain/vendor"
	"github.com/vams-io/vams-backend-go/internal/pkg/dates"
	"github.com/vams-io/vams-backend-go/internal/pkg/keylock"
)

type AttendanceServiceImpl struct {
	attendance.Repository
	vendorRepo  vendor.Repository
	offsetRepo  offset.Repository
	cycles      cycle.Service
	mismatches  mismatch.Service
	locks       *keylock.KeyLock
	now         func() time.Time
}

func NewAttendanceService(
	repo attendance.Repository,
	vendorRepo vendor.Repository,
	offsetRepo offset.Repository,
	cycles cycle.Service,
	mismatches mismatch.Service,
	locks *keylock.KeyLock,
) attendance.Service {
	return &AttendanceServiceImpl{
		Repository: repo,
		vendorRepo: vendorRepo,
		offsetRepo: offsetRepo,
		cycles:     cycles,
		mismatches: mismatches,
		locks:      locks,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Mark implements attendance.Service.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.MarkResult, error) {
	var result attendance.MarkResult

	if err := req.Validate(); err != nil {
		return result, err
	}
	date, err := dates.ParseDate(req.Date)
	if err != nil {
		return result, err
	}
	if !s.editable(date) {
		return result, attendance.ErrDateOutsideEditRange
	}

	// Serialize mutations per vendor-day so a concurrent timesheet lock
	// flip routes the edit to exactly one month.
	lockKey := req.VendorID + "|" + req.Date
	s.locks.Lock(lockKey)
	defer s.locks.Unlock(lockKey)

	month := dates.MonthOf(date)
	locked, err := s.cycles.IsTimesheetGenerated(ctx, req.SiteID, month)
	if err != nil {
		return result, fmt.Errorf("failed to check cycle lock: %w", err)
	}

	existing, err := s.Repository.GetByVendorAndDate(ctx, req.VendorID, date)
	if err != nil {
		return result, fmt.Errorf("failed to load attendance: %w", err)
	}
	if existing != nil && existing.IsMismatch && !existing.MismatchResolved {
		return result, attendance.ErrUnresolvedMismatch
	}

	if locked {
		// The generated timesheet stays untouched; the hour delta is
		// credited to next month's ledger. The record itself still
		// takes the edit below so re-detection sees the new status.
		if err := s.recordLateChange(ctx, req, month, existing); err != nil {
			return result, err
		}
		result.OffsetRecorded = true
	}

	switch {
	case existing == nil:
		created, err := s.Repository.Create(ctx, attendance.Attendance{
			SiteID:         req.SiteID,
			VendorID:       req.VendorID,
			Date:           date,
			Status:         attendance.Status(req.Status),
			ApprovalStatus: attendance.ApprovalPending,
			Comments:       req.Comments,
		})
		if err != nil {
			return result, fmt.Errorf("failed to create attendance: %w", err)
		}
		result.Attendance = created

	case existing.ApprovalStatus != attendance.ApprovalPending:
		// Already settled by a manager; the edit waits for reapproval.
		existing.Reapproval = &attendance.ReapprovalStaging{
			Previous: attendance.Snapshot{Status: existing.Status, Comments: existing.Comments},
			Proposed: attendance.Snapshot{Status: attendance.Status(req.Status), Comments: req.Comments},
		}
		if err := s.Repository.Update(ctx, *existing); err != nil {
			return result, fmt.Errorf("failed to stage reapproval: %w", err)
		}
		result.Attendance = *existing
		result.ReapprovalStaged = true

	default:
		existing.Status = attendance.Status(req.Status)
		existing.Comments = req.Comments
		if err := s.Repository.Update(ctx, *existing); err != nil {
			return result, fmt.Errorf("failed to update attendance: %w", err)
		}
		result.Attendance = *existing
	}

	raised, err := s.mismatches.RedetectDay(ctx, req.VendorID, date)
	if err != nil {
		return result, fmt.Errorf("failed to re-detect mismatches: %w", err)
	}
	result.MismatchCreated = raised

	refreshed, err := s.Repository.GetByVendorAndDate(ctx, req.VendorID, date)
	if err != nil {
		return result, fmt.Errorf("failed to reload attendance: %w", err)
	}
	if refreshed != nil {
		result.Attendance = *refreshed
	}
	return result, nil
}

// recordLateChange appends a credit for a locked-month edit to the
// following month's offset ledger.
func (s *AttendanceServiceImpl) recordLateChange(ctx context.Context, req attendance.MarkRequest, month string, existing *attendance.Attendance) error {
	target, err := dates.NextMonth(month)
	if err != nil {
		return err
	}
	entry := &offset.Entry{
		VendorID: req.VendorID,
		Month:    target,
		Date:     req.Date,
		Hours:    attendance.Status(req.Status).WorkHours(),
		Source:   offset.SourceLateUpdate,
	}
	if existing != nil {
		entry.AttendanceID = &existing.ID
	}
	if err := s.offsetRepo.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record offset entry: %w", err)
	}
	return nil
}

// editable reports whether a date may still be marked: dates of the current
// month always, dates of the previous month until the 15th of the current
// month, nothing older and nothing in a future month.
func (s *AttendanceServiceImpl) editable(date time.Time) bool {
	now := s.now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	dateMonth := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)

	if dateMonth.After(currentMonth) {
		return false
	}
	if dateMonth.Equal(currentMonth) {
		return true
	}
	if dateMonth.Equal(currentMonth.AddDate(0, -1, 0)) {
		return now.Day() <= 15
	}
	return false
}

// Approve implements attendance.Service.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, req attendance.ApproveRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	att, err := s.Repository.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if err := s.checkTeam(ctx, att.VendorID, req.ManagerID); err != nil {
		return attendance.Attendance{}, err
	}

	if att.Reapproval != nil {
		att.Status = att.Reapproval.Proposed.Status
		att.Comments = att.Reapproval.Proposed.Comments
		att.Reapproval = nil
		att.ApprovalStatus = attendance.ApprovalApproved
	} else {
		if att.ApprovalStatus != attendance.ApprovalPending {
			return attendance.Attendance{}, attendance.ErrAlreadyProcessed
		}
		att.ApprovalStatus = attendance.ApprovalApproved
	}
	att.RejectionReason = ""

	if err := s.Repository.Update(ctx, att); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to approve attendance: %w", err)
	}
	return att, nil
}

// Reject implements attendance.Service.
func (s *AttendanceServiceImpl) Reject(ctx context.Context, req attendance.ApproveRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	att, err := s.Repository.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if err := s.checkTeam(ctx, att.VendorID, req.ManagerID); err != nil {
		return attendance.Attendance{}, err
	}

	if att.Reapproval != nil {
		// The staged edit never touched the live fields; dropping the
		// staging restores the settled record.
		att.Reapproval = nil
	} else {
		if att.ApprovalStatus != attendance.ApprovalPending {
			return attendance.Attendance{}, attendance.ErrAlreadyProcessed
		}
		att.ApprovalStatus = attendance.ApprovalRejected
		att.RejectionReason = req.Reason
	}

	if err := s.Repository.Update(ctx, att); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to reject attendance: %w", err)
	}
	return att, nil
}

func (s *AttendanceServiceImpl) checkTeam(ctx context.Context, vendorID, managerID string) error {
	v, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return fmt.Errorf("failed to load vendor: %w", err)
	}
	if v.ManagerID != managerID {
		return attendance.ErrNotTeamManager
	}
	return nil
}

// MonthForVendor implements attendance.Service.
func (s *AttendanceServiceImpl) MonthForVendor(ctx context.Context, vendorID string, month string) ([]attendance.Attendance, error) {
	return s.Repository.ListByVendorAndMonth(ctx, vendorID, month)
}

// PendingApprovals implements attendance.Service.
func (s *AttendanceServiceImpl) PendingApprovals(ctx context.Context, managerID string) ([]attendance.Attendance, error) {
	return s.Repository.ListPendingApproval(ctx, managerID)
}

// MonthlySummary implements attendance.Service.
func (s *AttendanceServiceImpl) MonthlySummary(ctx context.Context, vendorID string, month string) (attendance.MonthlySummary, error) {
	records, err := s.Repository.ListByVendorAndMonth(ctx, vendorID, month)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	summary := attendance.MonthlySummary{TotalDays: len(records)}
	for i := range records {
		switch records[i].EffectiveStatus() {
		case attendance.StatusInOfficeFull:
			summary.Present++
		case attendance.StatusHalfOfficeHalfWFH:
			summary.Present += 0.5
			summary.WFH += 0.5
		case attendance.StatusHalfOfficeHalfLeave:
			summary.Present += 0.5
			summary.Leave += 0.5
		case attendance.StatusWFHFull:
			summary.WFH++
		case attendance.StatusHalfWFHHalfLeave:
			summary.WFH += 0.5
			summary.Leave += 0.5
		case attendance.StatusLeave:
			summary.Leave++
		}

		switch records[i].ApprovalStatus {
		case attendance.ApprovalPending:
			summary.Pending++
		case attendance.ApprovalApproved:
			summary.Approved++
		case attendance.ApprovalRejected:
			summary.Rejected++
		}
	}
	return summary, nil
}
