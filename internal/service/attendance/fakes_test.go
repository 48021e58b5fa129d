package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
	"github.com/vams-io/vams-backend-go/internal/domain/offset"
	"github.com/vams-io/vams-backend-go/internal/domain/vendor"
)

type fakeAttendanceRepo struct {
	records []attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{nextID: 1}
}

func (r *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	att.ID = fmt.Sprintf("att-%d", r.nextID)
	r.nextID++
	r.records = append(r.records, att)
	return att, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			return r.records[i], nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) GetByVendorAndDate(_ context.Context, vendorID string, date time.Time) (*attendance.Attendance, error) {
	for i := range r.records {
		if r.records[i].VendorID == vendorID && r.records[i].Date.Equal(date) {
			cp := r.records[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) ListByVendorAndMonth(_ context.Context, vendorID string, month string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for i := range r.records {
		if r.records[i].VendorID == vendorID && r.records[i].Date.Format("2006-01") == month {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListBySiteAndMonth(_ context.Context, siteID string, month string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for i := range r.records {
		if r.records[i].SiteID == siteID && r.records[i].Date.Format("2006-01") == month {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListPendingApproval(_ context.Context, _ string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for i := range r.records {
		if r.records[i].ApprovalStatus == attendance.ApprovalPending {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	for i := range r.records {
		if r.records[i].ID == att.ID {
			r.records[i] = att
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) SetMismatchFlag(_ context.Context, id string, isMismatch bool) error {
	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].IsMismatch = isMismatch
			if !isMismatch {
				r.records[i].MismatchResolved = false
			}
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) SetFinalStatus(_ context.Context, vendorID string, date time.Time, final attendance.Status) error {
	for i := range r.records {
		if r.records[i].VendorID == vendorID && r.records[i].Date.Equal(date) {
			r.records[i].FinalStatus = &final
			r.records[i].MismatchResolved = true
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

type fakeVendorRepo struct {
	vendors []vendor.Vendor
}

func (r *fakeVendorRepo) GetByID(_ context.Context, id string) (*vendor.Vendor, error) {
	for i := range r.vendors {
		if r.vendors[i].ID == id {
			cp := r.vendors[i]
			return &cp, nil
		}
	}
	return nil, vendor.ErrVendorNotFound
}

func (r *fakeVendorRepo) GetByUserID(_ context.Context, userID string) (*vendor.Vendor, error) {
	for i := range r.vendors {
		if r.vendors[i].UserID == userID {
			cp := r.vendors[i]
			return &cp, nil
		}
	}
	return nil, vendor.ErrVendorNotFound
}

func (r *fakeVendorRepo) GetByEmployeeCode(_ context.Context, employeeCode string) (*vendor.Vendor, error) {
	for i := range r.vendors {
		if r.vendors[i].EmployeeCode == employeeCode {
			cp := r.vendors[i]
			return &cp, nil
		}
	}
	return nil, vendor.ErrVendorNotFound
}

func (r *fakeVendorRepo) List(_ context.Context, filter vendor.Filter) ([]vendor.Vendor, error) {
	var out []vendor.Vendor
	for i := range r.vendors {
		if filter.SiteID != "" && r.vendors[i].SiteID != filter.SiteID {
			continue
		}
		out = append(out, r.vendors[i])
	}
	return out, nil
}

func (r *fakeVendorRepo) ListByManager(_ context.Context, managerID string) ([]vendor.Vendor, error) {
	var out []vendor.Vendor
	for i := range r.vendors {
		if r.vendors[i].ManagerID == managerID {
			out = append(out, r.vendors[i])
		}
	}
	return out, nil
}

type fakeOffsetRepo struct {
	entries []offset.Entry
}

func (r *fakeOffsetRepo) Record(_ context.Context, entry *offset.Entry) error {
	entry.ID = fmt.Sprintf("off-%d", len(r.entries)+1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeOffsetRepo) SummaryForMonth(_ context.Context, vendorID, month string) (offset.Summary, error) {
	summary := offset.Summary{DatesHours: make(map[string]float64)}
	for i := range r.entries {
		if r.entries[i].VendorID == vendorID && r.entries[i].Month == month {
			summary.DatesHours[r.entries[i].Date] += r.entries[i].Hours
			summary.TotalHours += r.entries[i].Hours
		}
	}
	return summary, nil
}

// fakeCycleService only tracks the timesheet lock; the attendance service
// never touches the upload flags.
type fakeCycleService struct {
	locked map[string]bool
}

func newFakeCycleService() *fakeCycleService {
	return &fakeCycleService{locked: make(map[string]bool)}
}

func (s *fakeCycleService) lock(siteID, month string) {
	s.locked[siteID+"|"+month] = true
}

func (s *fakeCycleService) Ensure(_ context.Context, siteID string, month string) (cycle.Cycle, error) {
	return cycle.Cycle{SiteID: siteID, Month: month}, nil
}

func (s *fakeCycleService) MarkUploaded(_ context.Context, siteID string, month string, _ evidence.DataType, _ time.Time) (cycle.Cycle, error) {
	return cycle.Cycle{SiteID: siteID, Month: month}, nil
}

func (s *fakeCycleService) IsAllDataUploaded(context.Context, string, string) (bool, error) {
	return true, nil
}

func (s *fakeCycleService) MarkMismatchProcessed(context.Context, string, string) error {
	return nil
}

func (s *fakeCycleService) LockForTimesheet(_ context.Context, siteID string, month string) (cycle.Cycle, error) {
	s.lock(siteID, month)
	return cycle.Cycle{SiteID: siteID, Month: month, TimesheetStatus: cycle.TimesheetGenerated}, nil
}

func (s *fakeCycleService) IsTimesheetGenerated(_ context.Context, siteID string, month string) (bool, error) {
	return s.locked[siteID+"|"+month], nil
}

func (s *fakeCycleService) ListBySite(context.Context, string) ([]cycle.Cycle, error) {
	return nil, nil
}

// fakeMismatchService counts re-detection calls and reports a mismatch when
// raise is set.
type fakeMismatchService struct {
	raise     bool
	redetects int
}

func (s *fakeMismatchService) RunDetection(context.Context, string, string) (mismatch.DetectionResult, error) {
	return mismatch.DetectionResult{}, nil
}

func (s *fakeMismatchService) RedetectDay(context.Context, string, time.Time) (bool, error) {
	s.redetects++
	return s.raise, nil
}

func (s *fakeMismatchService) Resolve(context.Context, mismatch.ResolveRequest) (mismatch.Mismatch, error) {
	return mismatch.Mismatch{}, nil
}

func (s *fakeMismatchService) ManagerAction(context.Context, mismatch.ActionRequest) (mismatch.Mismatch, error) {
	return mismatch.Mismatch{}, nil
}

func (s *fakeMismatchService) AutoExpire(context.Context, string) (mismatch.Mismatch, error) {
	return mismatch.Mismatch{}, nil
}

func (s *fakeMismatchService) ExpireOverdue(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (s *fakeMismatchService) ForVendor(context.Context, string, *mismatch.Status) ([]mismatch.Mismatch, error) {
	return nil, nil
}

func (s *fakeMismatchService) ForManager(context.Context, string) ([]mismatch.Mismatch, error) {
	return nil, nil
}

func (s *fakeMismatchService) StatsForMonth(context.Context, string, string) (mismatch.MonthlyStats, error) {
	return mismatch.MonthlyStats{}, nil
}
