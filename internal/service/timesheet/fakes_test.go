package timesheet

import (
	"context"
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
	"github.com/vams-io/vams-backend-go/internal/domain/offset"
	"github.com/vams-io/vams-backend-go/internal/domain/timesheet"
	"github.com/vams-io/vams-backend-go/internal/domain/vendor"
)

type fakeTimesheetRepo struct {
	sheets map[string]*timesheet.Timesheet // vendor|month
}

func newFakeTimesheetRepo() *fakeTimesheetRepo {
	return &fakeTimesheetRepo{sheets: make(map[string]*timesheet.Timesheet)}
}

func (f *fakeTimesheetRepo) Upsert(_ context.Context, sheet *timesheet.Timesheet) error {
	cp := *sheet
	if cp.ID == "" {
		cp.ID = "ts-" + sheet.VendorID + "-" + sheet.Month
	}
	f.sheets[sheet.VendorID+"|"+sheet.Month] = &cp
	return nil
}

func (f *fakeTimesheetRepo) GetByVendorAndMonth(_ context.Context, vendorID, month string) (*timesheet.Timesheet, error) {
	sheet, ok := f.sheets[vendorID+"|"+month]
	if !ok {
		return nil, timesheet.ErrTimesheetNotFound
	}
	cp := *sheet
	return &cp, nil
}

func (f *fakeTimesheetRepo) ListByMonth(_ context.Context, _, month string) ([]timesheet.Timesheet, error) {
	var out []timesheet.Timesheet
	for _, sheet := range f.sheets {
		if sheet.Month == month {
			out = append(out, *sheet)
		}
	}
	return out, nil
}

func (f *fakeTimesheetRepo) ListByVendor(_ context.Context, vendorID string) ([]timesheet.Timesheet, error) {
	var out []timesheet.Timesheet
	for _, sheet := range f.sheets {
		if sheet.VendorID == vendorID {
			out = append(out, *sheet)
		}
	}
	return out, nil
}

type fakeOffsetRepo struct {
	entries []offset.Entry
}

func (f *fakeOffsetRepo) Record(_ context.Context, entry *offset.Entry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeOffsetRepo) SummaryForMonth(_ context.Context, vendorID, month string) (offset.Summary, error) {
	summary := offset.Summary{DatesHours: make(map[string]float64)}
	for _, e := range f.entries {
		if e.VendorID == vendorID && e.Month == month {
			summary.DatesHours[e.Date] += e.Hours
			summary.TotalHours += e.Hours
		}
	}
	return summary, nil
}

// fakeAttendanceRepo only serves the listing paths the timesheet needs.
type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.records = append(f.records, att)
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	for _, a := range f.records {
		if a.ID == id {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByVendorAndDate(_ context.Context, vendorID string, date time.Time) (*attendance.Attendance, error) {
	for i := range f.records {
		if f.records[i].VendorID == vendorID && f.records[i].Date.Equal(date) {
			cp := f.records[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByVendorAndMonth(_ context.Context, vendorID string, month string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.VendorID == vendorID && a.Date.Format("2006-01") == month {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListBySiteAndMonth(_ context.Context, siteID string, month string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.SiteID == siteID && a.Date.Format("2006-01") == month {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListPendingApproval(_ context.Context, _ string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	for i := range f.records {
		if f.records[i].ID == att.ID {
			f.records[i] = att
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) SetMismatchFlag(_ context.Context, id string, isMismatch bool) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].IsMismatch = isMismatch
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) SetFinalStatus(_ context.Context, vendorID string, date time.Time, final attendance.Status) error {
	for i := range f.records {
		if f.records[i].VendorID == vendorID && f.records[i].Date.Equal(date) {
			f.records[i].FinalStatus = &final
			f.records[i].MismatchResolved = true
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

// fakeMismatchRepo serves only the month listing the generator consumes.
type fakeMismatchRepo struct {
	records []mismatch.Mismatch
}

func (f *fakeMismatchRepo) Create(_ context.Context, draft mismatch.Draft, deadline time.Time) (mismatch.Mismatch, error) {
	m := mismatch.Mismatch{
		ID:       "mm-" + draft.VendorID + "-" + draft.Date.Format("2006-01-02"),
		SiteID:   draft.SiteID,
		VendorID: draft.VendorID,
		Date:     draft.Date,
		Month:    draft.Month,
		Reasons:  draft.Reasons,
		Status:   mismatch.StatusPending,
		Deadline: deadline,
	}
	f.records = append(f.records, m)
	return m, nil
}

func (f *fakeMismatchRepo) Overwrite(context.Context, string, mismatch.Draft, time.Time) error {
	return nil
}

func (f *fakeMismatchRepo) GetByID(_ context.Context, id string) (mismatch.Mismatch, error) {
	for _, m := range f.records {
		if m.ID == id {
			return m, nil
		}
	}
	return mismatch.Mismatch{}, mismatch.ErrMismatchNotFound
}

func (f *fakeMismatchRepo) FindByVendorAndDate(_ context.Context, vendorID string, date time.Time) (*mismatch.Mismatch, error) {
	for i := range f.records {
		if f.records[i].VendorID == vendorID && f.records[i].Date.Equal(date) {
			cp := f.records[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeMismatchRepo) ListByVendor(context.Context, string, *mismatch.Status) ([]mismatch.Mismatch, error) {
	return nil, nil
}

func (f *fakeMismatchRepo) ListByManager(context.Context, string) ([]mismatch.Mismatch, error) {
	return nil, nil
}

func (f *fakeMismatchRepo) ListByVendorAndMonth(_ context.Context, vendorID string, month string) ([]mismatch.Mismatch, error) {
	var out []mismatch.Mismatch
	for _, m := range f.records {
		if m.VendorID == vendorID && m.Month == month {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMismatchRepo) ListOpenPastDeadline(context.Context, time.Time) ([]mismatch.Mismatch, error) {
	return nil, nil
}

func (f *fakeMismatchRepo) SetVendorResolution(_ context.Context, id string, res mismatch.VendorResolution) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].VendorResolution = &res
			f.records[i].Status = mismatch.StatusVendorUpdated
			return nil
		}
	}
	return mismatch.ErrMismatchNotFound
}

func (f *fakeMismatchRepo) SetManagerResolution(context.Context, string, mismatch.Status, mismatch.ManagerResolution) error {
	return nil
}

func (f *fakeMismatchRepo) Expire(context.Context, string, mismatch.VendorResolution) error {
	return nil
}

func (f *fakeMismatchRepo) Delete(context.Context, string) error { return nil }

func (f *fakeMismatchRepo) StatsForMonth(context.Context, string, string) (mismatch.MonthlyStats, error) {
	return mismatch.MonthlyStats{}, nil
}

func (f *fakeMismatchRepo) DeleteByMonth(context.Context, string, string) error { return nil }

type fakeVendorRepo struct {
	vendors []vendor.Vendor
}

func (f *fakeVendorRepo) GetByID(_ context.Context, id string) (*vendor.Vendor, error) {
	for i := range f.vendors {
		if f.vendors[i].ID == id {
			cp := f.vendors[i]
			return &cp, nil
		}
	}
	return nil, vendor.ErrVendorNotFound
}

func (f *fakeVendorRepo) GetByUserID(_ context.Context, userID string) (*vendor.Vendor, error) {
	for i := range f.vendors {
		if f.vendors[i].UserID == userID {
			cp := f.vendors[i]
			return &cp, nil
		}
	}
	return nil, vendor.ErrVendorNotFound
}

func (f *fakeVendorRepo) GetByEmployeeCode(_ context.Context, employeeCode string) (*vendor.Vendor, error) {
	for i := range f.vendors {
		if f.vendors[i].EmployeeCode == employeeCode {
			cp := f.vendors[i]
			return &cp, nil
		}
	}
	return nil, vendor.ErrVendorNotFound
}

func (f *fakeVendorRepo) List(_ context.Context, filter vendor.Filter) ([]vendor.Vendor, error) {
	var out []vendor.Vendor
	for _, v := range f.vendors {
		if filter.SiteID != "" && v.SiteID != filter.SiteID {
			continue
		}
		if filter.ManagerID != "" && v.ManagerID != filter.ManagerID {
			continue
		}
		if filter.VendingCompanyID != "" && (v.VendingCompanyID == nil || *v.VendingCompanyID != filter.VendingCompanyID) {
			continue
		}
		if filter.ActiveOnly && !v.Active {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVendorRepo) ListByManager(ctx context.Context, managerID string) ([]vendor.Vendor, error) {
	return f.List(ctx, vendor.Filter{ManagerID: managerID})
}

type fakeCycleService struct {
	cycles map[string]*cycle.Cycle
}

func newFakeCycleService() *fakeCycleService {
	return &fakeCycleService{cycles: make(map[string]*cycle.Cycle)}
}

func (f *fakeCycleService) ensure(siteID, month string) *cycle.Cycle {
	k := siteID + "|" + month
	c, ok := f.cycles[k]
	if !ok {
		c = &cycle.Cycle{ID: "cyc-" + k, SiteID: siteID, Month: month, TimesheetStatus: cycle.TimesheetNotGenerated}
		f.cycles[k] = c
	}
	return c
}

func (f *fakeCycleService) prepare(siteID, month string, processed bool) {
	c := f.ensure(siteID, month)
	now := time.Now()
	c.Swipe = cycle.UploadState{Uploaded: true, UploadedAt: &now}
	c.WFH = cycle.UploadState{Uploaded: true, UploadedAt: &now}
	c.Leave = cycle.UploadState{Uploaded: true, UploadedAt: &now}
	c.MismatchProcessed = processed
}

func (f *fakeCycleService) Ensure(_ context.Context, siteID string, month string) (cycle.Cycle, error) {
	return *f.ensure(siteID, month), nil
}

func (f *fakeCycleService) MarkUploaded(_ context.Context, siteID string, month string, dataType evidence.DataType, at time.Time) (cycle.Cycle, error) {
	c := f.ensure(siteID, month)
	state := cycle.UploadState{Uploaded: true, UploadedAt: &at}
	switch dataType {
	case evidence.TypeSwipe:
		c.Swipe = state
	case evidence.TypeWFH:
		c.WFH = state
	case evidence.TypeLeave:
		c.Leave = state
	}
	return *c, nil
}

func (f *fakeCycleService) IsAllDataUploaded(_ context.Context, siteID string, month string) (bool, error) {
	return f.ensure(siteID, month).AllDataUploaded(), nil
}

func (f *fakeCycleService) MarkMismatchProcessed(_ context.Context, siteID string, month string) error {
	f.ensure(siteID, month).MismatchProcessed = true
	return nil
}

func (f *fakeCycleService) LockForTimesheet(_ context.Context, siteID string, month string) (cycle.Cycle, error) {
	c := f.ensure(siteID, month)
	if c.UploadsLocked {
		return *c, cycle.ErrAlreadyLocked
	}
	c.UploadsLocked = true
	c.TimesheetStatus = cycle.TimesheetGenerated
	return *c, nil
}

func (f *fakeCycleService) IsTimesheetGenerated(_ context.Context, siteID string, month string) (bool, error) {
	return f.ensure(siteID, month).TimesheetStatus == cycle.TimesheetGenerated, nil
}

func (f *fakeCycleService) ListBySite(_ context.Context, siteID string) ([]cycle.Cycle, error) {
	var out []cycle.Cycle
	for _, c := range f.cycles {
		if c.SiteID == siteID {
			out = append(out, *c)
		}
	}
	return out, nil
}
