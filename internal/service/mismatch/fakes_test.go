package mismatch

import (
	"context"
	"fmt"
	"time"

	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
	"github.com/vams-io/vams-backend-go/internal/domain/vendor"
)

// In-memory repository fakes. Keys follow "<vendor>|<date>" where a
// vendor-day lookup is needed.

func dayKey(vendorID string, date time.Time) string {
	return vendorID + "|" + date.Format("2006-01-02")
}

type fakeMismatchRepo struct {
	seq     int
	records map[string]*mismatch.Mismatch
}

func newFakeMismatchRepo() *fakeMismatchRepo {
	return &fakeMismatchRepo{records: make(map[string]*mismatch.Mismatch)}
}

func (f *fakeMismatchRepo) Create(_ context.Context, draft mismatch.Draft, deadline time.Time) (mismatch.Mismatch, error) {
	f.seq++
	m := mismatch.Mismatch{
		ID:             fmt.Sprintf("mm-%d", f.seq),
		SiteID:         draft.SiteID,
		VendorID:       draft.VendorID,
		Date:           draft.Date,
		Month:          draft.Month,
		Reasons:        draft.Reasons,
		OriginalStatus: draft.OriginalStatus,
		Expected:       draft.Expected,
		Actual:         draft.Actual,
		Status:         mismatch.StatusPending,
		Deadline:       deadline,
	}
	f.records[m.ID] = &m
	return m, nil
}

func (f *fakeMismatchRepo) Overwrite(_ context.Context, id string, draft mismatch.Draft, deadline time.Time) error {
	m, ok := f.records[id]
	if !ok {
		return mismatch.ErrMismatchNotFound
	}
	m.Reasons = draft.Reasons
	m.OriginalStatus = draft.OriginalStatus
	m.Expected = draft.Expected
	m.Actual = draft.Actual
	m.Status = mismatch.StatusPending
	m.Deadline = deadline
	m.VendorResolution = nil
	m.ManagerResolution = nil
	return nil
}

func (f *fakeMismatchRepo) GetByID(_ context.Context, id string) (mismatch.Mismatch, error) {
	m, ok := f.records[id]
	if !ok {
		return mismatch.Mismatch{}, mismatch.ErrMismatchNotFound
	}
	return *m, nil
}

func (f *fakeMismatchRepo) FindByVendorAndDate(_ context.Context, vendorID string, date time.Time) (*mismatch.Mismatch, error) {
	for _, m := range f.records {
		if m.VendorID == vendorID && m.Date.Equal(date) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeMismatchRepo) ListByVendor(_ context.Context, vendorID string, status *mismatch.Status) ([]mismatch.Mismatch, error) {
	var out []mismatch.Mismatch
	for _, m := range f.records {
		if m.VendorID != vendorID {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMismatchRepo) ListByManager(_ context.Context, _ string) ([]mismatch.Mismatch, error) {
	var out []mismatch.Mismatch
	for _, m := range f.records {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMismatchRepo) ListByVendorAndMonth(_ context.Context, vendorID string, month string) ([]mismatch.Mismatch, error) {
	var out []mismatch.Mismatch
	for _, m := range f.records {
		if m.VendorID == vendorID && m.Month == month {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMismatchRepo) ListOpenPastDeadline(_ context.Context, now time.Time) ([]mismatch.Mismatch, error) {
	var out []mismatch.Mismatch
	for _, m := range f.records {
		if m.Status.Open() && m.Deadline.Before(now) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMismatchRepo) SetVendorResolution(_ context.Context, id string, res mismatch.VendorResolution) error {
	m, ok := f.records[id]
	if !ok {
		return mismatch.ErrMismatchNotFound
	}
	m.VendorResolution = &res
	m.Status = mismatch.StatusVendorUpdated
	return nil
}

func (f *fakeMismatchRepo) SetManagerResolution(_ context.Context, id string, status mismatch.Status, res mismatch.ManagerResolution) error {
	m, ok := f.records[id]
	if !ok {
		return mismatch.ErrMismatchNotFound
	}
	m.ManagerResolution = &res
	m.Status = status
	return nil
}

func (f *fakeMismatchRepo) Expire(_ context.Context, id string, res mismatch.VendorResolution) error {
	m, ok := f.records[id]
	if !ok {
		return mismatch.ErrMismatchNotFound
	}
	m.VendorResolution = &res
	m.Status = mismatch.StatusExpired
	return nil
}

func (f *fakeMismatchRepo) Delete(_ context.Context, id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakeMismatchRepo) StatsForMonth(_ context.Context, siteID string, month string) (mismatch.MonthlyStats, error) {
	stats := make(mismatch.MonthlyStats)
	for _, m := range f.records {
		if m.SiteID == siteID && m.Month == month {
			stats[m.Status]++
		}
	}
	return stats, nil
}

func (f *fakeMismatchRepo) DeleteByMonth(_ context.Context, siteID string, month string) error {
	for id, m := range f.records {
		if m.SiteID == siteID && m.Month == month {
			delete(f.records, id)
		}
	}
	return nil
}

type fakeAttendanceRepo struct {
	seq     int
	records map[string]*attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func (f *fakeAttendanceRepo) add(att attendance.Attendance) *attendance.Attendance {
	f.seq++
	if att.ID == "" {
		att.ID = fmt.Sprintf("att-%d", f.seq)
	}
	f.records[att.ID] = &att
	return &att
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return *f.add(att), nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	a, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return *a, nil
}

func (f *fakeAttendanceRepo) GetByVendorAndDate(_ context.Context, vendorID string, date time.Time) (*attendance.Attendance, error) {
	for _, a := range f.records {
		if a.VendorID == vendorID && a.Date.Equal(date) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByVendorAndMonth(_ context.Context, vendorID string, month string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.VendorID == vendorID && a.Date.Format("2006-01") == month {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListBySiteAndMonth(_ context.Context, siteID string, month string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.SiteID == siteID && a.Date.Format("2006-01") == month {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListPendingApproval(_ context.Context, _ string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.ApprovalStatus == attendance.ApprovalPending {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	if _, ok := f.records[att.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[att.ID] = &att
	return nil
}

func (f *fakeAttendanceRepo) SetMismatchFlag(_ context.Context, id string, isMismatch bool) error {
	a, ok := f.records[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.IsMismatch = isMismatch
	a.MismatchResolved = false
	a.FinalStatus = nil
	return nil
}

func (f *fakeAttendanceRepo) SetFinalStatus(_ context.Context, vendorID string, date time.Time, final attendance.Status) error {
	for _, a := range f.records {
		if a.VendorID == vendorID && a.Date.Equal(date) {
			a.FinalStatus = &final
			a.MismatchResolved = true
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

type fakeVendorRepo struct {
	vendors map[string]vendor.Vendor
}

func newFakeVendorRepo(vendors ...vendor.Vendor) *fakeVendorRepo {
	f := &fakeVendorRepo{vendors: make(map[string]vendor.Vendor)}
	for _, v := range vendors {
		f.vendors[v.ID] = v
	}
	return f
}

func (f *fakeVendorRepo) GetByID(_ context.Context, id string) (*vendor.Vendor, error) {
	v, ok := f.vendors[id]
	if !ok {
		return nil, vendor.ErrVendorNotFound
	}
	return &v, nil
}

func (f *fakeVendorRepo) GetByUserID(_ context.Context, userID string) (*vendor.Vendor, error) {
	for _, v := range f.vendors {
		if v.UserID == userID {
			return &v, nil
		}
	}
	return nil, vendor.ErrVendorNotFound
}

func (f *fakeVendorRepo) GetByEmployeeCode(_ context.Context, employeeCode string) (*vendor.Vendor, error) {
	for _, v := range f.vendors {
		if v.EmployeeCode == employeeCode {
			return &v, nil
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

type fakeEvidenceStore struct {
	swipes map[string]*evidence.SwipeRecord
	wfh    map[string]bool
	leaves map[string][]evidence.LeaveRecord
}

func newFakeEvidenceStore() *fakeEvidenceStore {
	return &fakeEvidenceStore{
		swipes: make(map[string]*evidence.SwipeRecord),
		wfh:    make(map[string]bool),
		leaves: make(map[string][]evidence.LeaveRecord),
	}
}

func (f *fakeEvidenceStore) FindSwipe(_ context.Context, vendorID string, date time.Time) (*evidence.SwipeRecord, error) {
	return f.swipes[dayKey(vendorID, date)], nil
}

func (f *fakeEvidenceStore) FindWFH(_ context.Context, vendorID string, date time.Time) (*evidence.WFHRecord, error) {
	if f.wfh[dayKey(vendorID, date)] {
		return &evidence.WFHRecord{VendorID: vendorID, StartDate: date, EndDate: date}, nil
	}
	return nil, nil
}

func (f *fakeEvidenceStore) FindLeave(_ context.Context, vendorID string, date time.Time) ([]evidence.LeaveRecord, error) {
	var out []evidence.LeaveRecord
	for _, rec := range f.leaves[vendorID] {
		if rec.Covers(date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeCycleService struct {
	cycles map[string]*cycle.Cycle
}

func newFakeCycleService() *fakeCycleService {
	return &fakeCycleService{cycles: make(map[string]*cycle.Cycle)}
}

func (f *fakeCycleService) key(siteID, month string) string { return siteID + "|" + month }

func (f *fakeCycleService) ensure(siteID, month string) *cycle.Cycle {
	k := f.key(siteID, month)
	c, ok := f.cycles[k]
	if !ok {
		c = &cycle.Cycle{ID: "cyc-" + k, SiteID: siteID, Month: month, TimesheetStatus: cycle.TimesheetNotGenerated}
		f.cycles[k] = c
	}
	return c
}

func (f *fakeCycleService) markAllUploaded(siteID, month string) {
	c := f.ensure(siteID, month)
	now := time.Now()
	c.Swipe = cycle.UploadState{Uploaded: true, UploadedAt: &now}
	c.WFH = cycle.UploadState{Uploaded: true, UploadedAt: &now}
	c.Leave = cycle.UploadState{Uploaded: true, UploadedAt: &now}
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
	c, ok := f.cycles[f.key(siteID, month)]
	if !ok {
		return false, nil
	}
	return c.AllDataUploaded(), nil
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
	c, ok := f.cycles[f.key(siteID, month)]
	if !ok {
		return false, nil
	}
	return c.TimesheetStatus == cycle.TimesheetGenerated, nil
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

// passthroughTx satisfies TxRunner without a real transaction.
func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
