package mismatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vams-io/vams-backend-go/internal/config"
	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
	"github.com/vams-io/vams-backend-go/internal/domain/vendor"
	"github.com/vams-io/vams-backend-go/internal/pkg/dates"
)

const expiryComment = "Auto-resolved due to deadline expiry"

// TxRunner executes fn within a storage transaction whose handle travels in
// the context. Tests substitute a passthrough.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type MismatchServiceImpl struct {
	mismatch.Repository
	attendanceRepo attendance.Repository
	vendorRepo     vendor.Repository
	store          evidence.Store
	cycles         cycle.Service
	cfg            config.ReconciliationConfig
	runTx          TxRunner
	detector       *detector
	now            func() time.Time
}

func NewMismatchService(
	mismatchRepo mismatch.Repository,
	attendanceRepo attendance.Repository,
	vendorRepo vendor.Repository,
	store evidence.Store,
	cycles cycle.Service,
	cfg config.ReconciliationConfig,
	runTx TxRunner,
) mismatch.Service {
	return &MismatchServiceImpl{
		Repository:     mismatchRepo,
		attendanceRepo: attendanceRepo,
		vendorRepo:     vendorRepo,
		store:          store,
		cycles:         cycles,
		cfg:            cfg,
		runTx:          runTx,
		detector:       newDetector(cfg),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// RunDetection implements mismatch.Service.
func (s *MismatchServiceImpl) RunDetection(ctx context.Context, siteID string, month string) (mismatch.DetectionResult, error) {
	result := mismatch.DetectionResult{SiteID: siteID, Month: month}

	allUploaded, err := s.cycles.IsAllDataUploaded(ctx, siteID, month)
	if err != nil {
		return result, fmt.Errorf("failed to check cycle uploads: %w", err)
	}
	if !allUploaded {
		// Nothing to reconcile against yet; the run is a zero-count
		// no-op and the cycle stays unprocessed.
		return result, nil
	}

	cyc, err := s.cycles.Ensure(ctx, siteID, month)
	if err != nil {
		return result, fmt.Errorf("failed to load monthly cycle: %w", err)
	}
	avail := cyc.Availability()

	records, err := s.attendanceRepo.ListBySiteAndMonth(ctx, siteID, month)
	if err != nil {
		return result, fmt.Errorf("failed to list attendance for month: %w", err)
	}

	deadline := s.now().AddDate(0, 0, s.cfg.ResolutionDeadlineDays)
	for i := range records {
		created, updated, err := s.detectOne(ctx, &records[i], avail, deadline)
		if err != nil {
			slog.Error("Mismatch detection skipped record",
				"vendor_id", records[i].VendorID,
				"date", records[i].Date.Format("2006-01-02"),
				"error", err)
			result.Skipped++
			continue
		}
		if created {
			result.Created++
		}
		if updated {
			result.Updated++
		}
	}

	if err := s.cycles.MarkMismatchProcessed(ctx, siteID, month); err != nil {
		return result, fmt.Errorf("failed to mark cycle processed: %w", err)
	}

	return result, nil
}

// detectOne evaluates one attendance record and reconciles the stored
// mismatch with the draft: identical reasons are a no-op, a changed reason
// set overwrites and resets the workflow, a clean day closes the mismatch.
func (s *MismatchServiceImpl) detectOne(ctx context.Context, att *attendance.Attendance, avail evidence.Availability, deadline time.Time) (created bool, updated bool, err error) {
	ev, err := s.detector.gather(ctx, s.store, att)
	if err != nil {
		return false, false, err
	}
	draft := s.detector.evaluate(att, avail, ev)

	existing, err := s.Repository.FindByVendorAndDate(ctx, att.VendorID, att.Date)
	if err != nil {
		return false, false, fmt.Errorf("failed to look up existing mismatch: %w", err)
	}

	if draft == nil {
		if existing == nil || !existing.Status.Open() {
			return false, false, nil
		}
		err = s.runTx(ctx, func(txCtx context.Context) error {
			if err := s.Repository.Delete(txCtx, existing.ID); err != nil {
				return fmt.Errorf("failed to delete resolved mismatch: %w", err)
			}
			return s.attendanceRepo.SetMismatchFlag(txCtx, att.ID, false)
		})
		return false, false, err
	}

	if existing == nil {
		err = s.runTx(ctx, func(txCtx context.Context) error {
			if _, err := s.Repository.Create(txCtx, *draft, deadline); err != nil {
				return fmt.Errorf("failed to create mismatch: %w", err)
			}
			return s.attendanceRepo.SetMismatchFlag(txCtx, att.ID, true)
		})
		return err == nil, false, err
	}

	if draft.SameReasons(existing) {
		return false, false, nil
	}

	err = s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.Repository.Overwrite(txCtx, existing.ID, *draft, deadline); err != nil {
			return fmt.Errorf("failed to overwrite mismatch: %w", err)
		}
		return s.attendanceRepo.SetMismatchFlag(txCtx, att.ID, true)
	})
	return false, err == nil, err
}

// RedetectDay implements mismatch.Service.
func (s *MismatchServiceImpl) RedetectDay(ctx context.Context, vendorID string, date time.Time) (bool, error) {
	att, err := s.attendanceRepo.GetByVendorAndDate(ctx, vendorID, date)
	if err != nil {
		return false, fmt.Errorf("failed to load attendance: %w", err)
	}
	if att == nil {
		return false, attendance.ErrAttendanceNotFound
	}

	month := dates.MonthOf(date)
	cyc, err := s.cycles.Ensure(ctx, att.SiteID, month)
	if err != nil {
		return false, fmt.Errorf("failed to load monthly cycle: %w", err)
	}
	if !cyc.MismatchProcessed {
		return false, nil
	}

	deadline := s.now().AddDate(0, 0, s.cfg.ResolutionDeadlineDays)
	created, updated, err := s.detectOne(ctx, att, cyc.Availability(), deadline)
	if err != nil {
		return false, err
	}
	if created || updated {
		return true, nil
	}

	existing, err := s.Repository.FindByVendorAndDate(ctx, vendorID, date)
	if err != nil {
		return false, fmt.Errorf("failed to look up mismatch: %w", err)
	}
	return existing != nil && existing.Status.Open(), nil
}

// Resolve implements mismatch.Service.
func (s *MismatchServiceImpl) Resolve(ctx context.Context, req mismatch.ResolveRequest) (mismatch.Mismatch, error) {
	if err := req.Validate(); err != nil {
		return mismatch.Mismatch{}, err
	}

	m, err := s.Repository.GetByID(ctx, req.MismatchID)
	if err != nil {
		return mismatch.Mismatch{}, err
	}

	if m.VendorID != req.VendorID {
		return mismatch.Mismatch{}, mismatch.ErrNotOwner
	}
	if m.Status.Terminal() {
		return mismatch.Mismatch{}, mismatch.ErrAlreadyFinal
	}
	if s.now().After(m.Deadline) {
		return mismatch.Mismatch{}, mismatch.ErrDeadlineExpired
	}

	res := mismatch.VendorResolution{
		ProposedStatus: attendance.Status(req.ProposedStatus),
		Comments:       req.Comments,
		UpdatedAt:      s.now(),
	}
	if err := s.Repository.SetVendorResolution(ctx, m.ID, res); err != nil {
		return mismatch.Mismatch{}, fmt.Errorf("failed to record vendor resolution: %w", err)
	}

	return s.Repository.GetByID(ctx, m.ID)
}

// ManagerAction implements mismatch.Service.
func (s *MismatchServiceImpl) ManagerAction(ctx context.Context, req mismatch.ActionRequest) (mismatch.Mismatch, error) {
	if err := req.Validate(); err != nil {
		return mismatch.Mismatch{}, err
	}

	m, err := s.Repository.GetByID(ctx, req.MismatchID)
	if err != nil {
		return mismatch.Mismatch{}, err
	}

	v, err := s.vendorRepo.GetByID(ctx, m.VendorID)
	if err != nil {
		return mismatch.Mismatch{}, fmt.Errorf("failed to load vendor: %w", err)
	}
	if v.ManagerID != req.ManagerID {
		return mismatch.Mismatch{}, mismatch.ErrNotTeamManager
	}

	if m.Status.Terminal() {
		return mismatch.Mismatch{}, mismatch.ErrAlreadyFinal
	}
	if m.VendorResolution == nil {
		return mismatch.Mismatch{}, mismatch.ErrNotYetResolved
	}

	res := mismatch.ManagerResolution{
		Action:    req.Action,
		Comments:  req.Comments,
		UpdatedAt: s.now(),
	}

	if req.Action == "approve" {
		proposed := m.VendorResolution.ProposedStatus
		err = s.runTx(ctx, func(txCtx context.Context) error {
			if err := s.Repository.SetManagerResolution(txCtx, m.ID, mismatch.StatusManagerApproved, res); err != nil {
				return fmt.Errorf("failed to record manager approval: %w", err)
			}
			if err := s.attendanceRepo.SetFinalStatus(txCtx, m.VendorID, m.Date, proposed); err != nil {
				return fmt.Errorf("failed to finalize attendance status: %w", err)
			}
			return nil
		})
	} else {
		err = s.Repository.SetManagerResolution(ctx, m.ID, mismatch.StatusManagerRejected, res)
	}
	if err != nil {
		return mismatch.Mismatch{}, err
	}

	return s.Repository.GetByID(ctx, m.ID)
}

// AutoExpire implements mismatch.Service.
func (s *MismatchServiceImpl) AutoExpire(ctx context.Context, mismatchID string) (mismatch.Mismatch, error) {
	m, err := s.Repository.GetByID(ctx, mismatchID)
	if err != nil {
		return mismatch.Mismatch{}, err
	}

	if m.Status.Terminal() {
		return mismatch.Mismatch{}, mismatch.ErrAlreadyFinal
	}
	if !s.now().After(m.Deadline) {
		return mismatch.Mismatch{}, mismatch.ErrNotExpirable
	}

	defaultStatus := attendance.Status(s.cfg.DefaultExpiredStatus)
	synthetic := mismatch.VendorResolution{
		ProposedStatus: defaultStatus,
		Comments:       expiryComment,
		UpdatedAt:      s.now(),
	}

	err = s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.Repository.Expire(txCtx, m.ID, synthetic); err != nil {
			return fmt.Errorf("failed to expire mismatch: %w", err)
		}
		if s.cfg.AutoApproveExpired {
			if err := s.attendanceRepo.SetFinalStatus(txCtx, m.VendorID, m.Date, defaultStatus); err != nil {
				return fmt.Errorf("failed to finalize attendance status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return mismatch.Mismatch{}, err
	}

	return s.Repository.GetByID(ctx, m.ID)
}

// ExpireOverdue implements mismatch.Service.
func (s *MismatchServiceImpl) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.Repository.ListOpenPastDeadline(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue mismatches: %w", err)
	}

	expired := 0
	for i := range overdue {
		if _, err := s.AutoExpire(ctx, overdue[i].ID); err != nil {
			slog.Error("Failed to expire overdue mismatch",
				"mismatch_id", overdue[i].ID,
				"vendor_id", overdue[i].VendorID,
				"error", err)
			continue
		}
		expired++
	}
	return expired, nil
}

// ForVendor implements mismatch.Service.
func (s *MismatchServiceImpl) ForVendor(ctx context.Context, vendorID string, status *mismatch.Status) ([]mismatch.Mismatch, error) {
	return s.Repository.ListByVendor(ctx, vendorID, status)
}

// ForManager implements mismatch.Service.
func (s *MismatchServiceImpl) ForManager(ctx context.Context, managerID string) ([]mismatch.Mismatch, error) {
	return s.Repository.ListByManager(ctx, managerID)
}

// StatsForMonth implements mismatch.Service.
func (s *MismatchServiceImpl) StatsForMonth(ctx context.Context, siteID string, month string) (mismatch.MonthlyStats, error) {
	return s.Repository.StatsForMonth(ctx, siteID, month)
}
