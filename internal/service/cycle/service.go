package cycle

import (
	"context"
	"fmt"
	"time"

	"github.com/vams-io/vams-backend-go/internal/config"
	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
)

type CycleServiceImpl struct {
	cycle.Repository
	cfg config.ReconciliationConfig
	now func() time.Time
}

func NewCycleService(repo cycle.Repository, cfg config.ReconciliationConfig) cycle.Service {
	return &CycleServiceImpl{
		Repository: repo,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Ensure implements cycle.Service.
func (s *CycleServiceImpl) Ensure(ctx context.Context, siteID string, month string) (cycle.Cycle, error) {
	existing, err := s.Repository.GetByMonth(ctx, siteID, month)
	if err != nil {
		return cycle.Cycle{}, fmt.Errorf("failed to load monthly cycle: %w", err)
	}
	if existing != nil {
		return *existing, nil
	}

	deadline := s.now().AddDate(0, 0, s.cfg.ResolutionDeadlineDays)
	created, err := s.Repository.Create(ctx, siteID, month, deadline)
	if err != nil {
		return cycle.Cycle{}, fmt.Errorf("failed to create monthly cycle: %w", err)
	}
	return created, nil
}

// MarkUploaded implements cycle.Service.
func (s *CycleServiceImpl) MarkUploaded(ctx context.Context, siteID string, month string, dataType evidence.DataType, at time.Time) (cycle.Cycle, error) {
	if _, err := s.Ensure(ctx, siteID, month); err != nil {
		return cycle.Cycle{}, err
	}
	if err := s.Repository.MarkUploaded(ctx, siteID, month, dataType, at); err != nil {
		return cycle.Cycle{}, fmt.Errorf("failed to mark %s uploaded: %w", dataType, err)
	}

	updated, err := s.Repository.GetByMonth(ctx, siteID, month)
	if err != nil {
		return cycle.Cycle{}, fmt.Errorf("failed to reload monthly cycle: %w", err)
	}
	if updated == nil {
		return cycle.Cycle{}, cycle.ErrCycleNotFound
	}
	return *updated, nil
}

// IsAllDataUploaded implements cycle.Service.
func (s *CycleServiceImpl) IsAllDataUploaded(ctx context.Context, siteID string, month string) (bool, error) {
	c, err := s.Repository.GetByMonth(ctx, siteID, month)
	if err != nil {
		return false, fmt.Errorf("failed to load monthly cycle: %w", err)
	}
	if c == nil {
		return false, nil
	}
	return c.AllDataUploaded(), nil
}

// MarkMismatchProcessed implements cycle.Service.
func (s *CycleServiceImpl) MarkMismatchProcessed(ctx context.Context, siteID string, month string) error {
	return s.Repository.MarkMismatchProcessed(ctx, siteID, month)
}

// LockForTimesheet implements cycle.Service.
func (s *CycleServiceImpl) LockForTimesheet(ctx context.Context, siteID string, month string) (cycle.Cycle, error) {
	c, err := s.Ensure(ctx, siteID, month)
	if err != nil {
		return cycle.Cycle{}, err
	}
	if c.UploadsLocked {
		return c, cycle.ErrAlreadyLocked
	}

	if err := s.Repository.Lock(ctx, siteID, month); err != nil {
		return cycle.Cycle{}, fmt.Errorf("failed to lock monthly cycle: %w", err)
	}

	locked, err := s.Repository.GetByMonth(ctx, siteID, month)
	if err != nil {
		return cycle.Cycle{}, fmt.Errorf("failed to reload monthly cycle: %w", err)
	}
	if locked == nil {
		return cycle.Cycle{}, cycle.ErrCycleNotFound
	}
	return *locked, nil
}

// IsTimesheetGenerated implements cycle.Service.
func (s *CycleServiceImpl) IsTimesheetGenerated(ctx context.Context, siteID string, month string) (bool, error) {
	c, err := s.Repository.GetByMonth(ctx, siteID, month)
	if err != nil {
		return false, fmt.Errorf("failed to load monthly cycle: %w", err)
	}
	if c == nil {
		return false, nil
	}
	return c.TimesheetStatus == cycle.TimesheetGenerated, nil
}

// ListBySite implements cycle.Service.
func (s *CycleServiceImpl) ListBySite(ctx context.Context, siteID string) ([]cycle.Cycle, error) {
	return s.Repository.ListBySite(ctx, siteID)
}
