package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
	"github.com/vams-io/vams-backend-go/internal/pkg/database"
)

type swipeRepository struct {
	db *database.DB
}

func NewSwipeRepository(db *database.DB) evidence.SwipeRepository {
	return &swipeRepository{db: db}
}

// FindByVendorAndDate implements evidence.SwipeRepository.
func (r *swipeRepository) FindByVendorAndDate(ctx context.Context, vendorID string, date time.Time) (*evidence.SwipeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, vendor_id, date, login, logout, total_hours, month, uploaded_at
		FROM swipe_records
		WHERE vendor_id = $1 AND date = $2
	`

	var rec evidence.SwipeRecord
	err := q.QueryRow(ctx, query, vendorID, date).Scan(
		&rec.ID, &rec.EmployeeCode, &rec.VendorID, &rec.Date,
		&rec.Login, &rec.Logout, &rec.TotalHours, &rec.Month, &rec.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get swipe record: %w", err)
	}
	return &rec, nil
}

// ReplaceMonth implements evidence.SwipeRepository.
func (r *swipeRepository) ReplaceMonth(ctx context.Context, month string, records []evidence.SwipeRecord) (int, error) {
	var inserted int64
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM swipe_records WHERE month = $1`, month); err != nil {
			return fmt.Errorf("failed to clear swipe records: %w", err)
		}

		var err error
		inserted, err = tx.CopyFrom(ctx,
			pgx.Identifier{"swipe_records"},
			[]string{"employee_code", "vendor_id", "date", "login", "logout", "total_hours", "month", "uploaded_at"},
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				rec := records[i]
				return []any{rec.EmployeeCode, rec.VendorID, rec.Date, rec.Login, rec.Logout, rec.TotalHours, rec.Month, rec.UploadedAt}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to insert swipe records: %w", err)
		}
		return nil
	})
	return int(inserted), err
}

type wfhRepository struct {
	db *database.DB
}

func NewWFHRepository(db *database.DB) evidence.WFHRepository {
	return &wfhRepository{db: db}
}

// FindCovering implements evidence.WFHRepository.
func (r *wfhRepository) FindCovering(ctx context.Context, vendorID string, date time.Time) (*evidence.WFHRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, vendor_id, start_date, end_date, duration, month, uploaded_at
		FROM wfh_records
		WHERE vendor_id = $1 AND start_date <= $2 AND end_date >= $2
		LIMIT 1
	`

	var rec evidence.WFHRecord
	err := q.QueryRow(ctx, query, vendorID, date).Scan(
		&rec.ID, &rec.EmployeeCode, &rec.VendorID, &rec.StartDate,
		&rec.EndDate, &rec.Duration, &rec.Month, &rec.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wfh record: %w", err)
	}
	return &rec, nil
}

// ReplaceMonth implements evidence.WFHRepository.
func (r *wfhRepository) ReplaceMonth(ctx context.Context, month string, records []evidence.WFHRecord) (int, error) {
	var inserted int64
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM wfh_records WHERE month = $1`, month); err != nil {
			return fmt.Errorf("failed to clear wfh records: %w", err)
		}

		var err error
		inserted, err = tx.CopyFrom(ctx,
			pgx.Identifier{"wfh_records"},
			[]string{"employee_code", "vendor_id", "start_date", "end_date", "duration", "month", "uploaded_at"},
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				rec := records[i]
				return []any{rec.EmployeeCode, rec.VendorID, rec.StartDate, rec.EndDate, rec.Duration, rec.Month, rec.UploadedAt}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to insert wfh records: %w", err)
		}
		return nil
	})
	return int(inserted), err
}

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) evidence.LeaveRepository {
	return &leaveRepository{db: db}
}

// FindCovering implements evidence.LeaveRepository.
func (r *leaveRepository) FindCovering(ctx context.Context, vendorID string, date time.Time) ([]evidence.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, vendor_id, start_date, end_date, start_time, end_time,
			   leave_type, duration, is_full_day, month, uploaded_at
		FROM leave_records
		WHERE vendor_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, vendorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}
	defer rows.Close()

	var out []evidence.LeaveRecord
	for rows.Next() {
		var rec evidence.LeaveRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeCode, &rec.VendorID, &rec.StartDate, &rec.EndDate,
			&rec.StartTime, &rec.EndTime, &rec.LeaveType, &rec.Duration,
			&rec.IsFullDay, &rec.Month, &rec.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ReplaceMonth implements evidence.LeaveRepository.
func (r *leaveRepository) ReplaceMonth(ctx context.Context, month string, records []evidence.LeaveRecord) (int, error) {
	var inserted int64
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM leave_records WHERE month = $1`, month); err != nil {
			return fmt.Errorf("failed to clear leave records: %w", err)
		}

		var err error
		inserted, err = tx.CopyFrom(ctx,
			pgx.Identifier{"leave_records"},
			[]string{"employee_code", "vendor_id", "start_date", "end_date", "start_time", "end_time", "leave_type", "duration", "is_full_day", "month", "uploaded_at"},
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				rec := records[i]
				return []any{rec.EmployeeCode, rec.VendorID, rec.StartDate, rec.EndDate, rec.StartTime, rec.EndTime, rec.LeaveType, rec.Duration, rec.IsFullDay, rec.Month, rec.UploadedAt}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to insert leave records: %w", err)
		}
		return nil
	})
	return int(inserted), err
}

// evidenceStore bundles the three feeds behind the detector-facing lookup
// interface.
type evidenceStore struct {
	swipes evidence.SwipeRepository
	wfh    evidence.WFHRepository
	leaves evidence.LeaveRepository
}

func NewEvidenceStore(swipes evidence.SwipeRepository, wfh evidence.WFHRepository, leaves evidence.LeaveRepository) evidence.Store {
	return &evidenceStore{swipes: swipes, wfh: wfh, leaves: leaves}
}

func (s *evidenceStore) FindSwipe(ctx context.Context, vendorID string, date time.Time) (*evidence.SwipeRecord, error) {
	return s.swipes.FindByVendorAndDate(ctx, vendorID, date)
}

func (s *evidenceStore) FindWFH(ctx context.Context, vendorID string, date time.Time) (*evidence.WFHRecord, error) {
	return s.wfh.FindCovering(ctx, vendorID, date)
}

func (s *evidenceStore) FindLeave(ctx context.Context, vendorID string, date time.Time) ([]evidence.LeaveRecord, error) {
	return s.leaves.FindCovering(ctx, vendorID, date)
}
