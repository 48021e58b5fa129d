package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vams-io/vams-backend-go/internal/domain/mismatch"
	"github.com/vams-io/vams-backend-go/internal/pkg/database"
)

type mismatchRepository struct {
	db *database.DB
}

func NewMismatchRepository(db *database.DB) mismatch.Repository {
	return &mismatchRepository{db: db}
}

const mismatchColumns = `
	id, site_id, vendor_id, date, month, reasons, original_status,
	expected, actual, status, deadline, vendor_resolution,
	manager_resolution, created_at, updated_at
`

func scanMismatch(row pgx.Row) (mismatch.Mismatch, error) {
	var m mismatch.Mismatch
	err := row.Scan(
		&m.ID, &m.SiteID, &m.VendorID, &m.Date, &m.Month, &m.Reasons,
		&m.OriginalStatus, &m.Expected, &m.Actual, &m.Status, &m.Deadline,
		&m.VendorResolution, &m.ManagerResolution, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// Create implements mismatch.Repository.
func (r *mismatchRepository) Create(ctx context.Context, draft mismatch.Draft, deadline time.Time) (mismatch.Mismatch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO mismatches (
			id, site_id, vendor_id, date, month, reasons, original_status,
			expected, actual, status, deadline, created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, 'pending', $9, NOW(), NOW())
		RETURNING ` + mismatchColumns

	created, err := scanMismatch(q.QueryRow(ctx, query,
		draft.SiteID, draft.VendorID, draft.Date, draft.Month, draft.Reasons,
		draft.OriginalStatus, draft.Expected, draft.Actual, deadline,
	))
	if err != nil {
		return mismatch.Mismatch{}, fmt.Errorf("failed to create mismatch: %w", err)
	}
	return created, nil
}

// Overwrite implements mismatch.Repository.
func (r *mismatchRepository) Overwrite(ctx context.Context, id string, draft mismatch.Draft, deadline time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE mismatches
		SET reasons = $2, original_status = $3, expected = $4, actual = $5,
			status = 'pending', deadline = $6,
			vendor_resolution = NULL, manager_resolution = NULL,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, draft.Reasons, draft.OriginalStatus,
		draft.Expected, draft.Actual, deadline)
	if err != nil {
		return fmt.Errorf("failed to overwrite mismatch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mismatch.ErrMismatchNotFound
	}
	return nil
}

// GetByID implements mismatch.Repository.
func (r *mismatchRepository) GetByID(ctx context.Context, id string) (mismatch.Mismatch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + mismatchColumns + ` FROM mismatches WHERE id = $1`

	m, err := scanMismatch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mismatch.Mismatch{}, mismatch.ErrMismatchNotFound
		}
		return mismatch.Mismatch{}, fmt.Errorf("failed to get mismatch: %w", err)
	}
	return m, nil
}

// FindByVendorAndDate implements mismatch.Repository.
func (r *mismatchRepository) FindByVendorAndDate(ctx context.Context, vendorID string, date time.Time) (*mismatch.Mismatch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + mismatchColumns + ` FROM mismatches WHERE vendor_id = $1 AND date = $2`

	m, err := scanMismatch(q.QueryRow(ctx, query, vendorID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mismatch by vendor and date: %w", err)
	}
	return &m, nil
}

func (r *mismatchRepository) list(ctx context.Context, query string, args ...any) ([]mismatch.Mismatch, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list mismatches: %w", err)
	}
	defer rows.Close()

	var out []mismatch.Mismatch
	for rows.Next() {
		m, err := scanMismatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mismatch: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListByVendor implements mismatch.Repository.
func (r *mismatchRepository) ListByVendor(ctx context.Context, vendorID string, status *mismatch.Status) ([]mismatch.Mismatch, error) {
	if status != nil {
		query := `
			SELECT ` + mismatchColumns + `
			FROM mismatches
			WHERE vendor_id = $1 AND status = $2
			ORDER BY date DESC
		`
		return r.list(ctx, query, vendorID, *status)
	}

	query := `
		SELECT ` + mismatchColumns + `
		FROM mismatches
		WHERE vendor_id = $1
		ORDER BY date DESC
	`
	return r.list(ctx, query, vendorID)
}

// ListByManager implements mismatch.Repository.
func (r *mismatchRepository) ListByManager(ctx context.Context, managerID string) ([]mismatch.Mismatch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.site_id, m.vendor_id, m.date, m.month, m.reasons,
			   m.original_status, m.expected, m.actual, m.status, m.deadline,
			   m.vendor_resolution, m.manager_resolution, m.created_at, m.updated_at,
			   v.name, v.employee_code
		FROM mismatches m
		JOIN vendors v ON v.id = m.vendor_id
		WHERE v.manager_id = $1
		ORDER BY m.date DESC
	`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mismatches by manager: %w", err)
	}
	defer rows.Close()

	var out []mismatch.Mismatch
	for rows.Next() {
		var m mismatch.Mismatch
		err := rows.Scan(
			&m.ID, &m.SiteID, &m.VendorID, &m.Date, &m.Month, &m.Reasons,
			&m.OriginalStatus, &m.Expected, &m.Actual, &m.Status, &m.Deadline,
			&m.VendorResolution, &m.ManagerResolution, &m.CreatedAt, &m.UpdatedAt,
			&m.VendorName, &m.EmployeeCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mismatch: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListByVendorAndMonth implements mismatch.Repository.
func (r *mismatchRepository) ListByVendorAndMonth(ctx context.Context, vendorID string, month string) ([]mismatch.Mismatch, error) {
	query := `
		SELECT ` + mismatchColumns + `
		FROM mismatches
		WHERE vendor_id = $1 AND month = $2
		ORDER BY date
	`
	return r.list(ctx, query, vendorID, month)
}

// ListOpenPastDeadline implements mismatch.Repository.
func (r *mismatchRepository) ListOpenPastDeadline(ctx context.Context, now time.Time) ([]mismatch.Mismatch, error) {
	query := `
		SELECT ` + mismatchColumns + `
		FROM mismatches
		WHERE status IN ('pending', 'vendor_updated') AND deadline < $1
		ORDER BY deadline
	`
	return r.list(ctx, query, now)
}

// SetVendorResolution implements mismatch.Repository.
func (r *mismatchRepository) SetVendorResolution(ctx context.Context, id string, res mismatch.VendorResolution) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE mismatches
		SET status = 'vendor_updated', vendor_resolution = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, res)
	if err != nil {
		return fmt.Errorf("failed to set vendor resolution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mismatch.ErrMismatchNotFound
	}
	return nil
}

// SetManagerResolution implements mismatch.Repository.
func (r *mismatchRepository) SetManagerResolution(ctx context.Context, id string, status mismatch.Status, res mismatch.ManagerResolution) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE mismatches
		SET status = $2, manager_resolution = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status, res)
	if err != nil {
		return fmt.Errorf("failed to set manager resolution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mismatch.ErrMismatchNotFound
	}
	return nil
}

// Expire implements mismatch.Repository.
func (r *mismatchRepository) Expire(ctx context.Context, id string, res mismatch.VendorResolution) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE mismatches
		SET status = 'expired', vendor_resolution = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, res)
	if err != nil {
		return fmt.Errorf("failed to expire mismatch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mismatch.ErrMismatchNotFound
	}
	return nil
}

// Delete implements mismatch.Repository.
func (r *mismatchRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM mismatches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mismatch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mismatch.ErrMismatchNotFound
	}
	return nil
}

// StatsForMonth implements mismatch.Repository.
func (r *mismatchRepository) StatsForMonth(ctx context.Context, siteID string, month string) (mismatch.MonthlyStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*)
		FROM mismatches
		WHERE site_id = $1 AND month = $2
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, siteID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to count mismatches: %w", err)
	}
	defer rows.Close()

	stats := make(mismatch.MonthlyStats)
	for rows.Next() {
		var status mismatch.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan mismatch stats: %w", err)
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// DeleteByMonth implements mismatch.Repository.
func (r *mismatchRepository) DeleteByMonth(ctx context.Context, siteID string, month string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM mismatches WHERE site_id = $1 AND month = $2`, siteID, month); err != nil {
		return fmt.Errorf("failed to delete mismatches for month: %w", err)
	}
	return nil
}
