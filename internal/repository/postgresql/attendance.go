package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vams-io/vams-backend-go/internal/domain/attendance"
	"github.com/vams-io/vams-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, site_id, vendor_id, date, status, approval_status, comments,
	rejection_reason, is_mismatch, mismatch_resolved, final_status,
	reapproval, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.SiteID, &att.VendorID, &att.Date, &att.Status,
		&att.ApprovalStatus, &att.Comments, &att.RejectionReason,
		&att.IsMismatch, &att.MismatchResolved, &att.FinalStatus,
		&att.Reapproval, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, site_id, vendor_id, date, status, approval_status, comments,
			created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		att.SiteID, att.VendorID, att.Date, att.Status, att.ApprovalStatus, att.Comments,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// GetByVendorAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByVendorAndDate(ctx context.Context, vendorID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE vendor_id = $1 AND date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, vendorID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by vendor and date: %w", err)
	}
	return &att, nil
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...any) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var out []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, att)
	}
	return out, rows.Err()
}

// ListByVendorAndMonth implements attendance.Repository.
func (a *attendanceRepository) ListByVendorAndMonth(ctx context.Context, vendorID string, month string) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE vendor_id = $1 AND to_char(date, 'YYYY-MM') = $2
		ORDER BY date
	`
	return a.list(ctx, query, vendorID, month)
}

// ListBySiteAndMonth implements attendance.Repository.
func (a *attendanceRepository) ListBySiteAndMonth(ctx context.Context, siteID string, month string) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE site_id = $1 AND to_char(date, 'YYYY-MM') = $2
		ORDER BY vendor_id, date
	`
	return a.list(ctx, query, siteID, month)
}

// ListPendingApproval implements attendance.Repository.
func (a *attendanceRepository) ListPendingApproval(ctx context.Context, managerID string) ([]attendance.Attendance, error) {
	query := `
		SELECT a.id, a.site_id, a.vendor_id, a.date, a.status, a.approval_status,
			   a.comments, a.rejection_reason, a.is_mismatch, a.mismatch_resolved,
			   a.final_status, a.reapproval, a.created_at, a.updated_at
		FROM attendances a
		JOIN vendors v ON v.id = a.vendor_id
		WHERE v.manager_id = $1
		  AND (a.approval_status = 'Pending' OR a.reapproval IS NOT NULL)
		ORDER BY a.date DESC
	`
	return a.list(ctx, query, managerID)
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $2, approval_status = $3, comments = $4,
			rejection_reason = $5, is_mismatch = $6, mismatch_resolved = $7,
			final_status = $8, reapproval = $9, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID, att.Status, att.ApprovalStatus, att.Comments,
		att.RejectionReason, att.IsMismatch, att.MismatchResolved,
		att.FinalStatus, att.Reapproval,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// SetMismatchFlag implements attendance.Repository.
func (a *attendanceRepository) SetMismatchFlag(ctx context.Context, id string, isMismatch bool) error {
	q := GetQuerier(ctx, a.db)

	// Any flag transition restarts the resolution workflow for the day, so
	// a reopened mismatch cannot ride on a stale final status.
	query := `
		UPDATE attendances
		SET is_mismatch = $2,
			mismatch_resolved = FALSE,
			final_status = NULL,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, isMismatch)
	if err != nil {
		return fmt.Errorf("failed to set mismatch flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// SetFinalStatus implements attendance.Repository.
func (a *attendanceRepository) SetFinalStatus(ctx context.Context, vendorID string, date time.Time, final attendance.Status) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET final_status = $3, mismatch_resolved = TRUE, updated_at = NOW()
		WHERE vendor_id = $1 AND date = $2
	`

	tag, err := q.Exec(ctx, query, vendorID, date, final)
	if err != nil {
		return fmt.Errorf("failed to set final status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
