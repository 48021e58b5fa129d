package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vams-io/vams-backend-go/internal/domain/timesheet"
	"github.com/vams-io/vams-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `
	id, vendor_id, month, work_dates_hours, mismatch_leave_days,
	offset_dates_hours, total_work_hours, total_offset_hours,
	total_hours_with_offset, generated_on
`

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var t timesheet.Timesheet
	err := row.Scan(
		&t.ID, &t.VendorID, &t.Month, &t.WorkDatesHours, &t.MismatchLeaveDays,
		&t.OffsetDatesHours, &t.TotalWorkHours, &t.TotalOffsetHours,
		&t.TotalHoursWithOffset, &t.GeneratedOn,
	)
	return t, err
}

// Upsert implements timesheet.Repository.
func (r *timesheetRepository) Upsert(ctx context.Context, sheet *timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (
			id, vendor_id, month, work_dates_hours, mismatch_leave_days,
			offset_dates_hours, total_work_hours, total_offset_hours,
			total_hours_with_offset, generated_on
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (vendor_id, month) DO UPDATE
		SET work_dates_hours = EXCLUDED.work_dates_hours,
			mismatch_leave_days = EXCLUDED.mismatch_leave_days,
			offset_dates_hours = EXCLUDED.offset_dates_hours,
			total_work_hours = EXCLUDED.total_work_hours,
			total_offset_hours = EXCLUDED.total_offset_hours,
			total_hours_with_offset = EXCLUDED.total_hours_with_offset,
			generated_on = EXCLUDED.generated_on
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		sheet.VendorID, sheet.Month, sheet.WorkDatesHours, sheet.MismatchLeaveDays,
		sheet.OffsetDatesHours, sheet.TotalWorkHours, sheet.TotalOffsetHours,
		sheet.TotalHoursWithOffset, sheet.GeneratedOn,
	).Scan(&sheet.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert timesheet: %w", err)
	}
	return nil
}

// GetByVendorAndMonth implements timesheet.Repository.
func (r *timesheetRepository) GetByVendorAndMonth(ctx context.Context, vendorID, month string) (*timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE vendor_id = $1 AND month = $2`

	t, err := scanTimesheet(q.QueryRow(ctx, query, vendorID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, timesheet.ErrTimesheetNotFound
		}
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	return &t, nil
}

// ListByMonth implements timesheet.Repository.
func (r *timesheetRepository) ListByMonth(ctx context.Context, siteID, month string) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.vendor_id, t.month, t.work_dates_hours, t.mismatch_leave_days,
			   t.offset_dates_hours, t.total_work_hours, t.total_offset_hours,
			   t.total_hours_with_offset, t.generated_on,
			   v.name, v.employee_code, v.vending_company_id
		FROM timesheets t
		JOIN vendors v ON v.id = t.vendor_id
		WHERE v.site_id = $1 AND t.month = $2
		ORDER BY v.name
	`

	rows, err := q.Query(ctx, query, siteID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var out []timesheet.Timesheet
	for rows.Next() {
		var t timesheet.Timesheet
		err := rows.Scan(
			&t.ID, &t.VendorID, &t.Month, &t.WorkDatesHours, &t.MismatchLeaveDays,
			&t.OffsetDatesHours, &t.TotalWorkHours, &t.TotalOffsetHours,
			&t.TotalHoursWithOffset, &t.GeneratedOn,
			&t.VendorName, &t.EmployeeCode, &t.VendingCompanyID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListByVendor implements timesheet.Repository.
func (r *timesheetRepository) ListByVendor(ctx context.Context, vendorID string) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE vendor_id = $1 ORDER BY month DESC`

	rows, err := q.Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var out []timesheet.Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
