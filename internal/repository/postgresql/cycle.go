package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vams-io/vams-backend-go/internal/domain/cycle"
	"github.com/vams-io/vams-backend-go/internal/domain/evidence"
	"github.com/vams-io/vams-backend-go/internal/pkg/database"
)

type cycleRepository struct {
	db *database.DB
}

func NewCycleRepository(db *database.DB) cycle.Repository {
	return &cycleRepository{db: db}
}

const cycleColumns = `
	id, site_id, month,
	swipe_uploaded, swipe_uploaded_at,
	wfh_uploaded, wfh_uploaded_at,
	leave_uploaded, leave_uploaded_at,
	mismatch_processed, timesheet_status, uploads_locked,
	resolution_deadline, created_at, updated_at
`

func scanCycle(row pgx.Row) (cycle.Cycle, error) {
	var c cycle.Cycle
	err := row.Scan(
		&c.ID, &c.SiteID, &c.Month,
		&c.Swipe.Uploaded, &c.Swipe.UploadedAt,
		&c.WFH.Uploaded, &c.WFH.UploadedAt,
		&c.Leave.Uploaded, &c.Leave.UploadedAt,
		&c.MismatchProcessed, &c.TimesheetStatus, &c.UploadsLocked,
		&c.ResolutionDeadline, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// GetByMonth implements cycle.Repository.
func (r *cycleRepository) GetByMonth(ctx context.Context, siteID string, month string) (*cycle.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + cycleColumns + ` FROM monthly_cycles WHERE site_id = $1 AND month = $2`

	c, err := scanCycle(q.QueryRow(ctx, query, siteID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get monthly cycle: %w", err)
	}
	return &c, nil
}

// Create implements cycle.Repository.
func (r *cycleRepository) Create(ctx context.Context, siteID string, month string, deadline time.Time) (cycle.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_cycles (
			id, site_id, month, timesheet_status, resolution_deadline,
			created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, 'not_generated', $3, NOW(), NOW())
		RETURNING ` + cycleColumns

	c, err := scanCycle(q.QueryRow(ctx, query, siteID, month, deadline))
	if err != nil {
		return cycle.Cycle{}, fmt.Errorf("failed to create monthly cycle: %w", err)
	}
	return c, nil
}

// MarkUploaded implements cycle.Repository.
func (r *cycleRepository) MarkUploaded(ctx context.Context, siteID string, month string, dataType evidence.DataType, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	var column string
	switch dataType {
	case evidence.TypeSwipe:
		column = "swipe"
	case evidence.TypeWFH:
		column = "wfh"
	case evidence.TypeLeave:
		column = "leave"
	default:
		return evidence.ErrUnknownDataType
	}

	query := fmt.Sprintf(`
		UPDATE monthly_cycles
		SET %s_uploaded = TRUE, %s_uploaded_at = $3, updated_at = NOW()
		WHERE site_id = $1 AND month = $2
	`, column, column)

	tag, err := q.Exec(ctx, query, siteID, month, at)
	if err != nil {
		return fmt.Errorf("failed to mark %s uploaded: %w", dataType, err)
	}
	if tag.RowsAffected() == 0 {
		return cycle.ErrCycleNotFound
	}
	return nil
}

// MarkMismatchProcessed implements cycle.Repository.
func (r *cycleRepository) MarkMismatchProcessed(ctx context.Context, siteID string, month string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_cycles
		SET mismatch_processed = TRUE, updated_at = NOW()
		WHERE site_id = $1 AND month = $2
	`

	tag, err := q.Exec(ctx, query, siteID, month)
	if err != nil {
		return fmt.Errorf("failed to mark mismatches processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cycle.ErrCycleNotFound
	}
	return nil
}

// Lock implements cycle.Repository.
func (r *cycleRepository) Lock(ctx context.Context, siteID string, month string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_cycles
		SET uploads_locked = TRUE, timesheet_status = 'generated', updated_at = NOW()
		WHERE site_id = $1 AND month = $2
	`

	tag, err := q.Exec(ctx, query, siteID, month)
	if err != nil {
		return fmt.Errorf("failed to lock monthly cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cycle.ErrCycleNotFound
	}
	return nil
}

// ListBySite implements cycle.Repository.
func (r *cycleRepository) ListBySite(ctx context.Context, siteID string) ([]cycle.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + cycleColumns + ` FROM monthly_cycles WHERE site_id = $1 ORDER BY month DESC`

	rows, err := q.Query(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly cycles: %w", err)
	}
	defer rows.Close()

	var out []cycle.Cycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly cycle: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
