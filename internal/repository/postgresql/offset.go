package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vams-io/vams-backend-go/internal/domain/offset"
	"github.com/vams-io/vams-backend-go/internal/pkg/database"
)

type offsetRepository struct {
	db *database.DB
}

func NewOffsetRepository(db *database.DB) offset.Repository {
	return &offsetRepository{db: db}
}

// Record implements offset.Repository.
func (r *offsetRepository) Record(ctx context.Context, entry *offset.Entry) error {
	q := GetQuerier(ctx, r.db)

	// Append-only: every late edit leaves its own row.
	query := `
		INSERT INTO offset_entries (id, vendor_id, month, date, hours, attendance_id, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id
	`

	if err := q.QueryRow(ctx, query,
		uuid.New().String(), entry.VendorID, entry.Month, entry.Date, entry.Hours,
		entry.AttendanceID, entry.Source,
	).Scan(&entry.ID); err != nil {
		return fmt.Errorf("failed to record offset entry: %w", err)
	}
	return nil
}

// SummaryForMonth implements offset.Repository.
func (r *offsetRepository) SummaryForMonth(ctx context.Context, vendorID, month string) (offset.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, SUM(hours)
		FROM offset_entries
		WHERE vendor_id = $1 AND month = $2
		GROUP BY date
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, vendorID, month)
	if err != nil {
		return offset.Summary{}, fmt.Errorf("failed to summarize offset entries: %w", err)
	}
	defer rows.Close()

	summary := offset.Summary{DatesHours: make(map[string]float64)}
	for rows.Next() {
		var date string
		var hours float64
		if err := rows.Scan(&date, &hours); err != nil {
			return offset.Summary{}, fmt.Errorf("failed to scan offset summary row: %w", err)
		}
		summary.DatesHours[date] = hours
		summary.TotalHours += hours
	}
	return summary, rows.Err()
}
