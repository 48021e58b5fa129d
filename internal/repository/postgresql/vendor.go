package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vams-io/vams-backend-go/internal/domain/vendor"
	"github.com/vams-io/vams-backend-go/internal/pkg/database"
)

type vendorRepository struct {
	db *database.DB
}

func NewVendorRepository(db *database.DB) vendor.Repository {
	return &vendorRepository{db: db}
}

const vendorColumns = `
	id, user_id, site_id, employee_code, name, email, manager_id,
	vending_company_id, active, created_at, updated_at
`

func scanVendor(row pgx.Row) (vendor.Vendor, error) {
	var v vendor.Vendor
	err := row.Scan(
		&v.ID, &v.UserID, &v.SiteID, &v.EmployeeCode, &v.Name, &v.Email,
		&v.ManagerID, &v.VendingCompanyID, &v.Active, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

func (r *vendorRepository) getOne(ctx context.Context, query string, arg any) (*vendor.Vendor, error) {
	q := GetQuerier(ctx, r.db)

	v, err := scanVendor(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vendor.ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	return &v, nil
}

// GetByID implements vendor.Repository.
func (r *vendorRepository) GetByID(ctx context.Context, id string) (*vendor.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
}

// GetByUserID implements vendor.Repository.
func (r *vendorRepository) GetByUserID(ctx context.Context, userID string) (*vendor.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE user_id = $1`, userID)
}

// GetByEmployeeCode implements vendor.Repository.
func (r *vendorRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (*vendor.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE employee_code = $1`, employeeCode)
}

// List implements vendor.Repository.
func (r *vendorRepository) List(ctx context.Context, filter vendor.Filter) ([]vendor.Vendor, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE 1=1`
	var args []any

	if filter.SiteID != "" {
		args = append(args, filter.SiteID)
		query += fmt.Sprintf(" AND site_id = $%d", len(args))
	}
	if filter.ManagerID != "" {
		args = append(args, filter.ManagerID)
		query += fmt.Sprintf(" AND manager_id = $%d", len(args))
	}
	if filter.VendingCompanyID != "" {
		args = append(args, filter.VendingCompanyID)
		query += fmt.Sprintf(" AND vending_company_id = $%d", len(args))
	}
	if filter.ActiveOnly {
		query += " AND active = TRUE"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var out []vendor.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListByManager implements vendor.Repository.
func (r *vendorRepository) ListByManager(ctx context.Context, managerID string) ([]vendor.Vendor, error) {
	return r.List(ctx, vendor.Filter{ManagerID: managerID})
}
