package vendors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vds-erp/vds-erp/internal/platform/db"
	"github.com/vds-erp/vds-erp/internal/shared"
)

// Repository defines persistence operations for vendors.
type Repository interface {
	List(ctx context.Context) ([]Vendor, error)
	Get(ctx context.Context, id string) (Vendor, error)
	Create(ctx context.Context, vendor Vendor) (Vendor, error)
	Update(ctx context.Context, vendor Vendor) (Vendor, error)
	Delete(ctx context.Context, id string) error
	CountExpenses(ctx context.Context, id string) (int, error)
}

type repository struct {
	pool db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool db.Querier) Repository {
	return &repository{pool: pool}
}

const vendorColumns = `v.id, v.name, v.contact_person, v.phone, v.email, v.address, v.gst_number, v.notes, v.created_by, v.created_at, v.updated_at,
	(SELECT COUNT(*) FROM expenses e WHERE e.vendor_id = v.id) AS expense_count`

func scanVendor(row pgx.Row) (Vendor, error) {
	var v Vendor
	var count int
	err := row.Scan(&v.ID, &v.Name, &v.ContactPerson, &v.Phone, &v.Email, &v.Address, &v.GSTNumber, &v.Notes, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt, &count)
	if err != nil {
		return Vendor{}, err
	}
	v.Count = &ExpenseCount{Expenses: count}
	return v, nil
}

func (r *repository) List(ctx context.Context) ([]Vendor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+vendorColumns+` FROM vendors v ORDER BY v.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("vendors: list: %w", err)
	}
	defer rows.Close()

	vendors := []Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("vendors: scan: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Vendor, error) {
	v, err := scanVendor(r.pool.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors v WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Vendor{}, shared.NotFound("Vendor not found")
		}
		return Vendor{}, fmt.Errorf("vendors: get: %w", err)
	}
	return v, nil
}

func (r *repository) Create(ctx context.Context, vendor Vendor) (Vendor, error) {
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO vendors (id, name, contact_person, phone, email, address, gst_number, notes, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		vendor.ID, vendor.Name, vendor.ContactPerson, vendor.Phone, vendor.Email, vendor.Address, vendor.GSTNumber, vendor.Notes, vendor.CreatedBy, now, now)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Vendor{}, shared.Duplicate("A vendor with this name already exists")
		}
		return Vendor{}, fmt.Errorf("vendors: create: %w", err)
	}
	vendor.CreatedAt = now
	vendor.UpdatedAt = now
	vendor.Count = &ExpenseCount{}
	return vendor, nil
}

func (r *repository) Update(ctx context.Context, vendor Vendor) (Vendor, error) {
	now := time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE vendors SET name = $2, contact_person = $3, phone = $4, email = $5, address = $6, gst_number = $7, notes = $8, updated_at = $9 WHERE id = $1`,
		vendor.ID, vendor.Name, vendor.ContactPerson, vendor.Phone, vendor.Email, vendor.Address, vendor.GSTNumber, vendor.Notes, now)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Vendor{}, shared.Duplicate("A vendor with this name already exists")
		}
		return Vendor{}, fmt.Errorf("vendors: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Vendor{}, shared.NotFound("Vendor not found")
	}
	vendor.UpdatedAt = now
	return vendor, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			// The ON DELETE RESTRICT constraint fired between the guard check
			// and the delete.
			return shared.Conflicts("Cannot delete vendor with linked expense(s)")
		}
		return fmt.Errorf("vendors: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Vendor not found")
	}
	return nil
}

func (r *repository) CountExpenses(ctx context.Context, id string) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM expenses WHERE vendor_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("vendors: count expenses: %w", err)
	}
	return count, nil
}
