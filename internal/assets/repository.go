package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/vds-erp/vds-erp/internal/platform/db"
	"github.com/vds-erp/vds-erp/internal/shared"
)

// Repository defines persistence operations for fixed assets.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]FixedAsset, error)
	Get(ctx context.Context, id string) (FixedAsset, error)
	Create(ctx context.Context, asset FixedAsset) (FixedAsset, error)
	Update(ctx context.Context, asset FixedAsset) (FixedAsset, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool db.Querier) Repository {
	return &repository{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func selectAssets() sq.SelectBuilder {
	return psql.Select(
		"a.id", "a.asset_name", "a.description", "a.location", "a.purchase_date",
		"a.purchase_value", "a.current_value", "a.status", "a.notes",
		"a.created_by", "a.created_at", "a.updated_at", "u.full_name", "u.email",
	).From("fixed_assets a").Join("users u ON u.id = a.created_by")
}

func scanAsset(row pgx.Row) (FixedAsset, error) {
	var a FixedAsset
	var creator Creator
	err := row.Scan(&a.ID, &a.AssetName, &a.Description, &a.Location, &a.PurchaseDate,
		&a.PurchaseValue, &a.CurrentValue, &a.Status, &a.Notes,
		&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt, &creator.FullName, &creator.Email)
	if err != nil {
		return FixedAsset{}, err
	}
	a.User = &creator
	return a, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]FixedAsset, error) {
	builder := selectAssets().OrderBy("a.created_at DESC")
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"a.status": filter.Status})
	}
	if filter.Location != "" {
		builder = builder.Where(sq.ILike{"a.location": "%" + filter.Location + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("assets: build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("assets: list: %w", err)
	}
	defer rows.Close()

	assets := []FixedAsset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("assets: scan: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (FixedAsset, error) {
	query, args, err := selectAssets().Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return FixedAsset{}, fmt.Errorf("assets: build get query: %w", err)
	}
	a, err := scanAsset(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FixedAsset{}, shared.NotFound("Asset not found")
		}
		return FixedAsset{}, fmt.Errorf("assets: get: %w", err)
	}
	return a, nil
}

func (r *repository) Create(ctx context.Context, asset FixedAsset) (FixedAsset, error) {
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO fixed_assets (id, asset_name, description, location, purchase_date, purchase_value, current_value, status, notes, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		asset.ID, asset.AssetName, asset.Description, asset.Location, asset.PurchaseDate,
		asset.PurchaseValue, asset.CurrentValue, asset.Status, asset.Notes, asset.CreatedBy, now, now)
	if err != nil {
		return FixedAsset{}, fmt.Errorf("assets: create: %w", err)
	}
	return r.Get(ctx, asset.ID)
}

func (r *repository) Update(ctx context.Context, asset FixedAsset) (FixedAsset, error) {
	now := time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE fixed_assets SET asset_name = $2, description = $3, location = $4, purchase_date = $5, purchase_value = $6, current_value = $7, status = $8, notes = $9, updated_at = $10 WHERE id = $1`,
		asset.ID, asset.AssetName, asset.Description, asset.Location, asset.PurchaseDate,
		asset.PurchaseValue, asset.CurrentValue, asset.Status, asset.Notes, now)
	if err != nil {
		return FixedAsset{}, fmt.Errorf("assets: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return FixedAsset{}, shared.NotFound("Asset not found")
	}
	return r.Get(ctx, asset.ID)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM fixed_assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("assets: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Asset not found")
	}
	return nil
}
