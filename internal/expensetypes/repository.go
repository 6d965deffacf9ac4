package expensetypes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vds-erp/vds-erp/internal/platform/db"
	"github.com/vds-erp/vds-erp/internal/shared"
)

// Repository defines persistence operations for expense types.
type Repository interface {
	List(ctx context.Context) ([]ExpenseType, error)
	Get(ctx context.Context, id string) (ExpenseType, error)
	Create(ctx context.Context, et ExpenseType) (ExpenseType, error)
	Update(ctx context.Context, et ExpenseType) (ExpenseType, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool db.Querier) Repository {
	return &repository{pool: pool}
}

const expenseTypeColumns = `id, name, description, created_at, updated_at`

func scanExpenseType(row pgx.Row) (ExpenseType, error) {
	var et ExpenseType
	err := row.Scan(&et.ID, &et.Name, &et.Description, &et.CreatedAt, &et.UpdatedAt)
	return et, err
}

func (r *repository) List(ctx context.Context) ([]ExpenseType, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+expenseTypeColumns+` FROM expense_types ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("expensetypes: list: %w", err)
	}
	defer rows.Close()

	types := []ExpenseType{}
	for rows.Next() {
		et, err := scanExpenseType(rows)
		if err != nil {
			return nil, fmt.Errorf("expensetypes: scan: %w", err)
		}
		types = append(types, et)
	}
	return types, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (ExpenseType, error) {
	et, err := scanExpenseType(r.pool.QueryRow(ctx, `SELECT `+expenseTypeColumns+` FROM expense_types WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ExpenseType{}, shared.NotFound("Expense type not found")
		}
		return ExpenseType{}, fmt.Errorf("expensetypes: get: %w", err)
	}
	return et, nil
}

func (r *repository) Create(ctx context.Context, et ExpenseType) (ExpenseType, error) {
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO expense_types (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		et.ID, et.Name, et.Description, now, now)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ExpenseType{}, shared.Duplicate("An expense type with this name already exists")
		}
		return ExpenseType{}, fmt.Errorf("expensetypes: create: %w", err)
	}
	et.CreatedAt = now
	et.UpdatedAt = now
	return et, nil
}

func (r *repository) Update(ctx context.Context, et ExpenseType) (ExpenseType, error) {
	now := time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE expense_types SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		et.ID, et.Name, et.Description, now)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ExpenseType{}, shared.Duplicate("An expense type with this name already exists")
		}
		return ExpenseType{}, fmt.Errorf("expensetypes: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ExpenseType{}, shared.NotFound("Expense type not found")
	}
	et.UpdatedAt = now
	return et, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expense_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("expensetypes: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Expense type not found")
	}
	return nil
}
