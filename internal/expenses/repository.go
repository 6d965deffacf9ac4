package expenses

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

// Repository defines persistence operations for expenses.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Expense, error)
	Get(ctx context.Context, id string) (Expense, error)
	Create(ctx context.Context, expense Expense) (Expense, error)
	Update(ctx context.Context, expense Expense) (Expense, error)
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

func selectExpenses() sq.SelectBuilder {
	return psql.Select(
		"e.id", "e.expense_type", "e.amount", "e.expense_date", "e.vendor_name", "e.vendor_id",
		"e.payment_method", "e.bill_number", "e.description", "e.receipt_path",
		"e.created_by", "e.created_at", "e.updated_at", "u.full_name", "u.email",
	).From("expenses e").Join("users u ON u.id = e.created_by")
}

func scanExpense(row pgx.Row) (Expense, error) {
	var e Expense
	var creator Creator
	err := row.Scan(&e.ID, &e.ExpenseType, &e.Amount, &e.ExpenseDate, &e.VendorName, &e.VendorID,
		&e.PaymentMethod, &e.BillNumber, &e.Description, &e.ReceiptPath,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt, &creator.FullName, &creator.Email)
	if err != nil {
		return Expense{}, err
	}
	e.User = &creator
	return e, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Expense, error) {
	builder := selectExpenses().OrderBy("e.expense_date DESC")
	if filter.StartDate != nil && filter.EndDate != nil {
		builder = builder.Where(sq.GtOrEq{"e.expense_date": *filter.StartDate}).Where(sq.LtOrEq{"e.expense_date": *filter.EndDate})
	}
	if filter.Type != "" {
		builder = builder.Where(sq.Eq{"e.expense_type": filter.Type})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("expenses: build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("expenses: list: %w", err)
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("expenses: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Expense, error) {
	query, args, err := selectExpenses().Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return Expense{}, fmt.Errorf("expenses: build get query: %w", err)
	}
	e, err := scanExpense(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Expense{}, shared.NotFound("Expense not found")
		}
		return Expense{}, fmt.Errorf("expenses: get: %w", err)
	}
	return e, nil
}

func (r *repository) Create(ctx context.Context, expense Expense) (Expense, error) {
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO expenses (id, expense_type, amount, expense_date, vendor_name, vendor_id, payment_method, bill_number, description, receipt_path, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		expense.ID, expense.ExpenseType, expense.Amount, expense.ExpenseDate, expense.VendorName, expense.VendorID,
		expense.PaymentMethod, expense.BillNumber, expense.Description, expense.ReceiptPath, expense.CreatedBy, now, now)
	if err != nil {
		return Expense{}, fmt.Errorf("expenses: create: %w", err)
	}
	return r.Get(ctx, expense.ID)
}

func (r *repository) Update(ctx context.Context, expense Expense) (Expense, error) {
	now := time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE expenses SET expense_type = $2, amount = $3, expense_date = $4, vendor_name = $5, vendor_id = $6, payment_method = $7, bill_number = $8, description = $9, receipt_path = $10, updated_at = $11 WHERE id = $1`,
		expense.ID, expense.ExpenseType, expense.Amount, expense.ExpenseDate, expense.VendorName, expense.VendorID,
		expense.PaymentMethod, expense.BillNumber, expense.Description, expense.ReceiptPath, now)
	if err != nil {
		return Expense{}, fmt.Errorf("expenses: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Expense{}, shared.NotFound("Expense not found")
	}
	return r.Get(ctx, expense.ID)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("expenses: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Expense not found")
	}
	return nil
}
