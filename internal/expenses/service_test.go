package expenses

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vds-erp/vds-erp/internal/shared"
	"github.com/vds-erp/vds-erp/internal/validate"
)

type memoryExpenseRepo struct {
	expenses map[string]Expense
}

func newMemoryExpenseRepo() *memoryExpenseRepo {
	return &memoryExpenseRepo{expenses: make(map[string]Expense)}
}

func (r *memoryExpenseRepo) List(ctx context.Context, filter ListFilter) ([]Expense, error) {
	out := []Expense{}
	for _, e := range r.expenses {
		if filter.StartDate != nil && filter.EndDate != nil {
			if e.ExpenseDate.Before(*filter.StartDate) || e.ExpenseDate.After(*filter.EndDate) {
				continue
			}
		}
		if filter.Type != "" && e.ExpenseType != filter.Type {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpenseDate.After(out[j].ExpenseDate) })
	return out, nil
}

func (r *memoryExpenseRepo) Get(ctx context.Context, id string) (Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return Expense{}, shared.NotFound("Expense not found")
	}
	return e, nil
}

func (r *memoryExpenseRepo) Create(ctx context.Context, expense Expense) (Expense, error) {
	r.expenses[expense.ID] = expense
	return expense, nil
}

func (r *memoryExpenseRepo) Update(ctx context.Context, expense Expense) (Expense, error) {
	if _, ok := r.expenses[expense.ID]; !ok {
		return Expense{}, shared.NotFound("Expense not found")
	}
	r.expenses[expense.ID] = expense
	return expense, nil
}

func (r *memoryExpenseRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.expenses[id]; !ok {
		return shared.NotFound("Expense not found")
	}
	delete(r.expenses, id)
	return nil
}

type nopAudit struct{}

func (nopAudit) Record(ctx context.Context, log shared.AuditLog) error { return nil }

func createReq(t *testing.T, payload string) CreateExpenseRequest {
	t.Helper()
	var req CreateExpenseRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	return req
}

func TestExpenseCreateCoercesAmountAndDate(t *testing.T) {
	repo := newMemoryExpenseRepo()
	svc := NewService(repo, nopAudit{}, nil)

	req := createReq(t, `{"expenseType": "Rent", "amount": "2500", "expenseDate": "2025-04-01", "vendorName": "Acme", "paymentMethod": "Bank Transfer", "billNumber": "B-001"}`)
	created, err := svc.Create(context.Background(), req, "user-1")
	require.NoError(t, err)
	require.Equal(t, 2500.0, created.Amount)
	require.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), created.ExpenseDate)
	require.Equal(t, "user-1", created.CreatedBy)
	require.NotNil(t, created.BillNumber)
	require.Equal(t, "B-001", *created.BillNumber)
}

func TestExpenseCreateRejectedInputPersistsNothing(t *testing.T) {
	repo := newMemoryExpenseRepo()
	svc := NewService(repo, nopAudit{}, nil)

	req := createReq(t, `{"expenseType": "Rent", "amount": -1, "expenseDate": "2025-04-01", "vendorName": "Acme", "paymentMethod": "Cash"}`)
	_, err := svc.Create(context.Background(), req, "user-1")

	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	require.Empty(t, repo.expenses)
}

func TestExpenseUpdateLeavesAbsentFieldsUnchanged(t *testing.T) {
	repo := newMemoryExpenseRepo()
	svc := NewService(repo, nopAudit{}, nil)

	created, err := svc.Create(context.Background(),
		createReq(t, `{"expenseType": "Rent", "amount": 100, "expenseDate": "2025-04-01", "vendorName": "Acme", "paymentMethod": "Cash", "description": "April rent"}`),
		"user-1")
	require.NoError(t, err)

	var upd UpdateExpenseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"amount": "250.75"}`), &upd))
	updated, err := svc.Update(context.Background(), created.ID, upd, "user-1")
	require.NoError(t, err)
	require.Equal(t, 250.75, updated.Amount)
	require.Equal(t, "Rent", updated.ExpenseType)
	require.Equal(t, "Acme", updated.VendorName)
	require.NotNil(t, updated.Description)
	require.Equal(t, "April rent", *updated.Description)
}

func TestExpenseUpdateNullClearsOptionalField(t *testing.T) {
	repo := newMemoryExpenseRepo()
	svc := NewService(repo, nopAudit{}, nil)

	created, err := svc.Create(context.Background(),
		createReq(t, `{"expenseType": "Rent", "amount": 100, "expenseDate": "2025-04-01", "vendorName": "Acme", "paymentMethod": "Cash", "billNumber": "B-1"}`),
		"user-1")
	require.NoError(t, err)

	var upd UpdateExpenseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"billNumber": null}`), &upd))
	updated, err := svc.Update(context.Background(), created.ID, upd, "user-1")
	require.NoError(t, err)
	require.Nil(t, updated.BillNumber)
}

func TestExpenseListFiltersByDateRangeAndType(t *testing.T) {
	repo := newMemoryExpenseRepo()
	svc := NewService(repo, nopAudit{}, nil)

	for _, payload := range []string{
		`{"expenseType": "Rent", "amount": 100, "expenseDate": "2025-03-15", "vendorName": "Acme", "paymentMethod": "Cash"}`,
		`{"expenseType": "Travel", "amount": 50, "expenseDate": "2025-04-10", "vendorName": "Acme", "paymentMethod": "UPI"}`,
		`{"expenseType": "Rent", "amount": 100, "expenseDate": "2025-04-20", "vendorName": "Acme", "paymentMethod": "Cash"}`,
	} {
		_, err := svc.Create(context.Background(), createReq(t, payload), "user-1")
		require.NoError(t, err)
	}

	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)
	listed, err := svc.List(context.Background(), ListFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.True(t, listed[0].ExpenseDate.After(listed[1].ExpenseDate), "newest first")

	listed, err = svc.List(context.Background(), ListFilter{Type: "Travel"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Travel", listed[0].ExpenseType)
}

type recordedSummaries struct {
	invalidations int
}

func (s *recordedSummaries) Invalidate(ctx context.Context) {
	s.invalidations++
}

func TestExpenseMutationsDropCachedSummary(t *testing.T) {
	repo := newMemoryExpenseRepo()
	summaries := &recordedSummaries{}
	svc := NewService(repo, nopAudit{}, summaries)

	created, err := svc.Create(context.Background(),
		createReq(t, `{"expenseType": "Rent", "amount": 100, "expenseDate": "2025-04-01", "vendorName": "Acme", "paymentMethod": "Cash"}`),
		"user-1")
	require.NoError(t, err)
	require.Equal(t, 1, summaries.invalidations)

	var upd UpdateExpenseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 120}`), &upd))
	_, err = svc.Update(context.Background(), created.ID, upd, "user-1")
	require.NoError(t, err)
	require.Equal(t, 2, summaries.invalidations)

	require.NoError(t, svc.Delete(context.Background(), created.ID, "user-1"))
	require.Equal(t, 3, summaries.invalidations)
}

func TestExpenseRejectedCreateLeavesSummaryCached(t *testing.T) {
	summaries := &recordedSummaries{}
	svc := NewService(newMemoryExpenseRepo(), nopAudit{}, summaries)

	req := createReq(t, `{"expenseType": "Rent", "amount": -1, "expenseDate": "2025-04-01", "vendorName": "Acme", "paymentMethod": "Cash"}`)
	_, err := svc.Create(context.Background(), req, "user-1")
	require.Error(t, err)
	require.Zero(t, summaries.invalidations)
}

func TestExpenseDeleteMissingIsNotFound(t *testing.T) {
	svc := NewService(newMemoryExpenseRepo(), nopAudit{}, nil)
	err := svc.Delete(context.Background(), "missing", "user-1")
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.Equal(t, "Expense not found", err.Error())
}
