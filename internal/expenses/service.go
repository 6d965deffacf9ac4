package expenses

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/vds-erp/vds-erp/internal/shared"
)

type auditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

type summaryCache interface {
	Invalidate(ctx context.Context)
}

// Service implements expense business rules on top of the repository.
type Service struct {
	repo      Repository
	audit     auditRecorder
	summaries summaryCache
}

// NewService builds a Service instance. summaries may be nil; expense totals
// on the dashboard then refresh only when the cached summary expires.
func NewService(repo Repository, audit auditRecorder, summaries summaryCache) *Service {
	return &Service{repo: repo, audit: audit, summaries: summaries}
}

func (s *Service) invalidateSummary(ctx context.Context) {
	if s.summaries != nil {
		s.summaries.Invalidate(ctx)
	}
}

// List returns expenses ordered by expense date descending, optionally
// narrowed by an inclusive date range and a type label.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Expense, error) {
	return s.repo.List(ctx, filter)
}

// Get fetches a single expense by ID.
func (s *Service) Get(ctx context.Context, id string) (Expense, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new expense attributed to actorID. On
// validation failure nothing is written.
func (s *Service) Create(ctx context.Context, req CreateExpenseRequest, actorID string) (Expense, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return Expense{}, errs
	}

	expense := Expense{
		ID:            uuid.NewString(),
		ExpenseType:   strings.TrimSpace(req.ExpenseType),
		Amount:        req.Amount.Float64,
		ExpenseDate:   req.ExpenseDate.Time,
		VendorName:    strings.TrimSpace(req.VendorName),
		VendorID:      req.VendorID.Trimmed(),
		PaymentMethod: req.PaymentMethod,
		BillNumber:    req.BillNumber.Ptr(),
		Description:   req.Description.Ptr(),
		ReceiptPath:   req.ReceiptPath.Ptr(),
		CreatedBy:     actorID,
	}

	created, err := s.repo.Create(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "create",
		Entity:   "expense",
		EntityID: created.ID,
		Meta:     map[string]any{"amount": created.Amount, "expenseType": created.ExpenseType},
	})
	s.invalidateSummary(ctx)
	return created, nil
}

// Update applies the present fields of req to the stored expense.
func (s *Service) Update(ctx context.Context, id string, req UpdateExpenseRequest, actorID string) (Expense, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return Expense{}, errs
	}

	expense, err := s.repo.Get(ctx, id)
	if err != nil {
		return Expense{}, err
	}

	if req.ExpenseType.Present {
		expense.ExpenseType = strings.TrimSpace(req.ExpenseType.String)
	}
	if req.Amount.Present {
		expense.Amount = req.Amount.Float64
	}
	if req.ExpenseDate.Present {
		expense.ExpenseDate = req.ExpenseDate.Time
	}
	if req.VendorName.Present {
		expense.VendorName = strings.TrimSpace(req.VendorName.String)
	}
	if req.PaymentMethod.Present {
		expense.PaymentMethod = req.PaymentMethod.String
	}
	if req.VendorID.Present {
		expense.VendorID = req.VendorID.Trimmed()
	}
	if req.BillNumber.Present {
		expense.BillNumber = req.BillNumber.Ptr()
	}
	if req.Description.Present {
		expense.Description = req.Description.Ptr()
	}
	if req.ReceiptPath.Present {
		expense.ReceiptPath = req.ReceiptPath.Ptr()
	}

	updated, err := s.repo.Update(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "update",
		Entity:   "expense",
		EntityID: updated.ID,
		Meta:     map[string]any{"amount": updated.Amount, "expenseType": updated.ExpenseType},
	})
	s.invalidateSummary(ctx)
	return updated, nil
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id string, actorID string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "delete",
		Entity:   "expense",
		EntityID: id,
	})
	s.invalidateSummary(ctx)
	return nil
}
