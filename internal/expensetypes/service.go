package expensetypes

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/vds-erp/vds-erp/internal/shared"
)

type auditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service implements expense-type business rules on top of the repository.
type Service struct {
	repo  Repository
	audit auditRecorder
}

// NewService builds a Service instance.
func NewService(repo Repository, audit auditRecorder) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns all expense types ordered by name.
func (s *Service) List(ctx context.Context) ([]ExpenseType, error) {
	return s.repo.List(ctx)
}

// Create validates and persists a new expense type.
func (s *Service) Create(ctx context.Context, req CreateExpenseTypeRequest, actorID string) (ExpenseType, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return ExpenseType{}, errs
	}

	et := ExpenseType{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description.Trimmed(),
	}

	created, err := s.repo.Create(ctx, et)
	if err != nil {
		return ExpenseType{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "create",
		Entity:   "expense_type",
		EntityID: created.ID,
		Meta:     map[string]any{"name": created.Name},
	})
	return created, nil
}

// Update applies the present fields of req to the stored expense type.
func (s *Service) Update(ctx context.Context, id string, req UpdateExpenseTypeRequest, actorID string) (ExpenseType, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return ExpenseType{}, errs
	}

	et, err := s.repo.Get(ctx, id)
	if err != nil {
		return ExpenseType{}, err
	}

	if req.Name.Present {
		et.Name = strings.TrimSpace(req.Name.String)
	}
	if req.Description.Present {
		et.Description = req.Description.Trimmed()
	}

	updated, err := s.repo.Update(ctx, et)
	if err != nil {
		return ExpenseType{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "update",
		Entity:   "expense_type",
		EntityID: updated.ID,
		Meta:     map[string]any{"name": updated.Name},
	})
	return updated, nil
}

// Delete removes an expense type. Existing expenses keep their type label.
func (s *Service) Delete(ctx context.Context, id string, actorID string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "delete",
		Entity:   "expense_type",
		EntityID: id,
	})
	return nil
}
