package vendors

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vds-erp/vds-erp/internal/shared"
	"github.com/vds-erp/vds-erp/internal/validate"
)

type auditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

type summaryCache interface {
	Invalidate(ctx context.Context)
}

// Service implements vendor business rules on top of the repository.
type Service struct {
	repo      Repository
	audit     auditRecorder
	summaries summaryCache
}

// NewService builds a Service instance. summaries may be nil; vendor counts on
// the dashboard then refresh only when the cached summary expires.
func NewService(repo Repository, audit auditRecorder, summaries summaryCache) *Service {
	return &Service{repo: repo, audit: audit, summaries: summaries}
}

func (s *Service) invalidateSummary(ctx context.Context) {
	if s.summaries != nil {
		s.summaries.Invalidate(ctx)
	}
}

// List returns all vendors ordered by name, each with its expense count.
func (s *Service) List(ctx context.Context) ([]Vendor, error) {
	return s.repo.List(ctx)
}

// Get fetches a single vendor by ID.
func (s *Service) Get(ctx context.Context, id string) (Vendor, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new vendor attributed to actorID.
func (s *Service) Create(ctx context.Context, req CreateVendorRequest, actorID string) (Vendor, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return Vendor{}, errs
	}

	vendor := Vendor{
		ID:            uuid.NewString(),
		Name:          trimmedName(req.Name),
		ContactPerson: req.ContactPerson.Trimmed(),
		Phone:         req.Phone.Trimmed(),
		Email:         req.Email.Trimmed(),
		Address:       req.Address.Trimmed(),
		GSTNumber:     req.GSTNumber.Trimmed(),
		Notes:         req.Notes.Trimmed(),
		CreatedBy:     actorID,
	}

	created, err := s.repo.Create(ctx, vendor)
	if err != nil {
		return Vendor{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "create",
		Entity:   "vendor",
		EntityID: created.ID,
		Meta:     map[string]any{"name": created.Name},
	})
	s.invalidateSummary(ctx)
	return created, nil
}

// Update applies the present fields of req; absent fields stay unchanged,
// explicit nulls clear.
func (s *Service) Update(ctx context.Context, id string, req UpdateVendorRequest, actorID string) (Vendor, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return Vendor{}, errs
	}

	vendor, err := s.repo.Get(ctx, id)
	if err != nil {
		return Vendor{}, err
	}

	if req.Name.Present {
		vendor.Name = trimmedName(req.Name.String)
	}
	applyNullString(&vendor.ContactPerson, req.ContactPerson)
	applyNullString(&vendor.Phone, req.Phone)
	applyNullString(&vendor.Email, req.Email)
	applyNullString(&vendor.Address, req.Address)
	applyNullString(&vendor.GSTNumber, req.GSTNumber)
	applyNullString(&vendor.Notes, req.Notes)

	updated, err := s.repo.Update(ctx, vendor)
	if err != nil {
		return Vendor{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "update",
		Entity:   "vendor",
		EntityID: updated.ID,
		Meta:     map[string]any{"name": updated.Name},
	})
	s.invalidateSummary(ctx)
	return updated, nil
}

// Delete removes a vendor. A vendor with one or more linked expenses cannot be
// deleted; the error reports the exact count. The database RESTRICT constraint
// remains the authoritative backstop for the check-then-delete race.
func (s *Service) Delete(ctx context.Context, id string, actorID string) error {
	vendor, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountExpenses(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.Conflicts(fmt.Sprintf("Cannot delete vendor with %d linked expense(s)", count))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "delete",
		Entity:   "vendor",
		EntityID: id,
		Meta:     map[string]any{"name": vendor.Name},
	})
	s.invalidateSummary(ctx)
	return nil
}

func trimmedName(name string) string {
	return strings.TrimSpace(name)
}

func applyNullString(dst **string, src validate.NullString) {
	if !src.Present {
		return
	}
	*dst = src.Trimmed()
}
