package assets

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

// Service implements fixed-asset business rules on top of the repository.
type Service struct {
	repo      Repository
	audit     auditRecorder
	summaries summaryCache
}

// NewService builds a Service instance. summaries may be nil; asset totals on
// the dashboard then refresh only when the cached summary expires.
func NewService(repo Repository, audit auditRecorder, summaries summaryCache) *Service {
	return &Service{repo: repo, audit: audit, summaries: summaries}
}

func (s *Service) invalidateSummary(ctx context.Context) {
	if s.summaries != nil {
		s.summaries.Invalidate(ctx)
	}
}

// List returns assets ordered by creation time descending, optionally
// narrowed by status and a location substring.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]FixedAsset, error) {
	filter.Status = NormalizeStatus(filter.Status)
	return s.repo.List(ctx, filter)
}

// Get fetches a single asset by ID.
func (s *Service) Get(ctx context.Context, id string) (FixedAsset, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new asset attributed to actorID. Status
// defaults to active when not supplied.
func (s *Service) Create(ctx context.Context, req CreateAssetRequest, actorID string) (FixedAsset, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return FixedAsset{}, errs
	}

	status := StatusActive
	if req.Status.Present && !req.Status.Null && req.Status.String != "" {
		status = NormalizeStatus(req.Status.String)
	}

	asset := FixedAsset{
		ID:            uuid.NewString(),
		AssetName:     strings.TrimSpace(req.AssetName),
		Description:   req.Description.Ptr(),
		Location:      strings.TrimSpace(req.Location),
		PurchaseDate:  req.PurchaseDate.Time,
		PurchaseValue: req.PurchaseValue.Float64,
		CurrentValue:  req.CurrentValue.Ptr(),
		Status:        status,
		Notes:         req.Notes.Ptr(),
		CreatedBy:     actorID,
	}

	created, err := s.repo.Create(ctx, asset)
	if err != nil {
		return FixedAsset{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "create",
		Entity:   "fixed_asset",
		EntityID: created.ID,
		Meta:     map[string]any{"assetName": created.AssetName, "status": created.Status},
	})
	s.invalidateSummary(ctx)
	return created, nil
}

// Update applies the present fields of req to the stored asset.
func (s *Service) Update(ctx context.Context, id string, req UpdateAssetRequest, actorID string) (FixedAsset, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return FixedAsset{}, errs
	}

	asset, err := s.repo.Get(ctx, id)
	if err != nil {
		return FixedAsset{}, err
	}

	if req.AssetName.Present {
		asset.AssetName = strings.TrimSpace(req.AssetName.String)
	}
	if req.Description.Present {
		asset.Description = req.Description.Ptr()
	}
	if req.Location.Present {
		asset.Location = strings.TrimSpace(req.Location.String)
	}
	if req.PurchaseDate.Present {
		asset.PurchaseDate = req.PurchaseDate.Time
	}
	if req.PurchaseValue.Present {
		asset.PurchaseValue = req.PurchaseValue.Float64
	}
	if req.CurrentValue.Present {
		asset.CurrentValue = req.CurrentValue.Ptr()
	}
	if req.Status.Present && !req.Status.Null {
		asset.Status = NormalizeStatus(req.Status.String)
	}
	if req.Notes.Present {
		asset.Notes = req.Notes.Ptr()
	}

	updated, err := s.repo.Update(ctx, asset)
	if err != nil {
		return FixedAsset{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "update",
		Entity:   "fixed_asset",
		EntityID: updated.ID,
		Meta:     map[string]any{"assetName": updated.AssetName, "status": updated.Status},
	})
	s.invalidateSummary(ctx)
	return updated, nil
}

// Delete removes an asset.
func (s *Service) Delete(ctx context.Context, id string, actorID string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "delete",
		Entity:   "fixed_asset",
		EntityID: id,
	})
	s.invalidateSummary(ctx)
	return nil
}
