package users

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vds-erp/vds-erp/internal/rbac"
	"github.com/vds-erp/vds-erp/internal/shared"
)

type auditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service implements account administration on top of the repository.
type Service struct {
	repo  Repository
	audit auditRecorder
}

// NewService builds a Service instance.
func NewService(repo Repository, audit auditRecorder) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns all accounts ordered by username.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get fetches a single account by ID.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new account. The role defaults to
// accountant and the status to active.
func (s *Service) Create(ctx context.Context, req CreateUserRequest, actorID string) (User, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return User{}, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	role := req.Role
	if role == "" {
		role = rbac.RoleAccountant
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         role,
		Status:       StatusActive,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return User{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "create",
		Entity:   "user",
		EntityID: created.ID,
		Meta:     map[string]any{"username": created.Username, "role": created.Role},
	})
	return created, nil
}

// Update applies the present fields of req to the stored account. Accounts
// are deactivated through the status field, never removed.
func (s *Service) Update(ctx context.Context, id string, req UpdateUserRequest, actorID string) (User, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return User{}, errs
	}

	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}

	if req.Email.Present {
		user.Email = strings.TrimSpace(req.Email.String)
	}
	if req.Password.Present {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password.String), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		user.PasswordHash = string(hash)
	}
	if req.FullName.Present {
		user.FullName = strings.TrimSpace(req.FullName.String)
	}
	if req.Role.Present {
		user.Role = req.Role.String
	}
	if req.Status.Present {
		user.Status = req.Status.String
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return User{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "update",
		Entity:   "user",
		EntityID: updated.ID,
		Meta:     map[string]any{"username": updated.Username, "role": updated.Role, "status": updated.Status},
	})
	return updated, nil
}
