package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vds-erp/vds-erp/internal/platform/db"
	"github.com/vds-erp/vds-erp/internal/shared"
	"github.com/vds-erp/vds-erp/internal/users"
)

type auditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service authenticates users and keeps the sessions table for auditing.
type Service struct {
	users users.Repository
	pool  db.Querier
	audit auditRecorder
}

// NewService builds a Service instance.
func NewService(userRepo users.Repository, pool db.Querier, audit auditRecorder) *Service {
	return &Service{users: userRepo, pool: pool, audit: audit}
}

// Login verifies the credentials against active accounts and updates the
// last-login timestamp. The same error is returned for an unknown email and
// a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (users.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return users.User{}, shared.ErrInvalidCredentials
		}
		return users.User{}, err
	}
	if user.Status != users.StatusActive {
		return users.User{}, shared.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return users.User{}, shared.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return users.User{}, err
	}
	user.LastLogin = &now

	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  user.ID,
		Action:   "login",
		Entity:   "user",
		EntityID: user.ID,
	})
	return user, nil
}

// RecordSession stores a row mirroring the Redis session for auditing.
func (s *Service) RecordSession(ctx context.Context, sessionID, userID string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET expires_at = EXCLUDED.expires_at`,
		sessionID, userID, time.Now().UTC(), expiresAt)
	if err != nil {
		return fmt.Errorf("auth: record session: %w", err)
	}
	return nil
}

// DropSession removes the audited session row on logout.
func (s *Service) DropSession(ctx context.Context, sessionID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID); err != nil {
		return fmt.Errorf("auth: drop session: %w", err)
	}
	return nil
}

// Me returns the account behind an authenticated session.
func (s *Service) Me(ctx context.Context, userID string) (users.User, error) {
	return s.users.Get(ctx, userID)
}
