// Package rbac enforces per-request identity and role checks. The data model
// defines roles as an enumeration on User; the session carries the role so no
// database round trip is needed per request.
package rbac

import (
	"log/slog"
	"net/http"

	"github.com/vds-erp/vds-erp/internal/platform/httpx"
	"github.com/vds-erp/vds-erp/internal/shared"
)

// Roles defined on User.
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
)

// Middleware wires authorization helpers for HTTP handlers.
type Middleware struct {
	Logger *slog.Logger
}

// RequireAuth ensures the request carries an authenticated session.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the authenticated user holds one of the given roles.
func (m Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := CurrentUser(r)
			if !ok {
				httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			if m.Logger != nil {
				m.Logger.Warn("role denied", slog.String("user", actor.ID), slog.String("role", actor.Role), slog.String("path", r.URL.Path))
			}
			httpx.Error(w, http.StatusForbidden, "Forbidden")
		})
	}
}

// Actor identifies the authenticated user on a request.
type Actor struct {
	ID   string
	Role string
}

// CurrentUser extracts the authenticated actor from the request session.
func CurrentUser(r *http.Request) (Actor, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		return Actor{}, false
	}
	return Actor{ID: sess.User(), Role: sess.Role()}, true
}
