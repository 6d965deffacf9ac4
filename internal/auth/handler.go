package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vds-erp/vds-erp/internal/platform/httpx"
	"github.com/vds-erp/vds-erp/internal/rbac"
	"github.com/vds-erp/vds-erp/internal/shared"
	"github.com/vds-erp/vds-erp/internal/users"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the authenticated account and the CSRF token the
// client must echo on mutating requests.
type LoginResponse struct {
	User      users.User `json:"user"`
	CSRFToken string     `json:"csrfToken"`
}

// Handler exposes the authentication endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	sessions *shared.SessionManager
	csrf     *shared.CSRFManager
	rbac     rbac.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager, csrf *shared.CSRFManager, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, sessions: sessions, csrf: csrf, rbac: rbac}
}

// MountRoutes registers authentication routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAuth)
		r.Post("/logout", h.logout)
		r.Get("/me", h.me)
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login failed", slog.String("email", req.Email))
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	sess.SetUser(user.ID, user.Role)

	token, err := h.csrf.EnsureToken(sess)
	if err != nil {
		h.logger.Error("issue csrf token", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.service.RecordSession(r.Context(), sess.ID, user.ID, time.Now().UTC().Add(h.sessions.TTL())); err != nil {
		h.logger.Error("record session", slog.Any("error", err))
	}

	httpx.JSON(w, http.StatusOK, LoginResponse{User: user, CSRFToken: token})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		if err := h.service.DropSession(r.Context(), sess.ID); err != nil {
			h.logger.Error("drop session", slog.Any("error", err))
		}
		h.sessions.Destroy(sess)
	}
	httpx.Message(w, http.StatusOK, "Logged out")
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	actor, ok := rbac.CurrentUser(r)
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	user, err := h.service.Me(r.Context(), actor.ID)
	if err != nil {
		h.logger.Error("load current user", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
