package expensetypes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vds-erp/vds-erp/internal/platform/httpx"
	"github.com/vds-erp/vds-erp/internal/rbac"
	"github.com/vds-erp/vds-erp/internal/validate"
)

// Handler exposes the expense-type REST endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers expense-type routes. There is no single-item GET;
// clients work off the listed set.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAuth)
		r.Get("/", h.list)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireRole(rbac.RoleAccountant, rbac.RoleAdmin))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list expense types", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, types)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseTypeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	actor, _ := rbac.CurrentUser(r)

	et, err := h.service.Create(r.Context(), req, actor.ID)
	if err != nil {
		h.respondError(w, "create expense type", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, et)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateExpenseTypeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	actor, _ := rbac.CurrentUser(r)

	et, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req, actor.ID)
	if err != nil {
		h.respondError(w, "update expense type", err)
		return
	}
	httpx.JSON(w, http.StatusOK, et)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := rbac.CurrentUser(r)

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actor.ID); err != nil {
		h.respondError(w, "delete expense type", err)
		return
	}
	httpx.Message(w, http.StatusOK, "Expense type deleted")
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		httpx.ValidationFailed(w, verrs)
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
