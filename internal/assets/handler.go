package assets

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vds-erp/vds-erp/internal/platform/httpx"
	"github.com/vds-erp/vds-erp/internal/rbac"
	"github.com/vds-erp/vds-erp/internal/validate"
)

// Handler exposes the fixed-asset REST endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers fixed-asset routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAuth)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireRole(rbac.RoleAccountant, rbac.RoleAdmin))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{Status: q.Get("status"), Location: q.Get("location")}

	assets, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list assets", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, assets)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	asset, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, "get asset", err)
		return
	}
	httpx.JSON(w, http.StatusOK, asset)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateAssetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	actor, _ := rbac.CurrentUser(r)

	asset, err := h.service.Create(r.Context(), req, actor.ID)
	if err != nil {
		h.respondError(w, "create asset", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, asset)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateAssetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	actor, _ := rbac.CurrentUser(r)

	asset, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req, actor.ID)
	if err != nil {
		h.respondError(w, "update asset", err)
		return
	}
	httpx.JSON(w, http.StatusOK, asset)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := rbac.CurrentUser(r)

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actor.ID); err != nil {
		h.respondError(w, "delete asset", err)
		return
	}
	httpx.Message(w, http.StatusOK, "Asset deleted successfully")
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
