package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vds-erp/vds-erp/internal/assets"
	"github.com/vds-erp/vds-erp/internal/audit"
	"github.com/vds-erp/vds-erp/internal/auth"
	"github.com/vds-erp/vds-erp/internal/dashboard"
	"github.com/vds-erp/vds-erp/internal/expenses"
	"github.com/vds-erp/vds-erp/internal/expensetypes"
	"github.com/vds-erp/vds-erp/internal/observability"
	"github.com/vds-erp/vds-erp/internal/shared"
	"github.com/vds-erp/vds-erp/internal/users"
	"github.com/vds-erp/vds-erp/internal/vendors"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	AuthHandler        *auth.Handler
	ExpenseHandler     *expenses.Handler
	VendorHandler      *vendors.Handler
	AssetHandler       *assets.Handler
	ExpenseTypeHandler *expensetypes.Handler
	UserHandler        *users.Handler
	AuditHandler       *audit.Handler
	DashboardHandler   *dashboard.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/expenses", params.ExpenseHandler.MountRoutes)
	r.Route("/vendors", params.VendorHandler.MountRoutes)
	r.Route("/fixed-assets", params.AssetHandler.MountRoutes)
	r.Route("/expense-types", params.ExpenseTypeHandler.MountRoutes)
	r.Route("/users", params.UserHandler.MountRoutes)
	r.Route("/audit", params.AuditHandler.MountRoutes)
	r.Route("/dashboard", params.DashboardHandler.MountRoutes)

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
