package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vds-erp/vds-erp/internal/app"
	"github.com/vds-erp/vds-erp/internal/assets"
	"github.com/vds-erp/vds-erp/internal/audit"
	"github.com/vds-erp/vds-erp/internal/auth"
	"github.com/vds-erp/vds-erp/internal/dashboard"
	"github.com/vds-erp/vds-erp/internal/expenses"
	"github.com/vds-erp/vds-erp/internal/expensetypes"
	"github.com/vds-erp/vds-erp/internal/observability"
	"github.com/vds-erp/vds-erp/internal/platform/cache"
	"github.com/vds-erp/vds-erp/internal/platform/db"
	"github.com/vds-erp/vds-erp/internal/rbac"
	"github.com/vds-erp/vds-erp/internal/shared"
	"github.com/vds-erp/vds-erp/internal/users"
	"github.com/vds-erp/vds-erp/internal/vendors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "vds_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	auditLogger := shared.NewAuditLogger(pool)
	rbacMiddleware := rbac.Middleware{Logger: logger}
	metrics := observability.NewMetrics()

	userRepo := users.NewRepository(pool)
	userService := users.NewService(userRepo, auditLogger)
	userHandler := users.NewHandler(logger, userService, rbacMiddleware)

	authService := auth.NewService(userRepo, pool, auditLogger)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager, rbacMiddleware)

	dashboardService := dashboard.NewService(pool, redisClient)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, rbacMiddleware)

	expenseRepo := expenses.NewRepository(pool)
	expenseService := expenses.NewService(expenseRepo, auditLogger, dashboardService)
	expenseHandler := expenses.NewHandler(logger, expenseService, rbacMiddleware)

	vendorRepo := vendors.NewRepository(pool)
	vendorService := vendors.NewService(vendorRepo, auditLogger, dashboardService)
	vendorHandler := vendors.NewHandler(logger, vendorService, rbacMiddleware)

	assetRepo := assets.NewRepository(pool)
	assetService := assets.NewService(assetRepo, auditLogger, dashboardService)
	assetHandler := assets.NewHandler(logger, assetService, rbacMiddleware)

	expenseTypeRepo := expensetypes.NewRepository(pool)
	expenseTypeService := expensetypes.NewService(expenseTypeRepo, auditLogger)
	expenseTypeHandler := expensetypes.NewHandler(logger, expenseTypeService, rbacMiddleware)

	auditService := audit.NewService(pool)
	auditHandler := audit.NewHandler(logger, auditService, rbacMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		AuthHandler:        authHandler,
		ExpenseHandler:     expenseHandler,
		VendorHandler:      vendorHandler,
		AssetHandler:       assetHandler,
		ExpenseTypeHandler: expenseTypeHandler,
		UserHandler:        userHandler,
		AuditHandler:       auditHandler,
		DashboardHandler:   dashboardHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
