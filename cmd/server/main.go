package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendlens/internal/config"
	"spendlens/internal/database"
	"spendlens/internal/handlers"
	custommw "spendlens/internal/middleware"
	"spendlens/internal/repositories"
	"spendlens/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	transactionRepo := repositories.NewTransactionRepository(db)

	metrics := services.NewPrometheusMetrics()
	categorizer := services.NewCategorizerService()
	analytics := services.NewAnalyticsService()
	recurring := services.NewRecurringService(categorizer)
	importService := services.NewImportService(transactionRepo, categorizer, metrics)
	dashboardService := services.NewDashboardService(transactionRepo, analytics, recurring, metrics)

	if os.Getenv("SEED_FAKE_DATA") == "true" {
		seedFakeData(transactionRepo, categorizer)
	}

	healthHandler := handlers.NewHealthCheckHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	transactionHandler := handlers.NewTransactionHandler(dashboardService)
	importHandler := handlers.NewImportHandler(importService, cfg.Import.MaxUploadSize)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = custommw.CustomHTTPErrorHandler

	e.Use(custommw.RequestID())
	e.Use(custommw.PanicRecovery())
	e.Use(custommw.SecurityHeaders())
	e.Use(custommw.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/dashboard", dashboardHandler.GetDashboard)
	api.GET("/dashboard/totals", dashboardHandler.GetTotals)
	api.GET("/dashboard/monthly", dashboardHandler.GetMonthlySeries)
	api.GET("/dashboard/categories", dashboardHandler.GetCategoryBreakdown)
	api.GET("/dashboard/comparison", dashboardHandler.GetComparison)
	api.GET("/dashboard/recurring", dashboardHandler.GetRecurringCommitments)
	api.GET("/transactions", transactionHandler.ListRecent)
	api.GET("/transactions/bounds", transactionHandler.GetDateBounds)
	api.POST("/imports", importHandler.UploadCSV)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("starting server",
			"addr", server.Addr,
			"environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
}

// seedFakeData fills an empty development database with six months of
// generated history
func seedFakeData(repo repositories.TransactionRepositoryInterface, categorizer services.CategorizerServiceInterface) {
	count, err := repo.Count()
	if err != nil {
		slog.Error("failed to check store size before seeding", "error", err)
		return
	}
	if count > 0 {
		slog.Info("store already has data, skipping fake-data seed", "count", count)
		return
	}

	generator := services.NewTransactionGenerator(categorizer)
	end := time.Now().UTC()
	start := end.AddDate(0, -6, 0)
	history := generator.GenerateHistory(start, end, decimal.NewFromInt(4000))

	inserted, duplicates, err := repo.CreateBatch(history)
	if err != nil {
		slog.Error("failed to seed fake data", "error", err)
		return
	}
	slog.Info("seeded fake transaction history",
		"inserted", inserted,
		"duplicates", duplicates,
		"from", start.Format("2006-01-02"),
		"to", end.Format("2006-01-02"))
}
