package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pocketbook/internal/config"
	"pocketbook/internal/database"
	"pocketbook/internal/handlers"
	"pocketbook/internal/middleware"
	"pocketbook/internal/repositories"
	"pocketbook/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	e := buildServer(cfg, db, logger)

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	address := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Info("Starting pocketbook server", "address", address, "environment", cfg.Server.Environment)
	if err := e.Start(address); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}

func buildServer(cfg *config.Config, db *database.DB, logger *slog.Logger) *echo.Echo {
	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)

	// Services
	metrics := services.NewPrometheusMetrics()
	circuitBreaker := services.NewCircuitBreaker(services.DefaultCircuitBreakerConfig())
	currencyService := services.NewCurrencyService(&cfg.Exchange, circuitBreaker, metrics, logger)
	passwordService := services.NewPasswordService(&cfg.Security)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, passwordService, tokenService, metrics, logger)
	transactionService := services.NewTransactionService(transactionRepo, userRepo, currencyService, metrics, logger)
	reportService := services.NewReportService(transactionRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, currencyService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, middleware.RequireAuth(tokenService))

	authenticated := api.Group("", middleware.RequireAuth(tokenService))
	authenticated.POST("/transactions", transactionHandler.Create)
	authenticated.GET("/transactions", transactionHandler.List)
	authenticated.GET("/transactions/all", transactionHandler.ListAll)
	authenticated.GET("/transactions/:id", transactionHandler.Get)
	authenticated.DELETE("/transactions/:id", transactionHandler.Delete)
	authenticated.GET("/balance", transactionHandler.Balance)
	authenticated.GET("/categories", transactionHandler.Categories)
	authenticated.GET("/reports/total", reportHandler.Total)
	authenticated.GET("/reports/categories", reportHandler.CategoryBreakdown)
	authenticated.GET("/reports/year-in-review", reportHandler.YearInReview)

	seedDemoDataIfEnabled(userRepo, transactionRepo, passwordService, logger)

	return e
}

// seedDemoDataIfEnabled populates a demo account when SEED_DEMO_DATA is set.
// Intended for local development only.
func seedDemoDataIfEnabled(
	userRepo repositories.UserRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	passwordService services.PasswordServiceInterface,
	logger *slog.Logger,
) {
	if os.Getenv("SEED_DEMO_DATA") != "true" {
		return
	}

	seeder := services.NewSampleDataService(userRepo, transactionRepo, passwordService, logger)
	if _, err := seeder.SeedDemoUser("demo@pocketbook.local", "demo-password"); err != nil {
		logger.Warn("Demo data seeding failed", "error", err)
	}
}
