package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/consistify/consistify-backend/internal/achievements"
	"github.com/consistify/consistify-backend/internal/apps"
	"github.com/consistify/consistify-backend/internal/apps/commitments"
	"github.com/consistify/consistify-backend/internal/apps/diet"
	"github.com/consistify/consistify-backend/internal/apps/profiles"
	"github.com/consistify/consistify-backend/internal/apps/rooms"
	"github.com/consistify/consistify-backend/internal/apps/scores"
	"github.com/consistify/consistify-backend/internal/apps/timelog"
	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/config"
	"github.com/consistify/consistify-backend/internal/database"
	"github.com/consistify/consistify-backend/internal/handlers"
	"github.com/consistify/consistify-backend/internal/jobs"
	"github.com/consistify/consistify-backend/internal/logging"
	"github.com/consistify/consistify-backend/internal/middleware"
	"github.com/consistify/consistify-backend/internal/routes"
	"github.com/consistify/consistify-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// DB log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Shared read cache for every app service
	store := cache.NewStore()

	// Services
	authService := services.NewAuthService(database.DB, cfg)

	// Register plugins
	plugins := []apps.Plugin{
		commitments.New(),
		diet.New(),
		timelog.New(),
		rooms.New(),
		scores.New(),
		profiles.New(),
	}

	// Migrate plugin models
	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	// Achievement catalog
	catalog := achievements.Defaults()
	if cfg.AchievementsPath != "" {
		loaded, err := achievements.LoadFromFile(cfg.AchievementsPath)
		if err != nil {
			slog.Error("failed to load achievements catalog", "path", cfg.AchievementsPath, "error", err)
			os.Exit(1)
		}
		catalog = loaded
	}
	if err := achievements.Seed(database.DB, catalog); err != nil {
		slog.Error("achievement seeding failed", "error", err)
		os.Exit(1)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(catalog)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, store, authHandler, healthHandler, plugins)

	// Nightly rollover
	rollover := jobs.NewRollover(database.DB, store)
	if _, err := rollover.Start(cfg.RolloverSchedule); err != nil {
		slog.Error("rollover scheduling failed", "schedule", cfg.RolloverSchedule, "error", err)
		os.Exit(1)
	}
	slog.Info("rollover scheduled", "schedule", cfg.RolloverSchedule)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	rollover.Stop()
	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
