// cmd/server is the entry point of the scoring API.
// It wires configuration, logging, the database and the fiber routes together;
// everything else lives in internal/.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fjvbn2003/fingerscore/internal/config"
	"github.com/fjvbn2003/fingerscore/internal/database"
	"github.com/fjvbn2003/fingerscore/internal/handlers"
	"github.com/fjvbn2003/fingerscore/internal/logging"
	"github.com/fjvbn2003/fingerscore/internal/middleware"
	"github.com/fjvbn2003/fingerscore/internal/store"
)

var version = "dev"

func main() {
	cfg := config.Load()

	log := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "fingerscore",
		Version: version,
	})
	slog.SetDefault(log)

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			logging.Error(log, "JWT_SECRET is required in production", nil)
			os.Exit(1)
		}
		logging.Warn(log, "JWT_SECRET is not set; every /api/v1 request will be rejected")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logging.Error(log, "failed to connect to database", err)
		os.Exit(1)
	}

	// Postgres runs the SQL files in migrations/, sqlite is auto-migrated.
	if cfg.AutoMigrate {
		if err := database.Migrate(db, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			logging.Error(log, "failed to run migrations", err)
			os.Exit(1)
		}
	}

	app := fiber.New(fiber.Config{
		AppName: "Fingerscore API",
	})

	// --- Global middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// --- Public routes ---
	app.Get("/health", handlers.HealthCheck)

	// --- Authenticated API routes ---
	api := app.Group("/api/v1", middleware.Auth(cfg, db))
	handlers.RegisterAPI(api, db, store.NewMatchStore(db), log)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logging.Info(log, "shutting down")
		if err := app.Shutdown(); err != nil {
			logging.Error(log, "shutdown failed", err)
		}
	}()

	logging.Info(log, "starting server", logging.FieldPort, cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logging.Error(log, "server stopped", err)
		os.Exit(1)
	}
}
