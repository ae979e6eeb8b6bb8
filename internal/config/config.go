// Package config handles loading runtime configuration for the FingerScore API.
// Values come from environment variables so the same binary runs in development,
// staging and production; a local .env file is read first when one exists.
package config

import (
	"os"
	"strings"

	// godotenv reads a .env file and loads its key=value pairs into the process environment.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port           string // TCP port the HTTP server listens on (e.g., "8080")
	DatabaseURL    string // postgres://... for production, sqlite://path or file:path for local runs
	JWTSecret      string // HS256 key shared with the identity provider that signs access tokens
	Env            string // "development", "staging", or "production"
	LogLevel       string // debug, info, warn, error
	LogFormat      string // text or json
	MigrationsPath string // golang-migrate source URL, e.g. "file://migrations"
	AutoMigrate    bool   // apply pending migrations on startup
}

// Load reads configuration from environment variables and returns a populated Config.
// A missing .env file is not an error: real environment variables are used instead.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           envOrDefault("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"), // required by cmd/server
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Env:            envOrDefault("ENV", "development"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "text"),
		MigrationsPath: envOrDefault("MIGRATIONS_PATH", "file://migrations"),
		AutoMigrate:    boolEnvOrDefault("AUTO_MIGRATE", true),
	}
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func envOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	switch {
	case raw == "":
		return defaultValue
	case raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes"):
		return true
	case raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no"):
		return false
	}
	return defaultValue
}
