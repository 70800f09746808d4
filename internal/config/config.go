// Package config reads the API server's configuration from the environment.
// There is no config file: twelve-factor style env vars only, with defaults
// for everything except the database connection.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the runtime settings for the planner API server.
// Load populates every field from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string for the trips store.
	// Required; the server refuses to start without it.
	DatabaseURL string

	// LogLevel is the minimum slog level (debug, info, warn, error).
	// Defaults to "info".
	LogLevel string

	// CORSOrigins lists the origins allowed to call the API from a browser.
	// CORS_ORIGINS takes a comma-separated list; the default is the local
	// Vite dev server the planner UI runs on.
	CORSOrigins []string
}

// Load builds a Config from the environment. Missing required variables are
// collected and reported together in a single error.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the named environment variable, or fallback when it is
// unset or empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated value into trimmed entries, dropping
// empty ones.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
