// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkordes/travelvista/internal/domain"
	"github.com/pkordes/travelvista/internal/observability"
)

// Catalog sources accepted in CATALOG_SOURCE.
const (
	SourceSupabase = "supabase"
	SourcePostgres = "postgres"
	SourceFile     = "file"
)

// Config holds all configuration values for the API server and the terminal
// planner. Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"]. Set CORS_ORIGINS to a
	// comma-separated list to override.
	CORSOrigins []string

	// CatalogSource picks where destinations are read from: supabase,
	// postgres or file. Defaults to supabase.
	CatalogSource string

	// SupabaseURL and SupabaseAnonKey address the hosted project.
	// Both are required when CatalogSource is supabase.
	SupabaseURL     string
	SupabaseAnonKey string

	// DatabaseURL is the Postgres connection string. Required for postgres.
	DatabaseURL string

	// CatalogFile is a YAML catalog on disk. Required for file.
	CatalogFile string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	Tracing observability.TracingConfig
}

// Load reads configuration from environment variables and returns a Config.
// A missing variable required by the chosen catalog source yields an error
// wrapping domain.ErrConfiguration that names every missing variable.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", SourceSupabase)),
		Tracing:       observability.TracingConfigFromEnv(),
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer: %w", domain.ErrConfiguration)
	}
	cfg.MaxBodyBytes = maxBody

	var missing []string
	require := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	switch cfg.CatalogSource {
	case SourceSupabase:
		cfg.SupabaseURL = require("SUPABASE_URL")
		cfg.SupabaseAnonKey = require("SUPABASE_ANON_KEY")
	case SourcePostgres:
		cfg.DatabaseURL = require("DATABASE_URL")
	case SourceFile:
		cfg.CatalogFile = require("CATALOG_FILE")
	default:
		return Config{}, fmt.Errorf("unknown CATALOG_SOURCE %q: %w", cfg.CatalogSource, domain.ErrConfiguration)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s: %w",
			strings.Join(missing, ", "), domain.ErrConfiguration)
	}

	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog.Level. An unrecognised name is info.
func (c Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
