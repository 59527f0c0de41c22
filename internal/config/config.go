package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters and is shared by the
// public and admin binaries.
type Config struct {
	Port string
	Env  string

	DB    DatabaseConfig
	Admin AdminConfig
	CORS  CORSConfig
}

// DatabaseConfig contains SQLite store parameters. Both processes point at the
// same file; the access mode is decided by the binary, not by configuration.
type DatabaseConfig struct {
	Path string
}

// AdminConfig contains settings for the administrative surface.
type AdminConfig struct {
	// APIKey guards the admin sales routes when set. An empty value leaves
	// the admin surface open, matching the original deployment.
	APIKey string
}

// CORSConfig contains CORS settings for the public reporting surface.
type CORSConfig struct {
	// AllowedOrigins restricts cross-origin access when non-empty. An empty
	// list allows any origin.
	AllowedOrigins []string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Database
	cfg.DB = DatabaseConfig{
		Path: getEnv("DB_PATH", "./data/sales.db"),
	}

	// Admin surface
	cfg.Admin = AdminConfig{
		APIKey: getEnv("ADMIN_API_KEY", ""),
	}

	// CORS (public surface)
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitEnvList("CORS_ALLOWED_ORIGINS"),
	}

	if cfg.DB.Path == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_PATH is set")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitEnvList returns a comma-separated environment variable as a slice,
// trimming whitespace and dropping empty entries.
func splitEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
