/**
 * @description
 * Configuration loader for the TRX Sasta Energy backend.
 * Reads environment variables, applies defaults, and performs strict validation.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files
 * - standard "os": For reading env vars
 *
 * @notes
 * - Fails fast if critical variables (DATABASE_URL, JWT_SECRET) are missing.
 * - Load() returns a plain immutable Config struct; no package-level state.
 */

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Jobs   JobsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port          string
	Env           string // "development" or "production"
	AllowedOrigin string // Frontend origin for CORS
}

// DBConfig holds PostgreSQL settings
type DBConfig struct {
	URL string
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	URL string
}

// AuthConfig holds session token settings
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// JobsConfig holds background job settings
type JobsConfig struct {
	// AggregationSchedule is a robfig/cron spec for the price aggregation job.
	AggregationSchedule string
}

// Load reads .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env, but don't crash if it fails (prod injects env vars directly)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "5000"),
			Env:           getEnv("GO_ENV", "development"),
			AllowedOrigin: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		DB: DBConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Auth: AuthConfig{
			JWTSecret: sanitizeCredential(getEnv("JWT_SECRET", "")),
			TokenTTL:  24 * time.Hour,
		},
		Jobs: JobsConfig{
			AggregationSchedule: getEnv("AGGREGATION_SCHEDULE", "@every 10m"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the deployment mode is "production".
// The startup aggregation run is skipped in production.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// validate checks for required variables
func validate(cfg *Config) error {
	if cfg.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func sanitizeCredential(value string) string {
	trimmed := strings.TrimSpace(value)
	return strings.Trim(trimmed, "\"")
}
