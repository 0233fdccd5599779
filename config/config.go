// Package config loads runtime configuration from the environment. A .env
// file, if present, is folded in first; explicit environment variables win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything main needs that is not a per-run flag.
type Config struct {
	Provider         string
	GoogleClientID   string
	GoogleSecret     string
	TokenDir         string
	ICSDir           string
	FetchConcurrency int
	FetchTimeout     time.Duration
	LogLevel         string
}

// Load reads configuration from the environment, seeding it from .env when
// one exists.
func Load() (Config, error) {
	// Missing .env is fine; env vars alone are a full configuration.
	_ = godotenv.Load()

	cfg := Config{
		Provider:         getenvDefault("MI_PROVIDER", "csv"),
		GoogleClientID:   strings.TrimSpace(os.Getenv("MI_GOOGLE_CLIENT_ID")),
		GoogleSecret:     strings.TrimSpace(os.Getenv("MI_GOOGLE_CLIENT_SECRET")),
		TokenDir:         getenvDefault("MI_TOKEN_DIR", "."),
		ICSDir:           getenvDefault("MI_ICS_DIR", "."),
		FetchConcurrency: getenvInt("MI_FETCH_CONCURRENCY", 4),
		FetchTimeout:     getenvDuration("MI_FETCH_TIMEOUT", 10*time.Second),
		LogLevel:         getenvDefault("MI_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the rest of the program cannot work with.
func (c Config) Validate() error {
	switch c.Provider {
	case "csv", "ics":
	case "google":
		if c.GoogleClientID == "" || c.GoogleSecret == "" {
			return errors.New("MI_GOOGLE_CLIENT_ID and MI_GOOGLE_CLIENT_SECRET are required when provider=google")
		}
	default:
		return fmt.Errorf("invalid provider: %s", c.Provider)
	}
	if c.FetchConcurrency <= 0 {
		return errors.New("fetch concurrency must be > 0")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be > 0")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
