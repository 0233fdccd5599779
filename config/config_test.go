package config_test

import (
	"testing"
	"time"

	"meeting-insights/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Provider)
	assert.Equal(t, 4, cfg.FetchConcurrency)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MI_PROVIDER", "ics")
	t.Setenv("MI_ICS_DIR", "/tmp/calendars")
	t.Setenv("MI_FETCH_CONCURRENCY", "8")
	t.Setenv("MI_FETCH_TIMEOUT", "3s")
	t.Setenv("MI_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "ics", cfg.Provider)
	assert.Equal(t, "/tmp/calendars", cfg.ICSDir)
	assert.Equal(t, 8, cfg.FetchConcurrency)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadGoogleRequiresCredentials(t *testing.T) {
	t.Setenv("MI_PROVIDER", "google")
	t.Setenv("MI_GOOGLE_CLIENT_ID", "")
	t.Setenv("MI_GOOGLE_CLIENT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("MI_GOOGLE_CLIENT_ID", "id")
	t.Setenv("MI_GOOGLE_CLIENT_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "google", cfg.Provider)
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*config.Config)
		wantErr bool
	}{
		"Valid":             {func(c *config.Config) {}, false},
		"UnknownProvider":   {func(c *config.Config) { c.Provider = "caldav" }, true},
		"ZeroConcurrency":   {func(c *config.Config) { c.FetchConcurrency = 0 }, true},
		"NegativeTimeout":   {func(c *config.Config) { c.FetchTimeout = -time.Second }, true},
		"UnknownLogLevel":   {func(c *config.Config) { c.LogLevel = "loud" }, true},
		"MixedCaseLogLevel": {func(c *config.Config) { c.LogLevel = "DEBUG" }, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := config.Config{
				Provider:         "csv",
				FetchConcurrency: 4,
				FetchTimeout:     time.Second,
				LogLevel:         "info",
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
