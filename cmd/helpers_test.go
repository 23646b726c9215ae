package main

import (
	"path/filepath"
	"testing"

	"github.com/sells-group/investor-profile/internal/config"
)

// useTestConfig points cfg at a fresh SQLite database for the test.
func useTestConfig(t *testing.T) *config.Config {
	t.Helper()
	prev := cfg
	cfg = &config.Config{
		Store: config.StoreConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		},
		Server:    config.ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
		Cache:     config.CacheConfig{Enabled: true, Size: 16},
		Batch:     config.BatchConfig{Concurrency: 4},
		Retention: config.RetentionConfig{Schedule: "@daily"},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100},
		Log:       config.LogConfig{Level: "info", Format: "json"},
	}
	t.Cleanup(func() { cfg = prev })
	return cfg
}
