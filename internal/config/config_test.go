// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.StoreBackend != StoreSQLite {
		t.Errorf("StoreBackend = %s, want %s", cfg.StoreBackend, StoreSQLite)
	}
	if cfg.CharmHost != "cloud.charm.sh" {
		t.Errorf("CharmHost = %s, want cloud.charm.sh", cfg.CharmHost)
	}
	if cfg.CharmDBName != "benedict" {
		t.Errorf("CharmDBName = %s, want benedict", cfg.CharmDBName)
	}
	if !cfg.AutoSync {
		t.Error("AutoSync = false, want true")
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.SearchLimit != 10 {
		t.Errorf("SearchLimit = %d, want 10", cfg.SearchLimit)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should not be empty")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("BENEDICT_DB_PATH", "/tmp/benedict-test.db")
	os.Setenv("BENEDICT_STORE", "charm")
	os.Setenv("CHARM_HOST", "custom.charm.sh")
	os.Setenv("CHARM_DB", "test_db")
	os.Setenv("CHARM_AUTO_SYNC", "false")
	os.Setenv("CHARM_MAX_RETRIES", "5")
	os.Setenv("CHARM_RETRY_DELAY", "500ms")
	os.Setenv("BENEDICT_SEARCH_LIMIT", "20")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DBPath != "/tmp/benedict-test.db" {
		t.Errorf("DBPath = %s, want /tmp/benedict-test.db", cfg.DBPath)
	}
	if cfg.StoreBackend != StoreCharm {
		t.Errorf("StoreBackend = %s, want charm", cfg.StoreBackend)
	}
	if cfg.CharmHost != "custom.charm.sh" {
		t.Errorf("CharmHost = %s, want custom.charm.sh", cfg.CharmHost)
	}
	if cfg.CharmDBName != "test_db" {
		t.Errorf("CharmDBName = %s, want test_db", cfg.CharmDBName)
	}
	if cfg.AutoSync {
		t.Error("AutoSync = true, want false")
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 500*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 500ms", cfg.RetryDelay)
	}
	if cfg.SearchLimit != 20 {
		t.Errorf("SearchLimit = %d, want 20", cfg.SearchLimit)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad backend", func(c *Config) { c.StoreBackend = "mongo" }},
		{"search limit too low", func(c *Config) { c.SearchLimit = 0 }},
		{"search limit too high", func(c *Config) { c.SearchLimit = 100 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"excessive retries", func(c *Config) { c.MaxRetries = 50 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should have failed")
			}
		})
	}
}

func TestLoad_InvalidEnvFallsBackToDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("BENEDICT_SEARCH_LIMIT", "not-a-number")
	os.Setenv("CHARM_RETRY_DELAY", "never")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.SearchLimit != 10 {
		t.Errorf("SearchLimit = %d, want default 10", cfg.SearchLimit)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want default 2s", cfg.RetryDelay)
	}
}
