// ABOUTME: Centralized configuration for the Benedict recipe skill
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/harper/benedict-skill/internal/storage/sqlite"
)

// Store backends for session and history persistence
const (
	StoreSQLite = "sqlite"
	StoreCharm  = "charm"
)

// Config holds all configuration for the skill
type Config struct {
	// Storage settings
	DBPath       string
	StoreBackend string

	// Charm settings (for StoreBackend == charm)
	CharmHost   string
	CharmDBName string
	AutoSync    bool
	MaxRetries  int
	RetryDelay  time.Duration

	// Dialog settings
	SearchLimit int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DBPath:       getEnv("BENEDICT_DB_PATH", sqlite.DefaultDBPath()),
		StoreBackend: getEnv("BENEDICT_STORE", StoreSQLite),
		CharmHost:    getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:  getEnv("CHARM_DB", "benedict"),
		AutoSync:     getEnvBool("CHARM_AUTO_SYNC", true),
		MaxRetries:   getEnvInt("CHARM_MAX_RETRIES", 3),
		RetryDelay:   getEnvDuration("CHARM_RETRY_DELAY", 2*time.Second),
		SearchLimit:  getEnvInt("BENEDICT_SEARCH_LIMIT", 10),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.StoreBackend != StoreSQLite && c.StoreBackend != StoreCharm {
		return fmt.Errorf("BENEDICT_STORE must be %s or %s, got %q",
			StoreSQLite, StoreCharm, c.StoreBackend)
	}
	if c.SearchLimit < 1 || c.SearchLimit > 50 {
		return fmt.Errorf("BENEDICT_SEARCH_LIMIT must be 1-50, got %d", c.SearchLimit)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("CHARM_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
