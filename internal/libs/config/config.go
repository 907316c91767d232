// Package config provides application configuration management from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dsjohal14/catalogsearch/internal/scope/search"
)

// Config holds application configuration
type Config struct {
	DatabaseURL string
	DataDir     string
	APIPort     string
	APIHost     string
	LogLevel    string

	SearchDefaultLimit  int
	SearchMaxLimit      int
	SuggestDefaultLimit int
	SuggestMaxLimit     int

	SyncInterval time.Duration

	Weights search.Weights
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DataDir:     getEnv("DATA_DIR", "./data"),
		APIPort:     getEnv("API_PORT", "8080"),
		APIHost:     getEnv("API_HOST", "0.0.0.0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.SearchDefaultLimit, err = getIntEnv("SEARCH_DEFAULT_LIMIT", search.DefaultSearchLimit); err != nil {
		return nil, err
	}
	if cfg.SearchMaxLimit, err = getIntEnv("SEARCH_MAX_LIMIT", 200); err != nil {
		return nil, err
	}
	if cfg.SuggestDefaultLimit, err = getIntEnv("SUGGEST_DEFAULT_LIMIT", search.DefaultSuggestLimit); err != nil {
		return nil, err
	}
	if cfg.SuggestMaxLimit, err = getIntEnv("SUGGEST_MAX_LIMIT", 50); err != nil {
		return nil, err
	}
	if cfg.SyncInterval, err = getDurationEnv("SYNC_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Weights, err = loadWeights(search.DefaultWeights()); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if err := checkLimits("SEARCH", c.SearchDefaultLimit, c.SearchMaxLimit); err != nil {
		return err
	}
	if err := checkLimits("SUGGEST", c.SuggestDefaultLimit, c.SuggestMaxLimit); err != nil {
		return err
	}
	if c.SyncInterval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL must be positive, got %s", c.SyncInterval)
	}
	return nil
}

func checkLimits(prefix string, def, max int) error {
	if def <= 0 || max <= 0 {
		return fmt.Errorf("%s limits must be positive (default=%d, max=%d)", prefix, def, max)
	}
	if def > max {
		return fmt.Errorf("%s_DEFAULT_LIMIT (%d) exceeds %s_MAX_LIMIT (%d)", prefix, def, prefix, max)
	}
	return nil
}

// loadWeights applies WEIGHT_* overrides on top of base
func loadWeights(base search.Weights) (search.Weights, error) {
	w := base
	fields := []struct {
		key string
		dst *int
	}{
		{"WEIGHT_NAME_EXACT", &w.NameExact},
		{"WEIGHT_NAME_PREFIX", &w.NamePrefix},
		{"WEIGHT_NAME_CONTAINS", &w.NameContains},
		{"WEIGHT_WORD_EXACT", &w.WordExact},
		{"WEIGHT_WORD_PREFIX", &w.WordPrefix},
		{"WEIGHT_WORD_CONTAINS", &w.WordContains},
		{"WEIGHT_BRAND", &w.Brand},
		{"WEIGHT_CATEGORY", &w.Category},
		{"WEIGHT_DESCRIPTION", &w.Description},
		{"WEIGHT_IMAGE", &w.Image},
	}

	for _, f := range fields {
		v, err := getIntEnv(f.key, *f.dst)
		if err != nil {
			return w, err
		}
		*f.dst = v
	}
	return w, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
