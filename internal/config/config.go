// Package config loads tracker configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/startlist-watch/internal/estimator"
)

// Strategy names accepted by STARTLIST_STRATEGY.
const (
	StrategyPagination  = "pagination"
	StrategyIncremental = "incremental"
)

// Config holds the tracker settings.
type Config struct {
	// URL is the startlist URL template with a {page} placeholder.
	URL string
	// DataFile is the path of the CSV history log.
	DataFile string
	// WatchName enables the name-filtered count when non-empty.
	WatchName string
	// PageSize is the assumed rows per full page (incremental strategy).
	PageSize int
	// Strategy selects the counting strategy: "pagination" or "incremental".
	Strategy string
	// MilestoneStep posts a notification whenever the total crosses a
	// multiple of this value; 0 disables notifications.
	MilestoneStep int
	// Output is the path the render command writes the dashboard to.
	Output string
	// LogLevel is the minimum log level ("debug", "info", "warn", "error").
	LogLevel string
}

// Load reads configuration from a .env file (if present) and the
// environment, applying defaults for anything unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		URL:           getEnv("STARTLIST_URL", estimator.DefaultURL),
		DataFile:      getEnv("STARTLIST_DATA_FILE", "data.csv"),
		WatchName:     os.Getenv("STARTLIST_WATCH_NAME"),
		Strategy:      getEnv("STARTLIST_STRATEGY", StrategyPagination),
		Output:        getEnv("STARTLIST_OUTPUT", "docs/index.html"),
		LogLevel:      getEnv("STARTLIST_LOG_LEVEL", "info"),
		PageSize:      estimator.DefaultPageSize,
		MilestoneStep: 0,
	}

	if v := os.Getenv("STARTLIST_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("STARTLIST_PAGE_SIZE must be a positive integer, got %q", v)
		}
		cfg.PageSize = n
	}

	if v := os.Getenv("STARTLIST_MILESTONE_STEP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("STARTLIST_MILESTONE_STEP must be a non-negative integer, got %q", v)
		}
		cfg.MilestoneStep = n
	}

	if cfg.Strategy != StrategyPagination && cfg.Strategy != StrategyIncremental {
		return nil, fmt.Errorf("STARTLIST_STRATEGY must be %q or %q, got %q",
			StrategyPagination, StrategyIncremental, cfg.Strategy)
	}

	return cfg, nil
}

// NewStrategy builds the estimator strategy the configuration selects.
func (c *Config) NewStrategy() estimator.Strategy {
	if c.Strategy == StrategyIncremental {
		return estimator.Incremental{PageSize: c.PageSize}
	}
	return estimator.Pagination{}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
