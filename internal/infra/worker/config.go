// Package worker holds the scheduled crawler's configuration and health
// reporting.
package worker

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	pkgconfig "lunch-radar/pkg/config"
)

// Config controls the scheduled crawl worker.
type Config struct {
	// CronSchedule is the cron expression for crawl scheduling.
	// Default: "30 9 * * 1-5" (weekday mornings at 9:30, before lunch).
	CronSchedule string

	// Timezone is the IANA timezone for cron evaluation.
	// Default: "Europe/Stockholm", where the scraped restaurants live.
	Timezone string

	// CrawlTimeout bounds a single batch crawl. Default: 10 minutes.
	CrawlTimeout time.Duration

	// MaxConcurrency bounds each crawl wave. Default: 3.
	MaxConcurrency int

	// HealthPort serves the worker's health endpoint. Default: 9091.
	HealthPort int

	// SourcesFile is the path to the YAML source registry.
	// Default: "sources.yaml".
	SourcesFile string
}

// DefaultConfig returns production-ready worker defaults.
func DefaultConfig() Config {
	return Config{
		CronSchedule:   "30 9 * * 1-5",
		Timezone:       "Europe/Stockholm",
		CrawlTimeout:   10 * time.Minute,
		MaxConcurrency: 3,
		HealthPort:     9091,
		SourcesFile:    "sources.yaml",
	}
}

// LoadConfigFromEnv builds the worker config from environment variables,
// falling back to defaults, then validates it.
func LoadConfigFromEnv() (Config, error) {
	defaults := DefaultConfig()
	cfg := Config{
		CronSchedule:   pkgconfig.GetEnvString("CRAWL_SCHEDULE", defaults.CronSchedule),
		Timezone:       pkgconfig.GetEnvString("CRAWL_TIMEZONE", defaults.Timezone),
		CrawlTimeout:   pkgconfig.GetEnvDuration("CRAWL_TIMEOUT", defaults.CrawlTimeout),
		MaxConcurrency: pkgconfig.GetEnvInt("CRAWL_MAX_CONCURRENCY", defaults.MaxConcurrency),
		HealthPort:     pkgconfig.GetEnvInt("HEALTH_PORT", defaults.HealthPort),
		SourcesFile:    pkgconfig.GetEnvString("SOURCES_FILE", defaults.SourcesFile),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration, collecting every violation.
func (c *Config) Validate() error {
	var errs []error

	if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("invalid cron schedule %q: %w", c.CronSchedule, err))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.CrawlTimeout); err != nil {
		errs = append(errs, fmt.Errorf("crawl timeout: %w", err))
	}
	if c.MaxConcurrency < 1 || c.MaxConcurrency > 100 {
		errs = append(errs, fmt.Errorf("max concurrency out of range: %d", c.MaxConcurrency))
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		errs = append(errs, fmt.Errorf("health port out of range: %d", c.HealthPort))
	}
	if c.SourcesFile == "" {
		errs = append(errs, errors.New("sources file path is required"))
	}

	return errors.Join(errs...)
}
