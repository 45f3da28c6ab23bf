package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Analytics   AnalyticsConfig   `mapstructure:"analytics"`
	DataSource  DataSourceConfig  `mapstructure:"data_source"`
	Summarizer  SummarizerConfig  `mapstructure:"summarizer"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// AnalyticsConfig holds the tunable analysis thresholds. Changing any of
// them forces a full recompute of the projection over all keywords.
type AnalyticsConfig struct {
	AnalysisWindowMonths     int     `mapstructure:"analysis_window_months"`      // Rolling window length in calendar months
	MovingAverageWindow      int     `mapstructure:"moving_average_window"`       // Trailing moving-average size in points
	SeasonalPeakThresholdPct float64 `mapstructure:"seasonal_peak_threshold_pct"` // Index must reach 100 + this to flag a peak
	VolatilityCVThresholdPct float64 `mapstructure:"volatility_cv_threshold_pct"` // CV at or above this prefixes "Volatile"
}

// DataSourceConfig represents the remote report source (the keyword API)
type DataSourceConfig struct {
	URL     string        `mapstructure:"url"`     // Endpoint serving JSON keyword reports
	Timeout time.Duration `mapstructure:"timeout"` // Per-fetch timeout
}

// SummarizerConfig represents the external text-generation service
type SummarizerConfig struct {
	URL     string        `mapstructure:"url"`     // Endpoint consuming the summarized statistics; empty disables
	Timeout time.Duration `mapstructure:"timeout"` // Per-call timeout
}

// PersistenceConfig represents snapshot persistence configuration
type PersistenceConfig struct {
	Backend  string `mapstructure:"backend"`   // memory (default), file, redis
	Path     string `mapstructure:"path"`      // Snapshot file path (file backend)
	RedisURL string `mapstructure:"redis_url"` // Redis connection URL (redis backend)
	RedisKey string `mapstructure:"redis_key"` // Redis key holding the snapshot
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Analytics.Validate(); err != nil {
		return fmt.Errorf("analytics config: %w", err)
	}

	if err := c.Persistence.Validate(); err != nil {
		return fmt.Errorf("persistence config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}
	return nil
}

// Validate validates the analysis thresholds against their allowed ranges
func (c *AnalyticsConfig) Validate() error {
	if c.AnalysisWindowMonths < 6 || c.AnalysisWindowMonths > 60 {
		return fmt.Errorf("analysis_window_months must be between 6 and 60, got %d", c.AnalysisWindowMonths)
	}

	if c.MovingAverageWindow < 2 || c.MovingAverageWindow > 10 {
		return fmt.Errorf("moving_average_window must be between 2 and 10, got %d", c.MovingAverageWindow)
	}

	if c.SeasonalPeakThresholdPct < 5 || c.SeasonalPeakThresholdPct > 100 {
		return fmt.Errorf("seasonal_peak_threshold_pct must be between 5 and 100, got %g", c.SeasonalPeakThresholdPct)
	}

	if c.VolatilityCVThresholdPct < 10 || c.VolatilityCVThresholdPct > 100 {
		return fmt.Errorf("volatility_cv_threshold_pct must be between 10 and 100, got %g", c.VolatilityCVThresholdPct)
	}

	return nil
}

// Validate validates persistence configuration
func (c *PersistenceConfig) Validate() error {
	switch c.Backend {
	case "", "memory":
		return nil
	case "file":
		if c.Path == "" {
			return fmt.Errorf("persistence.path is required for the file backend")
		}
		return nil
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("persistence.redis_url is required for the redis backend")
		}
		return nil
	default:
		return fmt.Errorf("unsupported persistence backend: %s (supported: memory, file, redis)", c.Backend)
	}
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
