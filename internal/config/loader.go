package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")               // Current directory
		v.AddConfigPath("./configs")       // Project configs directory
		v.AddConfigPath("/etc/trendwatch") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix("TRENDWATCH")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)

	// Analytics defaults
	v.SetDefault("analytics.analysis_window_months", 24)
	v.SetDefault("analytics.moving_average_window", 3)
	v.SetDefault("analytics.seasonal_peak_threshold_pct", 25.0)
	v.SetDefault("analytics.volatility_cv_threshold_pct", 35.0)

	// Data source defaults
	v.SetDefault("data_source.timeout", "10s")

	// Summarizer defaults
	v.SetDefault("summarizer.timeout", "30s")

	// Persistence defaults
	v.SetDefault("persistence.backend", "memory")
	v.SetDefault("persistence.path", "./data/snapshot.bin")
	v.SetDefault("persistence.redis_key", "trendwatch:snapshot")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 8080,
		},
		Analytics: AnalyticsConfig{
			AnalysisWindowMonths:     24,
			MovingAverageWindow:      3,
			SeasonalPeakThresholdPct: 25,
			VolatilityCVThresholdPct: 35,
		},
		DataSource: DataSourceConfig{
			Timeout: 10 * time.Second,
		},
		Summarizer: SummarizerConfig{
			Timeout: 30 * time.Second,
		},
		Persistence: PersistenceConfig{
			Backend:  "memory",
			Path:     "./data/snapshot.bin",
			RedisKey: "trendwatch:snapshot",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
