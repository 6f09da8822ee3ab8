package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Limits  LimitsConfig  `mapstructure:"limits" yaml:"limits"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Retry   RetryConfig   `mapstructure:"retry" yaml:"retry"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// APIConfig contains remote API settings
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LimitsConfig contains transfer budget settings as human-readable sizes
type LimitsConfig struct {
	MaxFileSize  string `mapstructure:"max_file_size" yaml:"max_file_size"`
	MaxTotalSize string `mapstructure:"max_total_size" yaml:"max_total_size"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// CacheConfig contains response cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// RetryConfig contains orchestrator-level retry settings
type RetryConfig struct {
	MaxRetries      int           `mapstructure:"max_retries" yaml:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval" yaml:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval" yaml:"max_interval"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and applies defaults for invalid values
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	if c.API.Timeout < time.Second {
		c.API.Timeout = DefaultTimeout
	}
	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Retry.InitialInterval <= 0 {
		c.Retry.InitialInterval = DefaultRetryInitialInterval
	}
	if c.Retry.MaxInterval <= 0 {
		c.Retry.MaxInterval = DefaultRetryMaxInterval
	}

	if c.Limits.MaxFileSize == "" {
		c.Limits.MaxFileSize = DefaultMaxFileSize
	} else if _, err := ParseSize(c.Limits.MaxFileSize); err != nil {
		return fmt.Errorf("invalid limits.max_file_size: %w", err)
	}
	if c.Limits.MaxTotalSize == "" {
		c.Limits.MaxTotalSize = DefaultMaxTotalSize
	} else if _, err := ParseSize(c.Limits.MaxTotalSize); err != nil {
		return fmt.Errorf("invalid limits.max_total_size: %w", err)
	}

	return nil
}

// MaxFileSizeBytes returns the per-file byte ceiling
func (c *Config) MaxFileSizeBytes() int64 {
	n, err := ParseSize(c.Limits.MaxFileSize)
	if err != nil {
		n, _ = ParseSize(DefaultMaxFileSize)
	}
	return n
}

// MaxTotalSizeBytes returns the cumulative byte ceiling
func (c *Config) MaxTotalSizeBytes() int64 {
	n, err := ParseSize(c.Limits.MaxTotalSize)
	if err != nil {
		n, _ = ParseSize(DefaultMaxTotalSize)
	}
	return n
}

// ParseSize parses a human-readable size string like "10MB" into bytes
func ParseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	var multiplier int64 = 1
	if strings.HasSuffix(s, "GB") {
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	} else if strings.HasSuffix(s, "MB") {
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	} else if strings.HasSuffix(s, "KB") {
		multiplier = 1024
		s = strings.TrimSuffix(s, "KB")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("no numeric value in size string")
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value: %w", err)
	}

	if n < 0 {
		return 0, fmt.Errorf("negative size not allowed")
	}

	return n * multiplier, nil
}
