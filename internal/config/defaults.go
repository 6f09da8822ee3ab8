package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// API defaults
	DefaultAPIBaseURL = "https://stackblitz.com"
	DefaultTimeout    = 30 * time.Second

	// Transfer budget defaults
	DefaultMaxFileSize  = "10MB"
	DefaultMaxTotalSize = "200MB"

	// Cache defaults
	DefaultCacheEnabled = false
	DefaultCacheTTL     = 24 * time.Hour

	// Retry defaults (orchestrator layer; the fetcher itself never retries)
	DefaultMaxRetries           = 0
	DefaultRetryInitialInterval = 1 * time.Second
	DefaultRetryMaxInterval     = 30 * time.Second

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".blitzpack"
	}
	return filepath.Join(home, ".blitzpack")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
			Timeout: DefaultTimeout,
		},
		Limits: LimitsConfig{
			MaxFileSize:  DefaultMaxFileSize,
			MaxTotalSize: DefaultMaxTotalSize,
		},
		Output: OutputConfig{
			Directory: "",
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Retry: RetryConfig{
			MaxRetries:      DefaultMaxRetries,
			InitialInterval: DefaultRetryInitialInterval,
			MaxInterval:     DefaultRetryMaxInterval,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
