package config

import "time"

// Config is the root configuration for the dashboard server.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	API     APIConfig     `yaml:"api"`
	Whale   WhaleConfig   `yaml:"whale"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int             `yaml:"port"`
	ReadTimeout     time.Duration   `yaml:"read_timeout"`
	WriteTimeout    time.Duration   `yaml:"write_timeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout"`
	CORS            CORSConfig      `yaml:"cors"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds cross-origin settings. "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAge         int      `yaml:"max_age"` // Preflight cache, seconds
}

// RateLimitConfig holds per-client rate limits for /api routes.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"` // 0 disables limiting
}

// APIConfig holds Zora API settings.
type APIConfig struct {
	RestURL      string        `yaml:"rest_url"`
	APIKey       string        `yaml:"api_key"`
	ChainID      int64         `yaml:"chain_id"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	Breaker      BreakerConfig `yaml:"breaker"`
}

// BreakerConfig holds upstream circuit breaker settings.
type BreakerConfig struct {
	FailureThreshold uint32        `yaml:"failure_threshold"`
	OpenTimeout      time.Duration `yaml:"open_timeout"`
}

// WhaleConfig holds whale detection settings.
type WhaleConfig struct {
	Source WhaleSourceConfig `yaml:"source"`
	Stream WhaleStreamConfig `yaml:"stream"`
}

// WhaleSourceConfig controls the upstream fan-out per whale scan.
type WhaleSourceConfig struct {
	TokenLimit    int `yaml:"token_limit"`
	SwapsPerToken int `yaml:"swaps_per_token"`
	Concurrency   int `yaml:"concurrency"`
}

// WhaleStreamConfig controls the per-subscriber poll loop.
type WhaleStreamConfig struct {
	Interval     time.Duration `yaml:"interval"`
	MinUSD       *float64      `yaml:"min_usd"` // Unset selects DefaultMinUSD
	TopN         int           `yaml:"top_n"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	PingInterval time.Duration `yaml:"ping_interval"`
}

// Threshold returns the whale threshold in USD.
func (c WhaleStreamConfig) Threshold() float64 {
	if c.MinUSD == nil {
		return DefaultMinUSD
	}
	return *c.MinUSD
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // text or json
	File       string `yaml:"file"`   // Empty logs to stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
	Path      string `yaml:"path"`
}
