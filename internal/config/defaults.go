package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultPort              = 8000
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 60 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultCORSMaxAge        = 600
	DefaultRequestsPerSecond = 20
	DefaultRestURL           = "https://api-sdk.zora.engineering"
	DefaultChainID           = 8453
	DefaultAPITimeout        = 30 * time.Second
	DefaultMaxRetries        = 3
	DefaultRetryBackoff      = 1 * time.Second
	DefaultFailureThreshold  = 5
	DefaultOpenTimeout       = 30 * time.Second
	DefaultTokenLimit        = 5
	DefaultSwapsPerToken     = 20
	DefaultSwapConcurrency   = 5
	DefaultStreamInterval    = 30 * time.Second
	DefaultMinUSD            = 1000
	DefaultTopN              = 10
	DefaultWSWriteTimeout    = 10 * time.Second
	DefaultPingInterval      = 30 * time.Second
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultLogMaxSizeMB      = 100
	DefaultLogMaxBackups     = 5
	DefaultLogMaxAgeDays     = 28
	DefaultMetricsNamespace  = "zora_dashboard"
	DefaultMetricsPath       = "/metrics"
)

func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if len(c.Server.CORS.AllowedOrigins) == 0 {
		c.Server.CORS.AllowedOrigins = []string{"*"}
	}
	if c.Server.CORS.MaxAge == 0 {
		c.Server.CORS.MaxAge = DefaultCORSMaxAge
	}
	if c.Server.RateLimit.RequestsPerSecond == 0 {
		c.Server.RateLimit.RequestsPerSecond = DefaultRequestsPerSecond
	}

	// API defaults
	if c.API.RestURL == "" {
		c.API.RestURL = DefaultRestURL
	}
	if c.API.ChainID == 0 {
		c.API.ChainID = DefaultChainID
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}
	if c.API.Breaker.FailureThreshold == 0 {
		c.API.Breaker.FailureThreshold = DefaultFailureThreshold
	}
	if c.API.Breaker.OpenTimeout == 0 {
		c.API.Breaker.OpenTimeout = DefaultOpenTimeout
	}

	// Whale defaults
	if c.Whale.Source.TokenLimit == 0 {
		c.Whale.Source.TokenLimit = DefaultTokenLimit
	}
	if c.Whale.Source.SwapsPerToken == 0 {
		c.Whale.Source.SwapsPerToken = DefaultSwapsPerToken
	}
	if c.Whale.Source.Concurrency == 0 {
		c.Whale.Source.Concurrency = DefaultSwapConcurrency
	}
	if c.Whale.Stream.Interval == 0 {
		c.Whale.Stream.Interval = DefaultStreamInterval
	}
	if c.Whale.Stream.MinUSD == nil {
		minUSD := float64(DefaultMinUSD)
		c.Whale.Stream.MinUSD = &minUSD
	}
	if c.Whale.Stream.TopN == 0 {
		c.Whale.Stream.TopN = DefaultTopN
	}
	if c.Whale.Stream.WriteTimeout == 0 {
		c.Whale.Stream.WriteTimeout = DefaultWSWriteTimeout
	}
	if c.Whale.Stream.PingInterval == 0 {
		c.Whale.Stream.PingInterval = DefaultPingInterval
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = DefaultLogMaxBackups
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = DefaultLogMaxAgeDays
	}

	// Metrics defaults
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}
