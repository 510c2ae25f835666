package config

import (
	"errors"
	"fmt"
	"strings"
)

// maxTopN mirrors the whale filter's output cap.
const maxTopN = 50

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 {
		return errors.New("server.rate_limit.requests_per_second must be >= 0")
	}

	if c.API.RestURL == "" {
		return errors.New("api.rest_url is required")
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}

	if c.Whale.Source.TokenLimit < 1 {
		return errors.New("whale.source.token_limit must be >= 1")
	}
	if c.Whale.Source.SwapsPerToken < 1 {
		return errors.New("whale.source.swaps_per_token must be >= 1")
	}
	if c.Whale.Source.Concurrency < 1 {
		return errors.New("whale.source.concurrency must be >= 1")
	}
	if c.Whale.Stream.MinUSD != nil && *c.Whale.Stream.MinUSD <= 0 {
		return fmt.Errorf("whale.stream.min_usd must be > 0 (omit it for the default %d), got %v",
			DefaultMinUSD, *c.Whale.Stream.MinUSD)
	}
	if c.Whale.Stream.TopN < 1 || c.Whale.Stream.TopN > maxTopN {
		return fmt.Errorf("whale.stream.top_n must be between 1 and %d, got %d", maxTopN, c.Whale.Stream.TopN)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path)
	}

	return nil
}
