package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultChainID is Base mainnet.
const DefaultChainID = 8453

// Observer receives the outcome of every upstream call.
type Observer interface {
	ObserveUpstream(endpoint string, duration time.Duration, err error)
}

// BreakerConfig configures the upstream circuit breaker.
type BreakerConfig struct {
	FailureThreshold uint32        // Consecutive failures before opening
	OpenTimeout      time.Duration // Time spent open before a trial request
}

// Client provides access to the Zora SDK REST API.
type Client struct {
	baseURL    string
	apiKey     string
	chainID    int64
	httpClient *http.Client
	logger     *slog.Logger
	observer   Observer

	maxRetries   int
	retryBackoff time.Duration

	breakerCfg BreakerConfig
	breaker    *gobreaker.CircuitBreaker
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		chainID: DefaultChainID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		maxRetries:   3,
		retryBackoff: time.Second,
		breakerCfg: BreakerConfig{
			FailureThreshold: 5,
			OpenTimeout:      30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "zora-api",
		MaxRequests: 1,
		Timeout:     c.breakerCfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.breakerCfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAPIKey sets the optional key sent in the api-key header.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithChainID sets the chain used for coin lookups.
func WithChainID(id int64) ClientOption {
	return func(c *Client) {
		c.chainID = id
	}
}

// WithBreaker sets the circuit breaker thresholds.
func WithBreaker(cfg BreakerConfig) ClientOption {
	return func(c *Client) {
		c.breakerCfg = cfg
	}
}

// WithObserver sets the upstream call observer (usually metrics).
func WithObserver(o Observer) ClientOption {
	return func(c *Client) {
		c.observer = o
	}
}

// BreakerState reports the circuit breaker state ("closed", "half-open", "open").
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}
