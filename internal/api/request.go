package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrUpstreamUnavailable wraps every failure to obtain data from the API.
// Callers degrade to empty results on it.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// APIError represents an error from the Zora API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zora api error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// doRequest performs an HTTP request with the given method and path.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

// doWithRetry performs a request with exponential backoff retry.
func (c *Client) doWithRetry(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	var body []byte
	attempts := 0

	operation := func() error {
		attempts++
		b, err := c.doRequest(ctx, method, path, query)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && !apiErr.IsRetryable() {
				return backoff.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryBackoff
	policy.RandomizationFactor = 0.5
	policy.Multiplier = 2
	policy.MaxElapsedTime = 0

	err := backoff.RetryNotify(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx),
		func(err error, d time.Duration) {
			c.logger.Debug("retrying request",
				"attempt", attempts,
				"backoff", d,
				"path", path,
				"err", err,
			)
		})
	if err != nil {
		if attempts > c.maxRetries {
			return nil, fmt.Errorf("max retries exceeded: %w", err)
		}
		return nil, err
	}

	return body, nil
}

// get performs a GET request through the circuit breaker and decodes the
// JSON body into result.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	start := time.Now()
	raw, err := c.breaker.Execute(func() (any, error) {
		return c.doWithRetry(ctx, http.MethodGet, path, query)
	})
	if c.observer != nil {
		c.observer.ObserveUpstream(path, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	if err := json.Unmarshal(raw.([]byte), result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
