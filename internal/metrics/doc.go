// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Upstream API request counts, latencies and failures
//   - HTTP request counts and latencies by route
//   - Whale poll cycles, emitted trades and connected subscribers
//
// All methods are safe to call on a nil *Metrics.
package metrics
