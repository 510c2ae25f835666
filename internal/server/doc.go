// Package server exposes the dashboard over HTTP and WebSocket.
//
// Routes:
//   - GET /                          service banner
//   - GET /health                    subscriber count, upstream breaker state, version
//   - GET /metrics                   Prometheus metrics
//   - GET /api/overview              combined landing view
//   - GET /api/coins/:list           gainers, volume, valuable, new, active
//   - GET /api/coins/:address        coin detail
//   - GET /api/traders               trader leaderboard
//   - GET /api/creators              featured creators
//   - GET /api/profile/:identifier   raw profile
//   - GET /api/clusters              topic clusters over an explore list
//   - GET /api/whales                one-shot whale snapshot
//   - GET /ws/whales                 whale trade stream
//
// Invalid query parameters are rejected with 422 and {"error": "..."}.
package server
