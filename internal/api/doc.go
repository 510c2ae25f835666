// Package api provides the Zora SDK REST client.
//
// Endpoints (base https://api-sdk.zora.engineering):
//   - /explore             ranked coin lists (TOP_GAINERS, TOP_VOLUME_24H, MOST_VALUABLE, NEW, LAST_TRADED)
//   - /traderLeaderboard   weekly trader leaderboard
//   - /featuredCreators    featured creators of the week
//   - /coin                single coin detail
//   - /coinSwaps           recent swaps of a coin
//   - /profile             user profile by handle or address
//
// Responses are normalised into internal/model records by convert.go. Every
// request goes through a circuit breaker and is retried with exponential
// backoff on 429 and 5xx responses.
package api
