// Package poller implements the whale stream poll loop.
//
// Each subscriber gets its own Session:
//   - Polls the whale source immediately, then every 30 seconds
//   - Deduplicates trades per subscriber with a bounded SeenSet
//   - Sends each new trade individually, largest first
//   - Stops polling as soon as the subscriber goes away
//
// Sessions are owned by a Registry, which cancels and waits for all of them
// on shutdown.
package poller
