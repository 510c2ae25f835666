// Package model defines shared data types used across the Zora dashboard.
//
// Records are produced by the upstream client's normalisation layer and are
// treated as immutable by every consumer.
//
// Conventions:
//   - Money and volumes: float64 USD, wrapped in Amount when the upstream may omit them
//   - Timestamps: time.Time in UTC
//   - IDs: string addresses and transaction hashes, as returned upstream
package model
