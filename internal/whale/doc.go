// Package whale detects large trades across recently active coins.
//
// The pipeline has three stages:
//   - Source fetches the most recently traded coins and their latest swaps
//   - FilterLargeTrades keeps trades at or above a USD threshold, largest first
//   - SeenSet drops trades a subscriber has already been sent
package whale
