// Package rng provides the deterministic random number generation shared by
// all stochastic components of routekit.
//
// Goals:
//   - Determinism: same seed ⇒ identical draws across platforms.
//   - Encapsulation: a single generator type; no time-based sources hidden anywhere.
//   - Safety: no panics on valid input; only sentinel errors where sampling can fail.
//   - Performance: no allocations in hot paths; O(1) draws, O(n) roulette scans.
//
// Concurrency:
//   - RNG is NOT goroutine-safe. Do not share an *RNG across goroutines.
//   - Derive independent streams with New(DeriveSeed(parent, stream)) when needed.
package rng
