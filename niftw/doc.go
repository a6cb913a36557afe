// Package niftw implements the time-windowed electric-vehicle evaluator
// with non-interleaved full recharges (NIFTW): every station visit restores
// the full battery and blocks the vehicle for a fixed replenishment time.
//
// The label algebra is a simpler cousin of adptw (no arrival corridor is
// needed because recharging always takes the same time), which makes the
// evaluator a good middle ground between the plain cvrp reference and the
// full ADPTW semantics.
package niftw
