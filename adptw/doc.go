// Package adptw implements the time-windowed electric-vehicle evaluator
// with arrival-dependent partial recharging (ADPTW), plus the matching
// FRVCP propagator for the station-insertion DP.
//
// A forward label tracks cumulative distance, load, time-window shift and
// overcharge, together with the arrival-time corridor
// (earliest/latest/shifted variants) and the residual charge expressed in
// time that make station-aware concatenation possible:
//
//   - Arrival at the next vertex is the earliest allowed time or the shifted
//     predecessor arrival plus travel and service, whichever is later;
//     arrivals beyond the window accrue time shift instead of failing.
//   - Energy consumption accrues in time units along each arc; stations
//     replenish up to the battery capacity within the waiting slack, and
//     whatever cannot be replenished in time becomes overcharge.
//   - Concatenate re-derives the additional time shift and overcharge that
//     the junction inevitably incurs, without touching interior nodes.
//
// Costs are distance plus weighted penalties (overload, overcharge, time
// shift); the multipliers are adjustable so an outer adaptive-penalty scheme
// can steer the search across feasibility boundaries.
package adptw
