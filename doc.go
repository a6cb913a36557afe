// Package routekit is an in-memory toolkit for building vehicle-routing
// metaheuristics: from graph primitives and route containers to local
// search, adaptive large neighborhoods, and charging-aware sub-solvers.
//
// 🚀 What is routekit?
//
//	A modern, deterministic, single-dependency library that brings together:
//		• Core primitives: instances, routes and solutions with incremental resource labels
//		• Evaluation kernel: constant-time pricing of arbitrary segment concatenations
//		• Local search: pluggable neighborhood operators and pivoting rules
//		• ALNS: adaptive destroy/repair scheduling with roulette selection
//		• FRVCP: label-setting dynamic program for charging-station insertion
//		• Reference evaluators: CVRP, ADPTW and NIFTW cost functions
//
// ✨ Why choose routekit?
//
//   - Deterministic – same seed, same operator order, same trajectory
//   - Incremental – routes carry forward/backward labels; moves price in O(1) amortized
//   - Pure Go – no cgo, a single test-only dependency
//   - Extensible – bring your own evaluator, operator, or pivoting rule
//
// Under the hood, everything is organized into per-concern subpackages:
//
//	routing/     — vertices, arcs, instances, nodes, routes, solutions & the evaluation kernel
//	localsearch/ — move/operator contracts, generator-arc neighborhoods, pivoting rules, the engine
//	movecache/   — sorted removal & insertion move caches with partial invalidation
//	frvcp/       — label-setting DP over an expanded station graph
//	alns/        — adaptive operator pools and standard destroy/repair operators
//	cvrp/        — capacitated distance evaluator (simplest complete example)
//	adptw/       — time windows with arrival-dependent partial recharging
//	niftw/       — time windows with non-interleaved full recharges
//	rng/         — deterministic seedable randomness
//	bitset/      — dynamic bitsets and the N²-pair arc set
//	permutation/ — in-place permutation application
//
// Quick ASCII example of one ALNS iteration:
//
//	solution ──destroy──▶ partial ──repair──▶ candidate ──local search──▶ local optimum
//
// Start with routing.NewInstance, wrap it in a Solution, then explore with
// localsearch.LocalSearch.Optimize or drive alns.AdaptiveLargeNeighborhood in a loop.
package routekit
