// Package cvrp implements the capacitated distance evaluator, the simplest
// complete instance of the routing evaluation kernel.
//
// A forward (or backward) label carries two resources: cumulative distance
// and cumulative load. The junction formula is closed-form, so the evaluator
// satisfies routing.ConcatenationEvaluation and prices any segment
// concatenation in O(1) per junction.
//
// Cost model: distance weighs 1; load beyond the vehicle capacity is charged
// with an adjustable overload penalty so an outer adaptive-penalty scheme
// can steer the search across the feasibility boundary.
package cvrp
