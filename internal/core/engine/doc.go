// Package engine implements the pure catalog operations: filtering,
// grouping and facet extraction.
//
// Every function here is a total, side-effect-free transformation of
// domain values. Inputs are never mutated and outputs never alias
// caller-owned slices, so results are safe to share across goroutines.
package engine
