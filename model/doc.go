// Package model defines core types used throughout fastsl.
//
// # Identity Types
//
//   - Item: Externally defined identifier for one removable unit (e.g. a gene)
//   - Universe: Thread-safe interner mapping Items to dense uint32 indices
//
// # Value Types
//
//   - Combination: Immutable set of interned Items, backed by a roaring bitmap
//
// Combinations are the unit of work in the search: the frontier queue holds
// them, the oracle evaluates them, and the result collection records the
// lethal ones. Two Combinations are equal iff they contain the same index set.
package model
