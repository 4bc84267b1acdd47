// Package fastsl finds minimal combinations of items (typically genes) whose
// simultaneous removal drives a system's objective below an essentiality
// threshold — the synthetic-lethal-set search.
//
// The search grows a frontier of candidate combinations breadth-wise up to a
// configurable depth, evaluating each candidate through an external Oracle
// (the optimization backend) and pruning branches whose lethality is already
// decided. Work is distributed across a fixed pool of workers over one
// shared frontier queue.
//
// # Quick Start
//
//	orc := oracle.NewStatic(10.0, []model.Item{"gA", "gB", "gC"},
//	    oracle.WithObjective([]model.Item{"gA"}, 0),
//	    oracle.WithObjective([]model.Item{"gB", "gC"}, 0),
//	)
//
//	sets, err := fastsl.Find(ctx, orc,
//	    fastsl.WithMaxDepth(2),
//	    fastsl.WithWorkers(4),
//	)
//
// Find returns plain item-id sets. The lower-level Finder.Run returns
// Combinations over an item Universe owned by the Finder; use
// Combination.Items to decode them and results.Dedup to collapse duplicates
// reached via independent expansion paths.
//
// # Oracle Contract
//
// LP/MILP solving, model parsing, and network construction are out of scope:
// they live behind the oracle.Oracle interface. Implementations must give
// every call an isolated copy of the baseline state so concurrent
// evaluations never observe each other's removals. An infeasible solve is a
// lethality signal; any other failure aborts the whole search.
//
// # Termination
//
// A worker that observes an empty queue exits only once the queue is
// quiesced: empty and with no sibling worker mid-expansion. Children pushed
// by a slow sibling are therefore never lost, and the returned set is
// independent of worker count for a deterministic oracle.
package fastsl
