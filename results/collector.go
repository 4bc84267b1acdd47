// Package results holds the shared result collection of the search and its
// post-processing helpers.
package results

import (
	"sync"

	"github.com/Braden-Griebel/fastsl/model"
)

// Collector is an append-only collection of lethal combinations shared by
// all workers. Appends are concurrency-safe and never lost; no dedup is
// performed during the search (the same combination can be certified lethal
// via independent expansion paths).
type Collector struct {
	mu     sync.Mutex
	combos []model.Combination
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Append records a lethal combination.
func (c *Collector) Append(combo model.Combination) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.combos = append(c.combos, combo)
}

// Len returns the number of recorded combinations, duplicates included.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.combos)
}

// List returns a copy of the recorded combinations, in append order.
func (c *Collector) List() []model.Combination {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Combination, len(c.combos))
	copy(out, c.combos)
	return out
}

// Dedup collapses duplicate combinations, keeping the first occurrence of
// each. The canonical set is independent of worker count and scheduling
// order for a deterministic oracle.
func Dedup(combos []model.Combination) []model.Combination {
	seen := make(map[string]struct{}, len(combos))
	out := make([]model.Combination, 0, len(combos))
	for _, c := range combos {
		key := c.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
