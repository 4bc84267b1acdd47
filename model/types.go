package model

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Item is the opaque identifier of one removable unit (e.g. a gene id).
// Items are externally defined and immutable.
type Item string

// Universe interns Items to dense uint32 indices so that Combinations can be
// represented as roaring bitmaps. It is safe for concurrent use: oracles may
// report previously unseen items mid-search.
type Universe struct {
	mu    sync.RWMutex
	ids   map[Item]uint32
	items []Item
}

// NewUniverse creates an empty Universe.
func NewUniverse() *Universe {
	return &Universe{
		ids: make(map[Item]uint32),
	}
}

// Intern returns the index for item, assigning the next free index if the
// item has not been seen before. Interning is idempotent.
func (u *Universe) Intern(item Item) uint32 {
	u.mu.RLock()
	idx, ok := u.ids[item]
	u.mu.RUnlock()
	if ok {
		return idx
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	// Re-check under the write lock; another goroutine may have won.
	if idx, ok := u.ids[item]; ok {
		return idx
	}
	idx = uint32(len(u.items))
	u.ids[item] = idx
	u.items = append(u.items, item)
	return idx
}

// Lookup returns the index for item without interning it.
func (u *Universe) Lookup(item Item) (uint32, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	idx, ok := u.ids[item]
	return idx, ok
}

// Item returns the Item for a previously assigned index.
func (u *Universe) Item(idx uint32) (Item, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if int(idx) >= len(u.items) {
		return "", false
	}
	return u.items[idx], true
}

// Len returns the number of interned items.
func (u *Universe) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.items)
}

// Combination is an immutable set of interned Items representing a candidate
// joint removal. The zero value is the empty combination.
//
// All methods treat the receiver as read-only; With returns a new
// Combination. This makes Combinations safe to share across workers without
// synchronization.
type Combination struct {
	rb *roaring.Bitmap
}

// NewCombination creates an empty Combination.
func NewCombination() Combination {
	return Combination{rb: roaring.New()}
}

// FromIndices creates a Combination from the given universe indices.
func FromIndices(indices ...uint32) Combination {
	return Combination{rb: roaring.BitmapOf(indices...)}
}

// FromItems interns the given items and returns the resulting Combination.
// Duplicate items collapse; a Combination is a set.
func FromItems(u *Universe, items []Item) Combination {
	rb := roaring.New()
	for _, it := range items {
		rb.Add(u.Intern(it))
	}
	return Combination{rb: rb}
}

// With returns a new Combination containing all of c plus idx.
func (c Combination) With(idx uint32) Combination {
	var rb *roaring.Bitmap
	if c.rb == nil {
		rb = roaring.New()
	} else {
		rb = c.rb.Clone()
	}
	rb.Add(idx)
	return Combination{rb: rb}
}

// Contains reports whether idx is part of the combination.
func (c Combination) Contains(idx uint32) bool {
	return c.rb != nil && c.rb.Contains(idx)
}

// Len returns the number of items in the combination.
func (c Combination) Len() int {
	if c.rb == nil {
		return 0
	}
	return int(c.rb.GetCardinality())
}

// Equal reports whether c and o contain the same index set.
func (c Combination) Equal(o Combination) bool {
	if c.rb == nil || o.rb == nil {
		return c.Len() == 0 && o.Len() == 0
	}
	return c.rb.Equals(o.rb)
}

// Indices returns the sorted universe indices of the combination.
func (c Combination) Indices() []uint32 {
	if c.rb == nil {
		return nil
	}
	return c.rb.ToArray()
}

// Key returns a canonical string key for the combination. Equal combinations
// have equal keys, so Key is suitable for dedup maps.
func (c Combination) Key() string {
	indices := c.Indices()
	var sb strings.Builder
	for i, idx := range indices {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(idx), 10))
	}
	return sb.String()
}

// Items decodes the combination back to Items, sorted lexicographically.
// Indices unknown to the universe are skipped.
func (c Combination) Items(u *Universe) []Item {
	indices := c.Indices()
	items := make([]Item, 0, len(indices))
	for _, idx := range indices {
		if it, ok := u.Item(idx); ok {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items
}

// String returns a human-readable representation of the combination.
func (c Combination) String() string {
	return "{" + c.Key() + "}"
}
