package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniverse(t *testing.T) {
	t.Run("InternIsIdempotent", func(t *testing.T) {
		u := NewUniverse()

		a := u.Intern("gene_a")
		b := u.Intern("gene_b")
		assert.NotEqual(t, a, b)
		assert.Equal(t, a, u.Intern("gene_a"))
		assert.Equal(t, 2, u.Len())
	})

	t.Run("Roundtrip", func(t *testing.T) {
		u := NewUniverse()

		idx := u.Intern("gene_a")
		item, ok := u.Item(idx)
		require.True(t, ok)
		assert.Equal(t, Item("gene_a"), item)

		got, ok := u.Lookup("gene_a")
		require.True(t, ok)
		assert.Equal(t, idx, got)

		_, ok = u.Lookup("missing")
		assert.False(t, ok)
		_, ok = u.Item(99)
		assert.False(t, ok)
	})

	t.Run("ConcurrentIntern", func(t *testing.T) {
		u := NewUniverse()
		items := []Item{"a", "b", "c", "d", "e"}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					for _, it := range items {
						u.Intern(it)
					}
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, len(items), u.Len())
		for _, it := range items {
			idx, ok := u.Lookup(it)
			require.True(t, ok)
			got, ok := u.Item(idx)
			require.True(t, ok)
			assert.Equal(t, it, got)
		}
	})
}

func TestCombination(t *testing.T) {
	t.Run("WithDoesNotMutateReceiver", func(t *testing.T) {
		base := FromIndices(1)
		child := base.With(2)

		assert.Equal(t, 1, base.Len())
		assert.Equal(t, 2, child.Len())
		assert.False(t, base.Contains(2))
		assert.True(t, child.Contains(1))
		assert.True(t, child.Contains(2))
	})

	t.Run("EqualityIgnoresConstructionOrder", func(t *testing.T) {
		a := FromIndices(3, 1, 2)
		b := FromIndices(1).With(2).With(3)

		assert.True(t, a.Equal(b))
		assert.Equal(t, a.Key(), b.Key())
	})

	t.Run("AddingExistingIndexIsANoop", func(t *testing.T) {
		a := FromIndices(1, 2)
		b := a.With(2)

		assert.True(t, a.Equal(b))
	})

	t.Run("ZeroValueIsEmpty", func(t *testing.T) {
		var c Combination

		assert.Equal(t, 0, c.Len())
		assert.False(t, c.Contains(0))
		assert.Empty(t, c.Indices())
		assert.True(t, c.Equal(NewCombination()))

		child := c.With(7)
		assert.Equal(t, 1, child.Len())
	})

	t.Run("ItemsDecodeSorted", func(t *testing.T) {
		u := NewUniverse()
		c := FromItems(u, []Item{"zeta", "alpha", "mid", "alpha"})

		assert.Equal(t, 3, c.Len())
		assert.Equal(t, []Item{"alpha", "mid", "zeta"}, c.Items(u))
	})

	t.Run("KeyIsCanonical", func(t *testing.T) {
		u := NewUniverse()
		a := FromItems(u, []Item{"x", "y"})
		b := FromItems(u, []Item{"y", "x"})
		c := FromItems(u, []Item{"x"})

		assert.Equal(t, a.Key(), b.Key())
		assert.NotEqual(t, a.Key(), c.Key())
	})
}
