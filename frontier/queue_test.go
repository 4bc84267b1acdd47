package frontier

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Braden-Griebel/fastsl/model"
)

func TestQueue(t *testing.T) {
	t.Run("FIFO", func(t *testing.T) {
		q := New()
		q.Push(model.FromIndices(1))
		q.Push(model.FromIndices(2))

		first, ok := q.TryPop()
		require.True(t, ok)
		assert.True(t, first.Contains(1))

		second, ok := q.TryPop()
		require.True(t, ok)
		assert.True(t, second.Contains(2))

		_, ok = q.TryPop()
		assert.False(t, ok)
	})

	t.Run("EmptyPopDoesNotBlock", func(t *testing.T) {
		q := New()
		_, ok := q.TryPop()
		assert.False(t, ok)
		assert.Equal(t, 0, q.Len())
	})

	t.Run("AllowsDuplicateEntries", func(t *testing.T) {
		q := New()
		c := model.FromIndices(1, 2)
		q.Push(c)
		q.Push(c)
		assert.Equal(t, 2, q.Len())
	})

	t.Run("QuiescenceTracksInFlight", func(t *testing.T) {
		q := New()
		assert.True(t, q.Quiesced())

		q.Push(model.FromIndices(1))
		assert.False(t, q.Quiesced())

		_, ok := q.TryPop()
		require.True(t, ok)
		// Empty but the popped task is still being processed: a sibling
		// must not treat the search as finished yet.
		assert.Equal(t, 0, q.Len())
		assert.False(t, q.Quiesced())

		q.Done()
		assert.True(t, q.Quiesced())
	})

	t.Run("DoneWithoutPopPanics", func(t *testing.T) {
		q := New()
		assert.Panics(t, func() { q.Done() })
	})

	t.Run("CompactionPreservesOrder", func(t *testing.T) {
		q := New()
		const n = 1000
		for i := 0; i < n; i++ {
			q.Push(model.FromIndices(uint32(i)))
		}
		for i := 0; i < n; i++ {
			c, ok := q.TryPop()
			require.True(t, ok)
			assert.True(t, c.Contains(uint32(i)))
			q.Done()
		}
		assert.True(t, q.Quiesced())
	})
}

// TestQueue_NoLostWork drives the queue with concurrent workers that expand
// each popped entry into children, the way the search does, and checks that
// quiescence-based termination processes every entry exactly once.
func TestQueue_NoLostWork(t *testing.T) {
	q := New()

	const (
		roots    = 50
		depth    = 3
		fanout   = 2
		workers  = 8
	)
	for i := 0; i < roots; i++ {
		q.Push(model.FromIndices(uint32(i)))
	}

	var processed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				c, ok := q.TryPop()
				if !ok {
					if q.Quiesced() {
						return
					}
					time.Sleep(50 * time.Microsecond)
					continue
				}
				processed.Add(1)
				if c.Len() < depth {
					next := uint32(roots + c.Len())
					for j := 0; j < fanout; j++ {
						q.Push(c.With(next))
					}
				}
				q.Done()
			}
		}()
	}
	wg.Wait()

	// Each entry of size k < depth expands into fanout copies of one child,
	// so the totals form a geometric series per root.
	want := int64(roots * (1 + fanout + fanout*fanout))
	assert.Equal(t, want, processed.Load())
	assert.True(t, q.Quiesced())
}
