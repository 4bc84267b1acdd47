// Package frontier implements the shared frontier queue of pending candidate
// combinations, together with the quiescence accounting the search uses for
// termination.
//
// The queue is a mutex-guarded FIFO multiset: entries may repeat when the
// same combination is reached via different expansion paths. Pop is
// non-blocking; a worker that observes an empty queue consults Quiesced to
// decide whether it may exit or whether a sibling worker is still
// mid-expansion and could push more children.
package frontier

import (
	"sync"

	"github.com/Braden-Griebel/fastsl/model"
)

// Queue is a concurrent FIFO of Combinations with in-flight accounting.
//
// A successful TryPop marks one task as in flight; the caller must call Done
// exactly once after processing (including on error paths). The queue is
// quiesced when it is empty and no popped task is still being processed, at
// which point no new entries can ever appear and workers may exit.
type Queue struct {
	mu       sync.Mutex
	items    []model.Combination
	head     int
	inFlight int
}

// New creates an empty Queue.
func New() *Queue {
	return &Queue{}
}

// Push appends a combination to the queue.
func (q *Queue) Push(c model.Combination) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, c)
}

// TryPop removes and returns the oldest combination. It never blocks: if the
// queue is empty it returns ok=false. On success the task is counted as in
// flight until Done is called.
func (q *Queue) TryPop() (model.Combination, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= len(q.items) {
		return model.Combination{}, false
	}

	c := q.items[q.head]
	q.items[q.head] = model.Combination{}
	q.head++

	// Reclaim the consumed prefix once it dominates the backing slice.
	if q.head > 64 && q.head*2 >= len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}

	q.inFlight++
	return c, true
}

// Done marks a previously popped task as finished. Every successful TryPop
// must be paired with exactly one Done.
func (q *Queue) Done() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.inFlight == 0 {
		panic("frontier: Done called without matching TryPop")
	}
	q.inFlight--
}

// Len returns the current number of pending combinations. The value is
// approximate under concurrency and intended for diagnostics only.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Quiesced reports whether the queue is empty and no popped task is still in
// flight. Once true with all producers being the workers themselves, it
// remains true: nothing can push new work anymore.
func (q *Queue) Quiesced() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)-q.head == 0 && q.inFlight == 0
}
