package fastsl

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/Braden-Griebel/fastsl/frontier"
	"github.com/Braden-Griebel/fastsl/model"
	"github.com/Braden-Griebel/fastsl/oracle"
	"github.com/Braden-Griebel/fastsl/results"
	"github.com/Braden-Griebel/fastsl/snapshot"
)

// pollInterval is how long an idle worker waits before re-checking the
// frontier while a sibling is still mid-expansion.
const pollInterval = 200 * time.Microsecond

// Finder runs synthetic-lethal-set searches against one Oracle.
//
// A Finder owns the item Universe its Combinations are interned in; decode
// results with Combination.Items against Finder.Universe. A Finder is safe
// to reuse for multiple Run calls, one at a time.
type Finder struct {
	oracle   oracle.Oracle
	opts     options
	universe *model.Universe
}

// New creates a Finder for the given oracle. Configuration is validated
// before any search starts.
func New(o oracle.Oracle, optFns ...Option) (*Finder, error) {
	opts := applyOptions(optFns)

	if opts.maxDepth < 1 {
		return nil, ErrInvalidMaxDepth
	}
	if opts.essentialProportion <= 0 || opts.essentialProportion > 1 {
		return nil, ErrInvalidEssentialProportion
	}
	if opts.workers < 1 {
		return nil, ErrInvalidWorkerCount
	}

	return &Finder{
		oracle:   o,
		opts:     opts,
		universe: model.NewUniverse(),
	}, nil
}

// Find runs one search with a throwaway Finder and returns the lethal
// combinations decoded to their item ids, in no guaranteed order.
// Convenience wrapper around New + Run for callers that do not need the
// Combination representation.
func Find(ctx context.Context, o oracle.Oracle, optFns ...Option) ([][]model.Item, error) {
	f, err := New(o, optFns...)
	if err != nil {
		return nil, err
	}
	combos, err := f.Run(ctx)
	decoded := make([][]model.Item, len(combos))
	for i, c := range combos {
		decoded[i] = c.Items(f.universe)
	}
	return decoded, err
}

// Universe returns the item universe the Finder's Combinations are interned
// in.
func (f *Finder) Universe() *model.Universe {
	return f.universe
}

// Run executes one search and returns every combination certified lethal,
// duplicates from independent expansion paths included and order
// unspecified. Use results.Dedup for the canonical set.
//
// Any oracle failure other than infeasibility aborts all workers and is
// returned as an *OracleError; no partial results are returned in that case.
func (f *Finder) Run(ctx context.Context) ([]model.Combination, error) {
	start := time.Now()

	combos, err := f.run(ctx)

	f.opts.metricsCollector.RecordSearch(time.Since(start), len(combos), err)
	f.opts.logger.LogSearch(ctx, len(combos), err)
	return combos, err
}

func (f *Finder) run(ctx context.Context) ([]model.Combination, error) {
	sr, err := f.prepare(ctx)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < f.opts.workers; i++ {
		g.Go(func() error {
			return f.worker(gctx, sr)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	combos := sr.collector.List()

	if f.opts.snapshotStore != nil {
		if err := f.writeSnapshot(ctx, combos); err != nil {
			// The search itself succeeded; hand the results back along with
			// the persistence error.
			return combos, err
		}
	}
	return combos, nil
}

// search holds the shared state of one Run call.
type search struct {
	cutoff    float64
	queue     *frontier.Queue
	collector *results.Collector
	solveSem  *semaphore.Weighted
	popLog    *rate.Limiter
}

// prepare computes the essential cutoff, seeds the depth-1 frontier, and
// assembles the shared search state.
func (f *Finder) prepare(ctx context.Context) (*search, error) {
	baseline, err := f.oracle.Evaluate(ctx, nil, math.Inf(-1))
	if err != nil {
		return nil, &OracleError{Op: "evaluate", cause: err}
	}
	if baseline.Infeasible() {
		return nil, ErrInfeasibleBaseline
	}
	cutoff := f.opts.essentialProportion * baseline.Objective

	seeds, err := f.oracle.CandidateExpansions(ctx, nil)
	if err != nil {
		return nil, &OracleError{Op: "candidate-expansions", cause: err}
	}
	if len(seeds) == 0 {
		return nil, ErrNoCandidates
	}

	sr := &search{
		cutoff:    cutoff,
		queue:     frontier.New(),
		collector: results.NewCollector(),
	}
	if f.opts.maxConcurrentSolves > 0 {
		sr.solveSem = semaphore.NewWeighted(f.opts.maxConcurrentSolves)
	}
	if f.opts.queueSizeLogEvery > 0 {
		sr.popLog = rate.NewLimiter(rate.Every(f.opts.queueSizeLogEvery), 1)
	}

	// One singleton per distinct seed item.
	seen := make(map[uint32]struct{}, len(seeds))
	for _, item := range seeds {
		idx := f.universe.Intern(item)
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		sr.queue.Push(model.FromIndices(idx))
	}

	f.opts.logger.LogSeed(ctx, len(seen), cutoff)
	return sr, nil
}

// worker drains the frontier until it is quiesced: empty with no sibling
// mid-expansion. Exiting on "empty" alone would race with a sibling about to
// push children and silently drop branches.
func (f *Finder) worker(ctx context.Context, sr *search) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		combo, ok := sr.queue.TryPop()
		if !ok {
			if sr.queue.Quiesced() {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollInterval):
			}
			continue
		}

		queueSize := sr.queue.Len()
		f.opts.metricsCollector.RecordPop(queueSize)
		if sr.popLog != nil && sr.popLog.Allow() {
			f.opts.logger.LogPop(ctx, queueSize)
		}

		err := f.process(ctx, sr, combo)
		sr.queue.Done()
		if err != nil {
			return err
		}
	}
}

// process runs the per-combination algorithm: evaluate, record if lethal,
// otherwise expand by one item with the single-item pre-check as pruning.
func (f *Finder) process(ctx context.Context, sr *search, combo model.Combination) error {
	items := combo.Items(f.universe)

	evalStart := time.Now()
	ev, err := f.evaluate(ctx, items, sr.cutoff, sr.solveSem)
	f.opts.metricsCollector.RecordEvaluate(time.Since(evalStart), ev.Lethal, err)
	if err != nil {
		return &OracleError{Op: "evaluate", Combination: items, cause: err}
	}

	if ev.Lethal {
		// Terminal: every superset would be trivially lethal too.
		sr.collector.Append(combo)
		f.opts.logger.LogLethal(ctx, combo.String(), combo.Len(), false)
		return nil
	}

	// At the depth bound every child would be skipped anyway; don't ask the
	// oracle for expansions.
	if combo.Len() >= f.opts.maxDepth {
		return nil
	}

	candidates, err := f.expand(ctx, items, sr.solveSem)
	if err != nil {
		return &OracleError{Op: "candidate-expansions", Combination: items, cause: err}
	}

	var enqueued, pruned int
	for _, item := range candidates {
		idx := f.universe.Intern(item)
		if combo.Contains(idx) {
			continue
		}
		child := combo.With(idx)
		if child.Len() > f.opts.maxDepth {
			continue
		}

		essential, err := f.singleItemEssential(ctx, items, item, sr.cutoff, sr.solveSem)
		if err != nil {
			return &OracleError{Op: "single-item-essential", Combination: child.Items(f.universe), cause: err}
		}
		if essential {
			// One extra essential item in this background guarantees the
			// child is lethal; record it without another queue round-trip.
			sr.collector.Append(child)
			f.opts.logger.LogLethal(ctx, child.String(), child.Len(), true)
			pruned++
		} else {
			sr.queue.Push(child)
			enqueued++
		}
	}
	f.opts.metricsCollector.RecordExpansion(len(candidates), enqueued, pruned)
	return nil
}

func (f *Finder) evaluate(ctx context.Context, items []model.Item, cutoff float64, sem *semaphore.Weighted) (oracle.Evaluation, error) {
	if sem != nil {
		if err := sem.Acquire(ctx, 1); err != nil {
			return oracle.Evaluation{}, err
		}
		defer sem.Release(1)
	}
	return f.oracle.Evaluate(ctx, items, cutoff)
}

func (f *Finder) expand(ctx context.Context, items []model.Item, sem *semaphore.Weighted) ([]model.Item, error) {
	if sem != nil {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer sem.Release(1)
	}
	return f.oracle.CandidateExpansions(ctx, items)
}

func (f *Finder) singleItemEssential(ctx context.Context, background []model.Item, item model.Item, cutoff float64, sem *semaphore.Weighted) (bool, error) {
	if sem != nil {
		if err := sem.Acquire(ctx, 1); err != nil {
			return false, err
		}
		defer sem.Release(1)
	}
	return f.oracle.IsSingleItemEssential(ctx, background, item, cutoff)
}

func (f *Finder) writeSnapshot(ctx context.Context, combos []model.Combination) error {
	doc := snapshot.FromCombinations(f.universe, combos)
	doc.MaxDepth = f.opts.maxDepth
	doc.EssentialProportion = f.opts.essentialProportion

	err := snapshot.Write(ctx, f.opts.snapshotStore, f.opts.snapshotName, doc,
		snapshot.WithCodec(f.opts.snapshotCodec),
		snapshot.WithCompression(f.opts.snapshotCompression),
	)
	f.opts.logger.LogSnapshot(ctx, f.opts.snapshotName, err)
	return err
}
