package fastsl

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordPop is called whenever a worker takes a combination from the
	// frontier queue. queueSize is the approximate remaining queue length.
	RecordPop(queueSize int)

	// RecordEvaluate is called after each oracle evaluation.
	// duration is the time taken, lethal the verdict, err is nil on success.
	RecordEvaluate(duration time.Duration, lethal bool, err error)

	// RecordExpansion is called after a non-lethal combination is expanded.
	// candidates is the number of potentially active items reported,
	// enqueued the number of children pushed, pruned the number recorded
	// directly via the single-item pre-check.
	RecordExpansion(candidates, enqueued, pruned int)

	// RecordSearch is called once after each search run.
	// results is the number of lethal combinations recorded (duplicates
	// included), err is nil if successful.
	RecordSearch(duration time.Duration, results int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPop(int)                             {}
func (NoopMetricsCollector) RecordEvaluate(time.Duration, bool, error) {}
func (NoopMetricsCollector) RecordExpansion(int, int, int)             {}
func (NoopMetricsCollector) RecordSearch(time.Duration, int, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PopCount            atomic.Int64
	EvaluateCount       atomic.Int64
	EvaluateErrors      atomic.Int64
	EvaluateTotalNanos  atomic.Int64
	LethalCount         atomic.Int64
	ExpansionCandidates atomic.Int64
	ExpansionEnqueued   atomic.Int64
	ExpansionPruned     atomic.Int64
	SearchCount         atomic.Int64
	SearchErrors        atomic.Int64
}

func (m *BasicMetricsCollector) RecordPop(int) {
	m.PopCount.Add(1)
}

func (m *BasicMetricsCollector) RecordEvaluate(duration time.Duration, lethal bool, err error) {
	m.EvaluateCount.Add(1)
	m.EvaluateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		m.EvaluateErrors.Add(1)
	}
	if lethal {
		m.LethalCount.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordExpansion(candidates, enqueued, pruned int) {
	m.ExpansionCandidates.Add(int64(candidates))
	m.ExpansionEnqueued.Add(int64(enqueued))
	m.ExpansionPruned.Add(int64(pruned))
}

func (m *BasicMetricsCollector) RecordSearch(_ time.Duration, _ int, err error) {
	m.SearchCount.Add(1)
	if err != nil {
		m.SearchErrors.Add(1)
	}
}

// MetricsStats is a point-in-time view of a BasicMetricsCollector.
type MetricsStats struct {
	PopCount            int64
	EvaluateCount       int64
	EvaluateErrors      int64
	EvaluateAvgNanos    int64
	LethalCount         int64
	ExpansionCandidates int64
	ExpansionEnqueued   int64
	ExpansionPruned     int64
	SearchCount         int64
	SearchErrors        int64
}

// GetStats returns current metric values.
func (m *BasicMetricsCollector) GetStats() MetricsStats {
	stats := MetricsStats{
		PopCount:            m.PopCount.Load(),
		EvaluateCount:       m.EvaluateCount.Load(),
		EvaluateErrors:      m.EvaluateErrors.Load(),
		LethalCount:         m.LethalCount.Load(),
		ExpansionCandidates: m.ExpansionCandidates.Load(),
		ExpansionEnqueued:   m.ExpansionEnqueued.Load(),
		ExpansionPruned:     m.ExpansionPruned.Load(),
		SearchCount:         m.SearchCount.Load(),
		SearchErrors:        m.SearchErrors.Load(),
	}
	if stats.EvaluateCount > 0 {
		stats.EvaluateAvgNanos = m.EvaluateTotalNanos.Load() / stats.EvaluateCount
	}
	return stats
}
