package vecfilter

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/vecfilter/strategy"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordParse is called after each filter text parse.
	// duration is the time taken, err is nil if the text parsed.
	RecordParse(duration time.Duration, err error)

	// RecordEstimate is called after each selectivity estimate.
	// sampleSize is the number of records evaluated.
	RecordEstimate(sampleSize int, duration time.Duration)

	// RecordSearch is called after each search operation.
	// k is the number of neighbors requested, kind is the resolved
	// execution strategy, err is nil if successful.
	RecordSearch(k int, kind strategy.Kind, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordParse(time.Duration, error)                      {}
func (NoopMetricsCollector) RecordEstimate(int, time.Duration)                     {}
func (NoopMetricsCollector) RecordSearch(int, strategy.Kind, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ParseCount       atomic.Int64
	ParseErrors      atomic.Int64
	EstimateCount    atomic.Int64
	EstimateSamples  atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	PreFilterCount   atomic.Int64
	PostFilterCount  atomic.Int64
	HybridCount      atomic.Int64
}

// RecordParse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordParse(duration time.Duration, err error) {
	b.ParseCount.Add(1)
	if err != nil {
		b.ParseErrors.Add(1)
	}
}

// RecordEstimate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEstimate(sampleSize int, duration time.Duration) {
	b.EstimateCount.Add(1)
	b.EstimateSamples.Add(int64(sampleSize))
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(k int, kind strategy.Kind, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
	switch kind {
	case strategy.KindPreFilter:
		b.PreFilterCount.Add(1)
	case strategy.KindPostFilter:
		b.PostFilterCount.Add(1)
	case strategy.KindHybrid:
		b.HybridCount.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ParseCount:      b.ParseCount.Load(),
		ParseErrors:     b.ParseErrors.Load(),
		EstimateCount:   b.EstimateCount.Load(),
		EstimateSamples: b.EstimateSamples.Load(),
		SearchCount:     b.SearchCount.Load(),
		SearchErrors:    b.SearchErrors.Load(),
		SearchAvgNanos:  b.getAvgSearchNanos(),
		PreFilterCount:  b.PreFilterCount.Load(),
		PostFilterCount: b.PostFilterCount.Load(),
		HybridCount:     b.HybridCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ParseCount      int64
	ParseErrors     int64
	EstimateCount   int64
	EstimateSamples int64
	SearchCount     int64
	SearchErrors    int64
	SearchAvgNanos  int64
	PreFilterCount  int64
	PostFilterCount int64
	HybridCount     int64
}
