package vecfilter

import (
	"github.com/hupe1980/vecfilter/filter"
	"github.com/hupe1980/vecfilter/strategy"
)

type options struct {
	logger          *Logger
	metrics         MetricsCollector
	efCap           int
	sampleSize      int
	seed            *uint64
	scanConcurrency int
	parseOptions    filter.ParseOptions
}

// Option configures a Searcher.
type Option func(*options)

// WithLogger configures structured logging. The default logger
// discards all output.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. The default collector discards all metrics.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metrics = mc
		}
	}
}

// WithEFCap overrides the upper bound on the candidate pool requested
// from the ANN index during post-filter and hybrid execution. This is
// the latency ceiling knob: lower values bound per-query work, higher
// values improve the chance of filling k results for narrow filters.
// Defaults to strategy.EFCap.
func WithEFCap(cap int) Option {
	return func(o *options) {
		if cap > 0 {
			o.efCap = cap
		}
	}
}

// WithSampleSize overrides the number of records sampled per
// selectivity estimate. Defaults to strategy.DefaultSampleSize.
func WithSampleSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sampleSize = n
		}
	}
}

// WithSeed makes selectivity estimates deterministic. Mainly useful in
// tests and benchmarks.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithScanConcurrency bounds the number of goroutines used for the
// pre-filter metadata scan. Defaults to the number of CPUs.
func WithScanConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.scanConcurrency = n
		}
	}
}

// WithParseOptions overrides the limits applied when parsing filter
// text passed via WithFilterText.
func WithParseOptions(po filter.ParseOptions) Option {
	return func(o *options) {
		o.parseOptions = po
	}
}

func defaultOptions() options {
	return options{
		logger:     NoopLogger(),
		metrics:    NoopMetricsCollector{},
		efCap:      strategy.EFCap,
		sampleSize: strategy.DefaultSampleSize,
	}
}
