package strategy

import "fmt"

const (
	// PreFilterThreshold is the selectivity above which a full metadata
	// scan is cheaper than discarding ANN candidates.
	PreFilterThreshold = 0.80

	// PostFilterThreshold is the selectivity below which oversampled
	// post-filtering keeps enough candidates to fill k results.
	PostFilterThreshold = 0.05

	// MaxOversample caps the candidate multiplier for post-filter and
	// hybrid execution.
	MaxOversample = 10.0

	// DefaultOversample is the multiplier used when no selectivity
	// estimate is available.
	DefaultOversample = 3.0

	// EFCap bounds the candidate pool requested from the ANN index,
	// regardless of oversampling.
	EFCap = 1000

	// DefaultSampleSize is the number of records sampled for a
	// selectivity estimate.
	DefaultSampleSize = 100

	// MinSelectivity is the floor for estimates, so oversample factors
	// stay finite even when no sampled record passes.
	MinSelectivity = 0.01

	// hybridMinOversample is the lower multiplier bound chosen for
	// mid-selectivity filters.
	hybridMinOversample = 1.5
)

// Kind names an execution plan for a filtered search.
type Kind uint8

const (
	// KindAuto defers the choice to a selectivity estimate at search time.
	KindAuto Kind = iota
	// KindPreFilter scans all metadata first and restricts the ANN
	// search to the passing set.
	KindPreFilter
	// KindPostFilter searches first with an oversampled candidate pool
	// and filters the candidates in rank order.
	KindPostFilter
	// KindHybrid post-filters with an adaptive multiplier bounded below
	// and above.
	KindHybrid
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindPreFilter:
		return "pre_filter"
	case KindPostFilter:
		return "post_filter"
	case KindHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// Strategy selects and parameterizes an execution plan.
//
// Build values with the constructors; the zero value is Auto.
type Strategy struct {
	Kind Kind

	// Oversample is the candidate multiplier for KindPostFilter.
	Oversample float64

	// MinOversample and MaxOversample bound the adaptive multiplier for
	// KindHybrid.
	MinOversample float64
	MaxOversample float64
}

// Auto returns a strategy that is resolved from a selectivity estimate
// at search time.
func Auto() Strategy { return Strategy{Kind: KindAuto} }

// NewPreFilter returns the metadata-scan-first strategy.
func NewPreFilter() Strategy { return Strategy{Kind: KindPreFilter} }

// NewPostFilter returns the search-first strategy with the given
// candidate multiplier.
func NewPostFilter(oversample float64) Strategy {
	return Strategy{Kind: KindPostFilter, Oversample: oversample}
}

// NewHybrid returns the adaptive strategy with the given multiplier
// bounds.
func NewHybrid(minOversample, maxOversample float64) Strategy {
	return Strategy{Kind: KindHybrid, MinOversample: minOversample, MaxOversample: maxOversample}
}

// ConfigError reports an out-of-range strategy parameter.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid strategy config: %s = %g: %s", e.Field, e.Value, e.Reason)
}

// Validate checks the strategy's parameters against their legal ranges.
// Auto and PreFilter carry no parameters and always validate.
func (s Strategy) Validate() error {
	switch s.Kind {
	case KindAuto, KindPreFilter:
		return nil
	case KindPostFilter:
		if s.Oversample < 1 || s.Oversample > MaxOversample {
			return &ConfigError{
				Field:  "Oversample",
				Value:  s.Oversample,
				Reason: fmt.Sprintf("must be in [1, %g]", float64(MaxOversample)),
			}
		}
		return nil
	case KindHybrid:
		if s.MinOversample < 1 {
			return &ConfigError{
				Field:  "MinOversample",
				Value:  s.MinOversample,
				Reason: "must be at least 1",
			}
		}
		if s.MaxOversample > MaxOversample {
			return &ConfigError{
				Field:  "MaxOversample",
				Value:  s.MaxOversample,
				Reason: fmt.Sprintf("must be at most %g", float64(MaxOversample)),
			}
		}
		if s.MinOversample > s.MaxOversample {
			return &ConfigError{
				Field:  "MinOversample",
				Value:  s.MinOversample,
				Reason: "must not exceed MaxOversample",
			}
		}
		return nil
	default:
		return &ConfigError{Field: "Kind", Value: float64(s.Kind), Reason: "unknown strategy kind"}
	}
}

// Select maps an estimated selectivity to a concrete strategy.
//
// Broad filters (most records pass) pre-filter: the scan is cheap and
// the restricted search loses little recall. Narrow filters post-filter
// with a large multiplier. Everything in between runs hybrid.
func Select(selectivity float64) Strategy {
	switch {
	case selectivity > PreFilterThreshold:
		return NewPreFilter()
	case selectivity < PostFilterThreshold:
		return NewPostFilter(OversampleFor(selectivity))
	default:
		// For broad-ish filters 1/s dips below the hybrid floor; clamp
		// the upper bound so the pair stays ordered and valid.
		return NewHybrid(hybridMinOversample, max(hybridMinOversample, OversampleFor(selectivity)))
	}
}

// OversampleFor returns the candidate multiplier for a selectivity:
// 1/s, clamped to [1, MaxOversample]. Non-positive selectivity yields
// the cap.
func OversampleFor(selectivity float64) float64 {
	if selectivity <= 0 {
		return MaxOversample
	}
	o := 1 / selectivity
	if o > MaxOversample {
		return MaxOversample
	}
	if o < 1 {
		return 1
	}
	return o
}
