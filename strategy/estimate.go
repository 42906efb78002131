package strategy

import (
	"math/rand/v2"

	"github.com/hupe1980/vecfilter/filter"
	"github.com/hupe1980/vecfilter/metadata"
)

// SelectivityEstimate is the result of sampling a filter against a
// metadata store.
type SelectivityEstimate struct {
	// Selectivity is the estimated pass fraction, clamped to
	// [MinSelectivity, 1.0]. Zero only for an empty store.
	Selectivity float64

	// SampleSize is the number of records evaluated.
	SampleSize int

	// Passed is the number of sampled records that matched the filter.
	Passed int
}

type estimateOptions struct {
	sampleSize int
	rng        *rand.Rand
}

// EstimateOption configures a selectivity estimate.
type EstimateOption func(*estimateOptions)

// WithSampleSize overrides the number of records sampled.
func WithSampleSize(n int) EstimateOption {
	return func(o *estimateOptions) {
		if n > 0 {
			o.sampleSize = n
		}
	}
}

// WithRand supplies the randomness source, making estimates
// reproducible. Defaults to a fresh PCG source.
func WithRand(rng *rand.Rand) EstimateOption {
	return func(o *estimateOptions) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithSeed is shorthand for WithRand with a seeded PCG source.
func WithSeed(seed uint64) EstimateOption {
	return WithRand(rand.New(rand.NewPCG(seed, 0)))
}

// Estimate samples the store uniformly without replacement and reports
// the fraction of sampled records that pass the filter.
//
// The sample is min(sampleSize, store count) ids drawn from the dense
// id space [0, count). Records the store reports as absent evaluate
// against a nil document, so filters over missing metadata behave the
// same here as during the real scan. An empty store yields Selectivity
// 0 with SampleSize 0.
func Estimate(e *filter.Expr, acc metadata.Accessor, opts ...EstimateOption) SelectivityEstimate {
	o := estimateOptions{sampleSize: DefaultSampleSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	count := acc.Count()
	if count <= 0 {
		return SelectivityEstimate{}
	}

	n := min(o.sampleSize, count)
	passed := 0
	for _, id := range sampleIDs(o.rng, count, n) {
		doc, _ := acc.Get(id)
		if filter.Evaluate(e, doc) {
			passed++
		}
	}

	s := float64(passed) / float64(n)
	if s < MinSelectivity {
		s = MinSelectivity
	}
	if s > 1 {
		s = 1
	}
	return SelectivityEstimate{Selectivity: s, SampleSize: n, Passed: passed}
}

// sampleIDs draws n distinct ids uniformly from [0, count) using a
// partial Fisher-Yates shuffle over a sparse view of the id space, so
// the cost is O(n) regardless of count.
func sampleIDs(rng *rand.Rand, count, n int) []uint32 {
	swapped := make(map[int]int, n)
	ids := make([]uint32, n)
	for i := range n {
		j := i + rng.IntN(count-i)

		vi, ok := swapped[i]
		if !ok {
			vi = i
		}
		vj, ok := swapped[j]
		if !ok {
			vj = j
		}

		ids[i] = uint32(vj)
		swapped[j] = vi
	}
	return ids
}
