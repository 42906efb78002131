package vecfilter

import (
	"context"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecfilter/filter"
	"github.com/hupe1980/vecfilter/index"
	"github.com/hupe1980/vecfilter/metadata"
	"github.com/hupe1980/vecfilter/strategy"
)

// Searcher orchestrates filtered k-nearest-neighbor searches over an
// ANN index and its metadata store.
//
// A Searcher is immutable after construction and safe for concurrent
// use, provided the index and accessor are.
type Searcher struct {
	idx  index.Index
	meta metadata.Accessor
	opts options
}

// New creates a Searcher over the given index and metadata store. The
// two must share an id space: vector id i in the index is described by
// document i in the store.
func New(idx index.Index, meta metadata.Accessor, optFns ...Option) (*Searcher, error) {
	if idx == nil {
		return nil, ErrNilIndex
	}
	if meta == nil {
		return nil, ErrNilAccessor
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Searcher{idx: idx, meta: meta, opts: opts}, nil
}

// Result is the outcome of a filtered search.
type Result struct {
	// Results are the nearest passing neighbors, closest first. May be
	// shorter than k.
	Results []index.SearchResult

	// Complete reports whether Results is known to contain every
	// passing neighbor the caller asked for: either k results were
	// found, or the matching set was exhausted.
	Complete bool

	// ObservedSelectivity is the pass fraction actually seen during
	// execution (1.0 when nothing was evaluated).
	ObservedSelectivity float64

	// Strategy is the execution strategy that ran. An Auto strategy is
	// resolved to a concrete kind before executing; searches that short
	// circuit before any filter work (tautology, contradiction, empty
	// store) report the strategy as requested.
	Strategy strategy.Strategy

	// VectorsEvaluated is the number of filter evaluations performed.
	VectorsEvaluated int
}

// Search runs a k-nearest-neighbor query, optionally constrained by a
// metadata filter.
//
// Without a filter it is a plain ANN search. With one, the execution
// strategy is validated, trivially-true and trivially-false filters
// are short-circuited, and an Auto strategy is resolved from a
// selectivity estimate before the chosen plan runs.
func (s *Searcher) Search(ctx context.Context, query []float32, k int, optFns ...SearchOption) (*Result, error) {
	start := time.Now()
	log := s.opts.logger.WithK(k)

	res, kind, err := s.search(ctx, log, query, k, optFns...)
	s.opts.metrics.RecordSearch(k, kind, time.Since(start), err)
	if err != nil {
		log.LogSearch(ctx, 0, 0, err)
		return nil, err
	}
	log.LogSearch(ctx, len(res.Results), res.VectorsEvaluated, nil)
	return res, nil
}

func (s *Searcher) search(ctx context.Context, log *Logger, query []float32, k int, optFns ...SearchOption) (*Result, strategy.Kind, error) {
	so := searchOptions{strategy: strategy.Auto()}
	for _, fn := range optFns {
		fn(&so)
	}
	strat := so.strategy

	if k <= 0 {
		return nil, strat.Kind, ErrInvalidK
	}
	if err := strat.Validate(); err != nil {
		return nil, strat.Kind, err
	}

	expr := so.expr
	if so.hasText {
		parseStart := time.Now()
		parsed, err := filter.ParseWithOptions(so.filterText, s.opts.parseOptions)
		s.opts.metrics.RecordParse(time.Since(parseStart), err)
		if err != nil {
			return nil, strat.Kind, &FilterError{Text: so.filterText, cause: err}
		}
		expr = parsed
	}

	if expr == nil || strategy.IsTautology(expr) {
		if expr != nil {
			log.LogShortCircuit(ctx, "filter is a tautology")
		}
		res, err := s.unfiltered(query, k, strat)
		return res, strat.Kind, err
	}

	if strategy.IsContradiction(expr) {
		log.LogShortCircuit(ctx, "filter is a contradiction")
		return &Result{
			Complete: true,
			Strategy: strat,
		}, strat.Kind, nil
	}

	if s.meta.Count() == 0 {
		log.LogShortCircuit(ctx, "empty store")
		return &Result{
			Complete: true,
			Strategy: strat,
		}, strat.Kind, nil
	}

	if strat.Kind == strategy.KindAuto {
		estStart := time.Now()
		estOpts := []strategy.EstimateOption{strategy.WithSampleSize(s.opts.sampleSize)}
		if s.opts.seed != nil {
			estOpts = append(estOpts, strategy.WithSeed(*s.opts.seed))
		}
		est := strategy.Estimate(expr, s.meta, estOpts...)
		s.opts.metrics.RecordEstimate(est.SampleSize, time.Since(estStart))

		strat = strategy.Select(est.Selectivity)
		log.LogStrategy(ctx, strat, est.Selectivity)
	}

	var (
		res *Result
		err error
	)
	switch strat.Kind {
	case strategy.KindPreFilter:
		res, err = s.preFilter(ctx, query, k, expr, strat)
	case strategy.KindPostFilter:
		res, err = s.postFilter(query, k, expr, strat, strat.Oversample)
	case strategy.KindHybrid:
		res, err = s.hybrid(query, k, expr, strat)
	default:
		res, err = s.preFilter(ctx, query, k, expr, strat)
	}
	return res, strat.Kind, err
}

// unfiltered runs a plain ANN search.
func (s *Searcher) unfiltered(query []float32, k int, strat strategy.Strategy) (*Result, error) {
	results, err := s.idx.Search(query, k)
	if err != nil {
		return nil, err
	}
	if len(results) > k {
		results = results[:k]
	}
	return &Result{
		Results:             results,
		Complete:            len(results) >= k || s.meta.Count() == 0,
		ObservedSelectivity: 1.0,
		Strategy:            strat,
	}, nil
}

// preFilter scans all metadata, builds the passing id set, and runs a
// search restricted to it.
func (s *Searcher) preFilter(ctx context.Context, query []float32, k int, expr *filter.Expr, strat strategy.Strategy) (*Result, error) {
	allowed, evaluated, err := s.scan(ctx, expr)
	if err != nil {
		return nil, err
	}

	observed := selectivityOf(allowed.Len(), evaluated)
	if allowed.IsEmpty() {
		return &Result{
			Complete:            true,
			ObservedSelectivity: observed,
			Strategy:            strat,
			VectorsEvaluated:    evaluated,
		}, nil
	}

	results, err := s.idx.SearchRestricted(query, k, allowed)
	if err != nil {
		return nil, err
	}
	return &Result{
		Results:             results,
		Complete:            len(results) >= k || len(results) >= allowed.Len(),
		ObservedSelectivity: observed,
		Strategy:            strat,
		VectorsEvaluated:    evaluated,
	}, nil
}

// scan evaluates the filter against every record, in parallel chunks,
// and returns the set of passing ids.
func (s *Searcher) scan(ctx context.Context, expr *filter.Expr) (*index.IDSet, int, error) {
	count := s.meta.Count()

	workers := s.opts.scanConcurrency
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > count {
		workers = count
	}
	chunk := (count + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	sets := make([]*index.IDSet, workers)
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, count)
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			set := index.NewIDSet()
			for id := lo; id < hi; id++ {
				if id%4096 == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				doc, _ := s.meta.Get(uint32(id))
				if filter.Evaluate(expr, doc) {
					set.Add(uint32(id))
				}
			}
			sets[w] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	merged := index.NewIDSet()
	for _, set := range sets {
		if set != nil {
			merged.Or(set)
		}
	}
	return merged, count, nil
}

// postFilter oversamples an unrestricted search and keeps the first k
// candidates that pass the filter, preserving rank order.
func (s *Searcher) postFilter(query []float32, k int, expr *filter.Expr, strat strategy.Strategy, oversample float64) (*Result, error) {
	ef := s.effectiveEF(k, oversample)
	candidates, err := s.idx.Search(query, ef)
	if err != nil {
		return nil, err
	}

	kept := make([]index.SearchResult, 0, k)
	evaluated := 0
	for _, c := range candidates {
		evaluated++
		doc, _ := s.meta.Get(c.ID)
		if filter.Evaluate(expr, doc) {
			kept = append(kept, c)
			if len(kept) == k {
				break
			}
		}
	}

	// The candidate pool undershooting ef means the index itself was
	// exhausted, so no passing vector was missed.
	exhausted := len(candidates) < ef
	return &Result{
		Results:             kept,
		Complete:            len(kept) >= k || exhausted,
		ObservedSelectivity: selectivityOf(len(kept), evaluated),
		Strategy:            strat,
		VectorsEvaluated:    evaluated,
	}, nil
}

// hybrid post-filters with the lower multiplier first and widens to
// the upper multiplier only if the first pass comes up short.
func (s *Searcher) hybrid(query []float32, k int, expr *filter.Expr, strat strategy.Strategy) (*Result, error) {
	first, err := s.postFilter(query, k, expr, strat, strat.MinOversample)
	if err != nil {
		return nil, err
	}
	if first.Complete || strat.MaxOversample <= strat.MinOversample {
		return first, nil
	}
	if s.effectiveEF(k, strat.MaxOversample) <= s.effectiveEF(k, strat.MinOversample) {
		return first, nil
	}

	second, err := s.postFilter(query, k, expr, strat, strat.MaxOversample)
	if err != nil {
		return nil, err
	}
	second.VectorsEvaluated += first.VectorsEvaluated
	return second, nil
}

// effectiveEF computes the candidate pool size: ceil(k * oversample),
// at least k, at most the configured cap (unless k itself exceeds it).
func (s *Searcher) effectiveEF(k int, oversample float64) int {
	ef := int(math.Ceil(float64(k) * oversample))
	if ef > s.opts.efCap {
		ef = s.opts.efCap
	}
	if ef < k {
		ef = k
	}
	return ef
}

func selectivityOf(passed, evaluated int) float64 {
	if evaluated == 0 {
		return 1.0
	}
	return float64(passed) / float64(evaluated)
}
