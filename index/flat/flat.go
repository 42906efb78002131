// Package flat provides a brute-force exact index for vector search.
//
// It exists so filtered search is usable and testable without an
// external ANN library. Every query scans all vectors; exactness makes
// it the reference implementation for recall comparisons.
package flat

import (
	"container/heap"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/vecfilter/index"
	"github.com/hupe1980/vecfilter/metric"
)

// ErrInvalidDimension indicates a non-positive dimension option.
var ErrInvalidDimension = errors.New("flat: dimension must be positive")

// Compile-time check that Flat satisfies the index contract.
var _ index.Index = (*Flat)(nil)

// Options contains configuration options for the flat index.
type Options struct {
	// Dimension is the fixed vector dimensionality for this index.
	// It must be > 0 and is enforced for all inserts and searches.
	Dimension int

	// Metric selects the distance function.
	Metric metric.Type
}

// DefaultOptions contains the default configuration options for the
// flat index.
var DefaultOptions = Options{
	Metric: metric.TypeSquaredL2,
}

// Flat is a brute-force exact index. Inserted ids are dense and
// sequential, matching the id space of the metadata store.
type Flat struct {
	mu       sync.RWMutex
	vectors  [][]float32
	distance metric.Func
	opts     Options
}

// New creates a new flat index. Dimension must be set.
func New(optFns ...func(o *Options)) (*Flat, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Dimension <= 0 {
		return nil, ErrInvalidDimension
	}
	distance := metric.New(opts.Metric)
	if distance == nil {
		return nil, fmt.Errorf("flat: unknown metric type %d", opts.Metric)
	}

	return &Flat{
		distance: distance,
		opts:     opts,
	}, nil
}

// Insert adds a vector and returns its id. The vector is copied.
func (f *Flat) Insert(v []float32) (uint32, error) {
	if len(v) != f.opts.Dimension {
		return 0, &index.DimensionMismatchError{Expected: f.opts.Dimension, Actual: len(v)}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id := uint32(len(f.vectors))
	f.vectors = append(f.vectors, append([]float32(nil), v...))
	return id, nil
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.vectors)
}

// Search returns up to ef nearest neighbors, closest first.
func (f *Flat) Search(query []float32, ef int) ([]index.SearchResult, error) {
	return f.search(query, ef, nil)
}

// SearchRestricted returns up to k nearest neighbors drawn only from
// the allowed set, closest first.
func (f *Flat) SearchRestricted(query []float32, k int, allowed *index.IDSet) ([]index.SearchResult, error) {
	if allowed == nil || allowed.IsEmpty() {
		return nil, nil
	}
	return f.search(query, k, allowed)
}

func (f *Flat) search(query []float32, k int, allowed *index.IDSet) ([]index.SearchResult, error) {
	if len(query) == 0 {
		return nil, index.ErrEmptyQuery
	}
	if len(query) != f.opts.Dimension {
		return nil, &index.DimensionMismatchError{Expected: f.opts.Dimension, Actual: len(query)}
	}
	if k <= 0 {
		return nil, nil
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	// Max-heap of the k best so far; the root is the current worst and
	// is evicted when a closer vector appears.
	h := make(worstFirstHeap, 0, k)
	for id, v := range f.vectors {
		if allowed != nil && !allowed.Contains(uint32(id)) {
			continue
		}
		d, err := f.distance(query, v)
		if err != nil {
			return nil, err
		}
		if len(h) < k {
			heap.Push(&h, index.SearchResult{ID: uint32(id), Distance: d})
		} else if d < h[0].Distance {
			h[0] = index.SearchResult{ID: uint32(id), Distance: d}
			heap.Fix(&h, 0)
		}
	}

	results := make([]index.SearchResult, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		results[i] = heap.Pop(&h).(index.SearchResult)
	}
	return results, nil
}

type worstFirstHeap []index.SearchResult

func (h worstFirstHeap) Len() int           { return len(h) }
func (h worstFirstHeap) Less(i, j int) bool { return h[i].Distance > h[j].Distance }
func (h worstFirstHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *worstFirstHeap) Push(x any)        { *h = append(*h, x.(index.SearchResult)) }
func (h *worstFirstHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
