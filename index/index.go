// Package index defines the contract between the filter engine and the
// ANN index it orchestrates.
package index

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery indicates a zero-length query vector.
var ErrEmptyQuery = errors.New("index: empty query vector")

// DimensionMismatchError reports a query whose dimensionality does not
// match the indexed vectors.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

// Error returns the error message for dimension mismatch.
func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// SearchResult is one nearest-neighbor hit.
type SearchResult struct {
	// ID is the identifier of the search result.
	ID uint32

	// Distance is the distance between the query vector and the result
	// vector. Smaller is closer.
	Distance float32
}

// Index is the ANN collaborator consumed by the filtered-search
// orchestrator. Ids are dense uint32 positions shared with the
// metadata store.
type Index interface {
	// Search returns up to ef nearest neighbors of the query, closest
	// first.
	Search(query []float32, ef int) ([]SearchResult, error)

	// SearchRestricted returns up to k nearest neighbors drawn only
	// from the allowed id set, closest first.
	SearchRestricted(query []float32, k int, allowed *IDSet) ([]SearchResult, error)
}
