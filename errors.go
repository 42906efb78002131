package vecfilter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrNilIndex is returned when the Searcher is built without an index.
	ErrNilIndex = errors.New("index must not be nil")

	// ErrNilAccessor is returned when the Searcher is built without a
	// metadata accessor.
	ErrNilAccessor = errors.New("metadata accessor must not be nil")
)

// FilterError wraps a filter parse failure with the offending text.
//
// The underlying *filter.SyntaxError can be accessed via errors.Unwrap
// or errors.As.
type FilterError struct {
	Text  string
	cause error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid filter %q: %v", e.Text, e.cause)
}

func (e *FilterError) Unwrap() error { return e.cause }
