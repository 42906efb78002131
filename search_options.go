package vecfilter

import (
	"github.com/hupe1980/vecfilter/filter"
	"github.com/hupe1980/vecfilter/strategy"
)

type searchOptions struct {
	expr       *filter.Expr
	filterText string
	hasText    bool
	strategy   strategy.Strategy
}

// SearchOption configures a single Search call.
type SearchOption func(*searchOptions)

// WithFilter applies a pre-built filter expression to the search.
// The tree is not copied; it must not be mutated while the search runs.
func WithFilter(e *filter.Expr) SearchOption {
	return func(o *searchOptions) {
		o.expr = e
	}
}

// WithFilterText parses and applies a filter expression. Parse
// failures surface from Search as a *FilterError. Takes precedence
// over WithFilter when both are given.
func WithFilterText(text string) SearchOption {
	return func(o *searchOptions) {
		o.filterText = text
		o.hasText = true
	}
}

// WithStrategy forces an execution strategy instead of the default
// selectivity-driven choice.
func WithStrategy(s strategy.Strategy) SearchOption {
	return func(o *searchOptions) {
		o.strategy = s
	}
}
