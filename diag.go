package vecfilter

import (
	"github.com/hupe1980/vecfilter/filter"
	"github.com/hupe1980/vecfilter/strategy"
)

// Parse parses filter text with default limits. It is a convenience
// re-export for callers that build expressions ahead of time and reuse
// them across searches.
func Parse(text string) (*filter.Expr, error) {
	return filter.Parse(text)
}

// Validation is the outcome of checking filter text without running it.
type Validation struct {
	// Valid reports whether the text parses.
	Valid bool `json:"valid"`

	// Errors holds parse error messages. Empty when Valid.
	Errors []string `json:"errors,omitempty"`

	// Warnings flags filters that parse but are degenerate, such as
	// tautologies and contradictions.
	Warnings []string `json:"warnings,omitempty"`

	// Stats summarizes the parsed expression. Zero when not Valid.
	Stats filter.ExprStats `json:"stats"`
}

// Validate checks filter text for syntax errors and degenerate
// semantics without touching an index or store. Intended for editor
// and API surfaces that validate user input before running it.
func Validate(text string) *Validation {
	expr, err := filter.Parse(text)
	if err != nil {
		return &Validation{
			Errors: []string{err.Error()},
		}
	}

	v := &Validation{
		Valid: true,
		Stats: filter.Stats(expr),
	}
	if strategy.IsTautology(expr) {
		v.Warnings = append(v.Warnings, "filter always matches; it will be ignored")
	} else if strategy.IsContradiction(expr) {
		v.Warnings = append(v.Warnings, "filter can never match; searches will return no results")
	}
	return v
}
