// Package strategy decides how a filtered vector search executes.
//
// A filter's selectivity (the fraction of vectors that pass it) drives
// the choice between three execution plans: scanning metadata first and
// searching only the passing set (pre-filter), searching first and
// filtering the oversampled candidates (post-filter), or a middle
// ground (hybrid). Selectivity is estimated cheaply by evaluating the
// filter against a small uniform sample of the store.
//
// The package also detects trivially-true and trivially-false filters
// so the orchestrator can skip filtering work entirely.
package strategy
