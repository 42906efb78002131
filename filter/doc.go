// Package filter implements the metadata filter expression language:
// a SQL-like grammar ("category = \"gpu\" AND price < 500"), the
// immutable expression tree it parses into, and a total evaluator that
// tests a single metadata document against a tree.
//
// Parsing is strict and fails fast with positioned errors. Evaluation is
// deliberately lenient: it is a total function from (expression,
// document) to bool. Missing fields, nulls, and type mismatches resolve
// to false instead of raising, so one malformed document can never abort
// a scan over many.
//
// Expression trees are immutable once built and safe to share across
// concurrent searches without synchronization.
package filter
