// Package metadata defines the typed key/value model attached to vectors
// and the accessor interface the filter engine reads it through.
//
// Values are a small closed union (null, int64, float64, string, bool,
// array) designed so filter evaluation needs no reflection and no
// fmt-based stringification. Documents are plain maps and are read-only
// from the engine's perspective.
package metadata
