// Package vecfilter is a metadata filter query engine for embedded
// vector search.
//
// It parses SQL-like filter expressions ("category = \"gpu\" AND
// price < 500"), estimates how selective they are, and orchestrates
// filtered k-nearest-neighbor searches against any ANN index that
// implements the small index.Index interface. Depending on estimated
// selectivity a search either scans metadata first and restricts the
// ANN search (pre-filter), searches first and filters oversampled
// candidates (post-filter), or takes a middle path (hybrid).
//
// Basic usage:
//
//	idx, _ := flat.New(func(o *flat.Options) { o.Dimension = 128 })
//	meta := metadata.NewMapStore()
//	// ... insert vectors and documents under matching ids ...
//
//	s, _ := vecfilter.New(idx, meta)
//	res, err := s.Search(ctx, query, 10,
//	    vecfilter.WithFilterText(`category = "gpu" AND price < 500`))
//
// The engine never mutates the index or the store; both are consumed
// through read-only interfaces and may be shared with writers that
// synchronize internally.
package vecfilter
