// Package table is the shared core behind every list screen in the
// dashboard: filter/sort/page state, its canonical query-string
// encoding, pagination math, column rendering, and the two fetch
// styles (one backend page per request, or fetch-all plus in-memory
// filtering).
//
// Screens differ only in their Spec (which filters and sort columns
// exist), their column definitions, and the endpoint they read from.
// Everything else in this package is screen-agnostic.
package table

// DefaultPageSizes are the row-per-page choices offered by every
// list screen unless its Spec overrides them. The first entry is the
// default.
var DefaultPageSizes = []int{10, 20, 30, 40, 50}
