// internal/app/system/table/clientside.go
package table

import (
	"sort"
	"strings"
)

// Engine applies a Query to an in-memory RowSet. Screens that fetch
// the whole result set once (courses, cohorts, blogs, leads, change
// requests) use an Engine; screens whose backend endpoint paginates
// (users, payments) never need one.
type Engine[T any] struct {
	// Field resolves filterable fields by name.
	Field FieldFn[T]
	// SearchFields are the fields a text filter matches against,
	// case-insensitive substring.
	SearchFields []string
	// Less orders rows by a sort column, ascending. Descending is
	// handled by the engine. Nil disables sorting.
	Less func(a, b T, column string) bool
}

// Apply filters, sorts, and slices rows according to q, mutating q's
// pagination to the recomputed total (which clamps the page). The
// returned slice is the visible page.
//
// Filter semantics match the filter kinds exactly: text is
// case-insensitive substring over SearchFields; select is exact
// match; multi-select is set membership, and an empty set was never
// stored so it cannot exclude anything.
func (e Engine[T]) Apply(rows []T, q *Query) []T {
	filtered := rows
	if q.HasFilters() {
		filtered = make([]T, 0, len(rows))
		for _, row := range rows {
			if e.matches(row, q) {
				filtered = append(filtered, row)
			}
		}
	}

	if s := q.Sort(); s.Column != "" && e.Less != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			if s.Desc {
				return e.Less(filtered[j], filtered[i], s.Column)
			}
			return e.Less(filtered[i], filtered[j], s.Column)
		})
	}

	q.SetTotal(len(filtered))

	rng := q.Page().Range()
	if rng.Start == 0 {
		return nil
	}
	return filtered[rng.Start-1 : rng.End]
}

// Filtered filters and sorts rows according to q without slicing a
// page and without touching q's pagination. Exports use it to write
// the whole filtered set.
func (e Engine[T]) Filtered(rows []T, q *Query) []T {
	filtered := rows
	if q.HasFilters() {
		filtered = make([]T, 0, len(rows))
		for _, row := range rows {
			if e.matches(row, q) {
				filtered = append(filtered, row)
			}
		}
	}
	if s := q.Sort(); s.Column != "" && e.Less != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			if s.Desc {
				return e.Less(filtered[j], filtered[i], s.Column)
			}
			return e.Less(filtered[i], filtered[j], s.Column)
		})
	}
	return filtered
}

func (e Engine[T]) matches(row T, q *Query) bool {
	for _, fs := range q.spec.Filters {
		val, ok := q.Filter(fs.Name)
		if !ok || val.Empty() {
			continue
		}
		switch v := val.(type) {
		case Text:
			if !e.searchMatch(row, string(v)) {
				return false
			}
		case Select:
			if e.Field == nil || e.Field(row, fs.Name) != string(v) {
				return false
			}
		case MultiSelect:
			if e.Field == nil || !v.Has(e.Field(row, fs.Name)) {
				return false
			}
		}
	}
	return true
}

func (e Engine[T]) searchMatch(row T, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" || e.Field == nil {
		return true
	}
	for _, f := range e.SearchFields {
		if strings.Contains(strings.ToLower(e.Field(row, f)), needle) {
			return true
		}
	}
	return false
}
