// internal/app/system/table/columns.go
package table

import "sort"

// Column describes one table column for rows of type T. When Cell is
// nil the column renders the raw field named by Key via the engine's
// Field function; otherwise Cell's return value is used verbatim
// (formatted dates, badges, values reached through nested structs).
type Column[T any] struct {
	Key    string
	Header string
	Cell   func(T) string
}

// FieldFn resolves a named field of a row to its string form. Each
// screen supplies one; it is also how the client-side engine reads
// filterable fields.
type FieldFn[T any] func(row T, field string) string

// Headers returns the column headers in order.
func Headers[T any](cols []Column[T]) []string {
	hs := make([]string, len(cols))
	for i, c := range cols {
		hs[i] = c.Header
	}
	return hs
}

// RenderRows maps rows through the column spec into display cells.
func RenderRows[T any](rows []T, cols []Column[T], field FieldFn[T]) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(cols))
		for j, c := range cols {
			if c.Cell != nil {
				cells[j] = c.Cell(row)
			} else if field != nil {
				cells[j] = field(row, c.Key)
			}
		}
		out[i] = cells
	}
	return out
}

// Selection is a set of selected row identifiers. It stores IDs, not
// rows or indices, so a refetch that reorders or reloads the RowSet
// leaves the selection intact.
type Selection map[string]struct{}

// NewSelection returns an empty selection.
func NewSelection() Selection { return make(Selection) }

// NewSelectionFrom builds a selection from submitted ids, deduplicating.
func NewSelectionFrom(ids []string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add marks id as selected.
func (s Selection) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the selected identifiers, sorted for determinism.
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Retain drops IDs not present in valid. Call it only when rows have
// actually been deleted server-side; a mere refetch should not prune.
func (s Selection) Retain(valid map[string]struct{}) {
	for id := range s {
		if _, ok := valid[id]; !ok {
			delete(s, id)
		}
	}
}
