// internal/app/system/table/query.go
package table

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Sort is the single active sort column and direction. A zero Column
// means unsorted.
type Sort struct {
	Column string
	Desc   bool
}

// Spec declares a screen's table shape: which filters exist, which
// columns may be sorted on, and the page sizes offered.
type Spec struct {
	// Entity names the screen for persisted-filter keys
	// ("users", "program-leads", ...).
	Entity string

	Filters     []FilterSpec
	SortColumns []string
	DefaultSort Sort
	PageSizes   []int // first entry is the default; nil means DefaultPageSizes
}

func (s Spec) pageSizes() []int {
	if len(s.PageSizes) > 0 {
		return s.PageSizes
	}
	return DefaultPageSizes
}

func (s Spec) filter(name string) (FilterSpec, bool) {
	for _, f := range s.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return FilterSpec{}, false
}

func (s Spec) sortable(col string) bool {
	for _, c := range s.SortColumns {
		if c == col {
			return true
		}
	}
	return false
}

// Query is the complete state of one table: filter values, sort, and
// pagination. It is the only mutable state a list screen owns, and
// Encode is a pure function of it.
type Query struct {
	spec    Spec
	filters map[string]Value
	sort    Sort
	page    Pagination
}

// NewQuery returns the default state for a spec: no filters, the
// spec's default sort, page 1 at the default page size.
func NewQuery(spec Spec) *Query {
	return &Query{
		spec:    spec,
		filters: make(map[string]Value),
		sort:    spec.DefaultSort,
		page:    NewPagination(spec.pageSizes()[0]),
	}
}

// Spec returns the spec this query was built for.
func (q *Query) Spec() Spec { return q.spec }

// Filter returns the current value for a named filter. Absence means
// no constraint.
func (q *Query) Filter(name string) (Value, bool) {
	v, ok := q.filters[name]
	return v, ok
}

// Text returns the current text value for a text filter, or "".
func (q *Query) Text(name string) string {
	if v, ok := q.filters[name]; ok {
		if t, ok := v.(Text); ok {
			return string(t)
		}
	}
	return ""
}

// Selected returns the current single-select value, or "" when
// unconstrained.
func (q *Query) Selected(name string) string {
	if v, ok := q.filters[name]; ok {
		if s, ok := v.(Select); ok {
			return string(s)
		}
	}
	return ""
}

// MultiSelected returns the current multi-select values (normalized),
// or nil when unconstrained.
func (q *Query) MultiSelected(name string) []string {
	if v, ok := q.filters[name]; ok {
		if m, ok := v.(MultiSelect); ok {
			return m.Values()
		}
	}
	return nil
}

// SetFilter sets a filter value and resets to page 1: a changed
// constraint invalidates the old page index. Empty values remove the
// key entirely so the envelope never carries field=""; values of the
// wrong kind, or unknown names, are ignored.
func (q *Query) SetFilter(name string, v Value) {
	fs, ok := q.spec.filter(name)
	if !ok || !kindMatches(fs.Kind, v) {
		return
	}
	if v.Empty() {
		delete(q.filters, name)
	} else {
		q.filters[name] = v
	}
	q.page.FirstPage()
}

// ClearFilters removes every filter constraint and resets to page 1.
func (q *Query) ClearFilters() {
	q.filters = make(map[string]Value)
	q.page.FirstPage()
}

// HasFilters reports whether any constraint is active.
func (q *Query) HasFilters() bool { return len(q.filters) > 0 }

func kindMatches(k FilterKind, v Value) bool {
	switch v.(type) {
	case Text:
		return k == KindText
	case Select:
		return k == KindSelect
	case MultiSelect:
		return k == KindMultiSelect
	}
	return false
}

// Sort returns the active sort.
func (q *Query) Sort() Sort { return q.sort }

// SetSort changes the sort column and direction. Unlike filters, a
// sort change keeps the current page: the result set size is
// unchanged, only its order. Unknown columns clear the sort.
func (q *Query) SetSort(column string, desc bool) {
	if column == "" || !q.spec.sortable(column) {
		q.sort = Sort{}
		return
	}
	q.sort = Sort{Column: column, Desc: desc}
}

// Page returns the current pagination window.
func (q *Query) Page() Pagination { return q.page }

// GoToPage moves to page n (clamped).
func (q *Query) GoToPage(n int) { q.page.GoToPage(n) }

// SetPageSize changes the page size; only sizes the spec offers are
// accepted. Always resets to page 1.
func (q *Query) SetPageSize(size int) {
	for _, s := range q.spec.pageSizes() {
		if s == size {
			q.page.SetPageSize(size)
			return
		}
	}
}

// SetTotal records the fetched total and re-clamps the page.
func (q *Query) SetTotal(total int) { q.page.SetTotal(total) }

// AdoptPage overwrites the pagination window with server-reported
// metadata (server-side screens trust the backend's clamping).
func (q *Query) AdoptPage(p Pagination) {
	if p.PageSize <= 0 {
		p.PageSize = q.page.PageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	q.page = p
}

// Encode serializes the query into its canonical envelope.
//
// The envelope is deterministic: url.Values.Encode sorts keys, filter
// values are normalized (trimmed; multi-selects deduplicated and
// sorted), and no-constraint filters are absent rather than empty.
// Identical state therefore always yields a byte-identical string,
// which callers rely on for refetch keys.
func (q *Query) Encode() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.page.Page))
	v.Set("limit", strconv.Itoa(q.page.PageSize))
	if q.sort.Column != "" {
		v.Set("sortBy", q.sort.Column)
		if q.sort.Desc {
			v.Set("sortOrder", "desc")
		} else {
			v.Set("sortOrder", "asc")
		}
	}
	for name, val := range q.filters {
		if val.Empty() {
			continue
		}
		v.Set(name, val.encode())
	}
	return v
}

// EncodeString returns Encode().Encode(): the canonical, ordered
// query string.
func (q *Query) EncodeString() string { return q.Encode().Encode() }

// PageURL returns the canonical envelope with only the page changed,
// for building prev/next/numbered links without mutating q.
func (q *Query) PageURL(page int) string {
	v := q.Encode()
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	return v.Encode()
}

// ParseQuery rebuilds a Query from a request URL. This is the
// server-rendered analogue of component state: the URL carries the
// whole envelope between interactions.
//
// Unknown parameters are ignored; page is lower-clamped only (the
// total is unknown until after the fetch); a limit not offered by the
// spec falls back to the default; invalid sorts fall back to the
// spec's default sort.
func ParseQuery(r *http.Request, spec Spec) *Query {
	q := NewQuery(spec)
	raw := r.URL.Query()

	for _, fs := range spec.Filters {
		got, present := raw[fs.Name]
		if !present || len(got) == 0 {
			continue
		}
		switch fs.Kind {
		case KindText:
			q.SetFilter(fs.Name, Text(got[0]))
		case KindSelect:
			if v := strings.TrimSpace(got[0]); fs.allows(v) || Select(v).Empty() {
				q.SetFilter(fs.Name, Select(v))
			}
		case KindMultiSelect:
			vals := splitMulti(got)
			kept := vals[:0]
			for _, v := range vals {
				if fs.allows(v) {
					kept = append(kept, v)
				}
			}
			q.SetFilter(fs.Name, MultiSelect(kept))
		}
	}

	if col := strings.TrimSpace(raw.Get("sortBy")); col != "" && spec.sortable(col) {
		q.SetSort(col, strings.EqualFold(raw.Get("sortOrder"), "desc"))
	}

	if n, err := strconv.Atoi(raw.Get("limit")); err == nil {
		q.SetPageSize(n)
	}

	// Page last: filter and limit setters above reset it to 1, and the
	// URL's page only counts when neither changed the constraint set.
	// A bare page param keeps it.
	if n, err := strconv.Atoi(raw.Get("page")); err == nil && n > 1 {
		q.page.Page = n
	}

	return q
}

// splitMulti accepts both repeated params (?role=A&role=B) and the
// canonical comma-joined form (?role=A,B).
func splitMulti(got []string) []string {
	var out []string
	for _, g := range got {
		for _, part := range strings.Split(g, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
