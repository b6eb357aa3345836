// internal/app/system/table/filters.go
package table

import (
	"sort"
	"strings"
)

// FilterKind discriminates the three filter control types a screen
// can declare.
type FilterKind int

const (
	// KindText is a free-text search matched case-insensitively as a
	// substring (client engine) or forwarded verbatim (server engine).
	KindText FilterKind = iota
	// KindSelect is an exact match on one field; the empty value (or
	// the sentinel "all") means no constraint.
	KindSelect
	// KindMultiSelect matches rows whose field value is a member of
	// the selected set; the empty set means no constraint, never
	// "match nothing".
	KindMultiSelect
)

// SelectAll is the sentinel option value meaning "no constraint" for
// single-selects. It is never encoded into an envelope.
const SelectAll = "all"

// FilterSpec declares one filter control on a screen.
type FilterSpec struct {
	Name    string
	Kind    FilterKind
	Options []string // valid values for (multi-)selects; empty accepts any
	// Persist marks a select whose value survives reloads in the
	// prefs store, under prefs.Key(entity, Name).
	Persist bool
}

func (fs FilterSpec) allows(v string) bool {
	if len(fs.Options) == 0 {
		return true
	}
	for _, o := range fs.Options {
		if o == v {
			return true
		}
	}
	return false
}

// Value is a filter's current value. The concrete types are Text,
// Select, and MultiSelect; nothing else satisfies the interface, so a
// switch over them is exhaustive.
type Value interface {
	// Empty reports "no constraint".
	Empty() bool
	// encode returns the canonical wire form; only called when
	// non-empty.
	encode() string

	isValue()
}

// Text is a free-text search value.
type Text string

func (t Text) Empty() bool    { return strings.TrimSpace(string(t)) == "" }
func (t Text) encode() string { return strings.TrimSpace(string(t)) }
func (Text) isValue()         {}

// Select is a single-select value.
type Select string

func (s Select) Empty() bool {
	v := strings.TrimSpace(string(s))
	return v == "" || strings.EqualFold(v, SelectAll)
}
func (s Select) encode() string { return strings.TrimSpace(string(s)) }
func (Select) isValue()         {}

// MultiSelect is a set of selected values. The canonical encoding is
// the distinct values sorted and comma-joined, so the same selection
// always produces the same envelope regardless of click order.
type MultiSelect []string

func (m MultiSelect) Empty() bool { return len(m.normalized()) == 0 }
func (m MultiSelect) encode() string {
	return strings.Join(m.normalized(), ",")
}
func (MultiSelect) isValue() {}

func (m MultiSelect) normalized() []string {
	seen := make(map[string]struct{}, len(m))
	out := make([]string, 0, len(m))
	for _, v := range m {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Values returns the normalized selected values.
func (m MultiSelect) Values() []string { return m.normalized() }

// Has reports whether v is selected.
func (m MultiSelect) Has(v string) bool {
	for _, s := range m.normalized() {
		if s == v {
			return true
		}
	}
	return false
}
