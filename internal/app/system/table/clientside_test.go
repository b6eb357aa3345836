package table

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
)

type person struct {
	ID   string
	Name string
	Role string
}

func personEngine() Engine[person] {
	return Engine[person]{
		Field: func(p person, f string) string {
			switch f {
			case "name", "search":
				return p.Name
			case "role":
				return p.Role
			}
			return ""
		},
		SearchFields: []string{"name"},
		Less: func(a, b person, col string) bool {
			if col == "name" {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		},
	}
}

func personSpec() Spec {
	return Spec{
		Entity: "people",
		Filters: []FilterSpec{
			{Name: "search", Kind: KindText},
			{Name: "role", Kind: KindMultiSelect},
		},
		SortColumns: []string{"name"},
	}
}

func people(n int) []person {
	out := make([]person, n)
	for i := range out {
		role := "USER"
		if i%5 == 0 {
			role = "ADMIN"
		}
		out[i] = person{
			ID:   fmt.Sprintf("p%02d", i+1),
			Name: fmt.Sprintf("Person %02d", i+1),
			Role: role,
		}
	}
	return out
}

func TestApply_PagesThroughRows(t *testing.T) {
	rows := people(25)
	eng := personEngine()

	q := NewQuery(personSpec()) // pageSize 10

	page1 := eng.Apply(rows, q)
	if len(page1) != 10 || page1[0].ID != "p01" || page1[9].ID != "p10" {
		t.Fatalf("page 1 = %d rows, first %s", len(page1), page1[0].ID)
	}
	if q.Page().TotalPages() != 3 {
		t.Errorf("TotalPages = %d, want 3", q.Page().TotalPages())
	}

	q.GoToPage(2)
	q.GoToPage(q.Page().Page + 1) // next
	page3 := eng.Apply(rows, q)
	if len(page3) != 5 || page3[0].ID != "p21" || page3[4].ID != "p25" {
		t.Errorf("page 3 = %d rows, want rows 21-25", len(page3))
	}
	if q.Page().HasNext() {
		t.Error("HasNext true on final page")
	}
}

func TestApply_TextFilterResetsToMatchingRows(t *testing.T) {
	rows := []person{
		{ID: "a", Name: "Ada Smith", Role: "USER"},
		{ID: "b", Name: "Grace Jones", Role: "USER"},
		{ID: "c", Name: "John SMITH", Role: "ADMIN"},
		{ID: "d", Name: "Linus Deer", Role: "USER"},
	}
	eng := personEngine()

	q := NewQuery(personSpec())
	q.SetTotal(50)
	q.GoToPage(3)

	q.SetFilter("search", Text("smith"))
	if q.Page().Page != 1 {
		t.Fatalf("filter change kept page %d", q.Page().Page)
	}

	got := eng.Apply(rows, q)
	if len(got) != 2 {
		t.Fatalf("matched %d rows, want 2", len(got))
	}
	for _, p := range got {
		if !strings.Contains(strings.ToLower(p.Name), "smith") {
			t.Errorf("non-matching row %q", p.Name)
		}
	}
}

func TestApply_EmptyMultiSelectMatchesAll(t *testing.T) {
	rows := people(8)
	eng := personEngine()

	q := NewQuery(personSpec())
	q.SetFilter("role", MultiSelect{}) // "no constraint", not "match nothing"

	got := eng.Apply(rows, q)
	if len(got) != 8 {
		t.Errorf("empty multi-select matched %d of 8 rows", len(got))
	}
}

func TestApply_MultiSelectMembership(t *testing.T) {
	rows := people(10) // p01, p06 are ADMIN
	eng := personEngine()

	q := NewQuery(personSpec())
	q.SetFilter("role", MultiSelect{"ADMIN"})

	got := eng.Apply(rows, q)
	if len(got) != 2 {
		t.Fatalf("matched %d rows, want 2", len(got))
	}
	for _, p := range got {
		if p.Role != "ADMIN" {
			t.Errorf("row %s has role %s", p.ID, p.Role)
		}
	}
}

func TestApply_SortDescending(t *testing.T) {
	rows := people(3)
	eng := personEngine()

	q := NewQuery(personSpec())
	q.SetSort("name", true)

	got := eng.Apply(rows, q)
	if got[0].ID != "p03" || got[2].ID != "p01" {
		t.Errorf("descending sort order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestApply_FilterViaParsedRequest(t *testing.T) {
	// End to end: page 3 of the unfiltered set, then a search arrives.
	rows := []person{
		{ID: "a", Name: "Ada Smith"}, {ID: "b", Name: "Bob Ray"},
		{ID: "c", Name: "Cara Smith"}, {ID: "d", Name: "Dan Oak"},
	}
	eng := personEngine()

	r := httptest.NewRequest("GET", "/people?search=smith&page=3", nil)
	q := ParseQuery(r, personSpec())

	got := eng.Apply(rows, q)
	// Only 2 matches exist; the stale page=3 clamps back into range.
	if q.Page().Page != 1 {
		t.Errorf("page = %d, want clamped 1", q.Page().Page)
	}
	if len(got) != 2 {
		t.Errorf("matched %d rows, want 2", len(got))
	}
}
