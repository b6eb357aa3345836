package table

import (
	"net/http/httptest"
	"testing"
)

func testSpec() Spec {
	return Spec{
		Entity: "users",
		Filters: []FilterSpec{
			{Name: "search", Kind: KindText},
			{Name: "role", Kind: KindMultiSelect, Options: []string{"ADMIN", "USER"}, Persist: true},
			{Name: "course", Kind: KindSelect},
		},
		SortColumns: []string{"name", "email", "createdAt"},
		DefaultSort: Sort{Column: "createdAt"},
	}
}

func TestEncode_Idempotent(t *testing.T) {
	q := NewQuery(testSpec())
	q.SetFilter("search", Text("smith"))
	q.SetFilter("role", MultiSelect{"USER", "ADMIN"})
	q.SetSort("email", true)
	q.SetTotal(100)
	q.GoToPage(2)

	first := q.EncodeString()
	second := q.EncodeString()
	if first != second {
		t.Errorf("Encode not idempotent:\n%s\n%s", first, second)
	}

	// Same state built in a different order encodes identically.
	q2 := NewQuery(testSpec())
	q2.SetSort("email", true)
	q2.SetFilter("role", MultiSelect{"ADMIN", "USER"})
	q2.SetFilter("search", Text("smith"))
	q2.SetTotal(100)
	q2.GoToPage(2)
	if got := q2.EncodeString(); got != first {
		t.Errorf("order-dependent encoding:\n%s\n%s", got, first)
	}
}

func TestEncode_ElidesNoConstraint(t *testing.T) {
	q := NewQuery(testSpec())
	q.SetFilter("search", Text("smith"))
	q.SetFilter("course", Select("c1"))
	q.SetFilter("role", MultiSelect{"ADMIN"})

	// Reset each filter to its no-constraint value.
	q.SetFilter("search", Text("   "))
	q.SetFilter("course", Select(SelectAll))
	q.SetFilter("role", MultiSelect{})

	v := q.Encode()
	for _, key := range []string{"search", "course", "role"} {
		if _, present := v[key]; present {
			t.Errorf("no-constraint filter %q present in envelope %q", key, v.Encode())
		}
	}
}

func TestSetFilter_ResetsPage(t *testing.T) {
	q := NewQuery(testSpec())
	q.SetTotal(500)
	q.GoToPage(5)

	q.SetFilter("search", Text("smith"))
	if got := q.Page().Page; got != 1 {
		t.Errorf("page after filter change = %d, want 1", got)
	}

	q.SetTotal(500)
	q.GoToPage(4)
	q.SetPageSize(50)
	if got := q.Page().Page; got != 1 {
		t.Errorf("page after page-size change = %d, want 1", got)
	}
}

func TestSetSort_KeepsPage(t *testing.T) {
	q := NewQuery(testSpec())
	q.SetTotal(500)
	q.GoToPage(5)

	q.SetSort("name", false)
	if got := q.Page().Page; got != 5 {
		t.Errorf("page after sort change = %d, want 5", got)
	}
}

func TestSetFilter_RejectsWrongKindAndUnknown(t *testing.T) {
	q := NewQuery(testSpec())
	q.SetFilter("role", Text("ADMIN"))   // wrong kind
	q.SetFilter("bogus", Text("x"))      // unknown name
	q.SetFilter("course", MultiSelect{}) // wrong kind

	if q.HasFilters() {
		t.Errorf("invalid SetFilter calls stored state: %q", q.EncodeString())
	}
}

func TestMultiSelect_CanonicalEncoding(t *testing.T) {
	q := NewQuery(testSpec())
	q.SetFilter("role", MultiSelect{"USER", "ADMIN", "USER", " "})

	if got := q.Encode().Get("role"); got != "ADMIN,USER" {
		t.Errorf("role encoded as %q, want %q", got, "ADMIN,USER")
	}
}

func TestParseQuery(t *testing.T) {
	spec := testSpec()

	tests := []struct {
		name  string
		url   string
		check func(t *testing.T, q *Query)
	}{
		{
			name: "defaults",
			url:  "/users",
			check: func(t *testing.T, q *Query) {
				if q.Page().Page != 1 || q.Page().PageSize != 10 {
					t.Errorf("default page state = %+v", q.Page())
				}
				if q.Sort().Column != "createdAt" {
					t.Errorf("default sort = %+v", q.Sort())
				}
			},
		},
		{
			name: "full envelope",
			url:  "/users?page=3&limit=20&sortBy=email&sortOrder=desc&search=smith&role=ADMIN,USER",
			check: func(t *testing.T, q *Query) {
				if q.Page().Page != 3 || q.Page().PageSize != 20 {
					t.Errorf("page state = %+v", q.Page())
				}
				if s := q.Sort(); s.Column != "email" || !s.Desc {
					t.Errorf("sort = %+v", s)
				}
				if q.Text("search") != "smith" {
					t.Errorf("search = %q", q.Text("search"))
				}
				if got := q.MultiSelected("role"); len(got) != 2 {
					t.Errorf("role = %v", got)
				}
			},
		},
		{
			name: "invalid limit falls back",
			url:  "/users?limit=7",
			check: func(t *testing.T, q *Query) {
				if q.Page().PageSize != 10 {
					t.Errorf("PageSize = %d, want default 10", q.Page().PageSize)
				}
			},
		},
		{
			name: "invalid sort column falls back",
			url:  "/users?sortBy=password",
			check: func(t *testing.T, q *Query) {
				if q.Sort().Column != "createdAt" {
					t.Errorf("sort = %+v", q.Sort())
				}
			},
		},
		{
			name: "unknown multi-select values dropped",
			url:  "/users?role=ADMIN,SUPERUSER",
			check: func(t *testing.T, q *Query) {
				got := q.MultiSelected("role")
				if len(got) != 1 || got[0] != "ADMIN" {
					t.Errorf("role = %v, want [ADMIN]", got)
				}
			},
		},
		{
			name: "negative page clamps to 1",
			url:  "/users?page=-2",
			check: func(t *testing.T, q *Query) {
				if q.Page().Page != 1 {
					t.Errorf("page = %d", q.Page().Page)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			tt.check(t, ParseQuery(r, spec))
		})
	}
}

func TestParseQuery_RoundTripsOwnEncoding(t *testing.T) {
	q := NewQuery(testSpec())
	q.SetFilter("search", Text("ade"))
	q.SetFilter("role", MultiSelect{"USER"})
	q.SetSort("name", true)

	r := httptest.NewRequest("GET", "/users?"+q.EncodeString(), nil)
	got := ParseQuery(r, testSpec())
	if got.EncodeString() != q.EncodeString() {
		t.Errorf("round trip changed envelope:\n%s\n%s", q.EncodeString(), got.EncodeString())
	}
}
