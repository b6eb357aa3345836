package table

import "testing"

func TestGoToPage_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		total int
		size  int
		goTo  int
		want  int
	}{
		{"negative", 25, 10, -5, 1},
		{"zero", 25, 10, 0, 1},
		{"in range", 25, 10, 2, 2},
		{"last", 25, 10, 3, 3},
		{"past end", 25, 10, 10000, 3},
		{"empty list", 0, 10, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.size)
			p.Total = tt.total
			p.GoToPage(tt.goTo)
			if p.Page != tt.want {
				t.Errorf("GoToPage(%d) = page %d, want %d", tt.goTo, p.Page, tt.want)
			}
		})
	}
}

func TestNextPrev_NoOpAtBounds(t *testing.T) {
	p := NewPagination(10)
	p.SetTotal(25) // 3 pages

	p.PrevPage()
	if p.Page != 1 {
		t.Errorf("PrevPage at first page moved to %d", p.Page)
	}
	p.NextPage()
	p.NextPage()
	if p.Page != 3 {
		t.Fatalf("expected page 3, got %d", p.Page)
	}
	if p.HasNext() {
		t.Error("HasNext true on last page")
	}
	p.NextPage()
	if p.Page != 3 {
		t.Errorf("NextPage at last page moved to %d", p.Page)
	}
	if !p.HasPrev() {
		t.Error("HasPrev false on last page")
	}
}

func TestSetPageSize_ResetsToFirstPage(t *testing.T) {
	p := NewPagination(10)
	p.SetTotal(100)
	p.GoToPage(9)

	p.SetPageSize(50)
	if p.Page != 1 {
		t.Errorf("SetPageSize kept page %d, want 1", p.Page)
	}
	if p.TotalPages() != 2 {
		t.Errorf("TotalPages = %d, want 2", p.TotalPages())
	}
}

func TestSetTotal_ReclampsPage(t *testing.T) {
	p := NewPagination(10)
	p.SetTotal(100)
	p.GoToPage(10)

	// Result set shrank underneath us.
	p.SetTotal(15)
	if p.Page != 2 {
		t.Errorf("page after shrink = %d, want 2", p.Page)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		size      int
		total     int
		wantStart int
		wantEnd   int
	}{
		{"empty", 1, 10, 0, 0, 0},
		{"first full page", 1, 10, 25, 1, 10},
		{"middle page", 2, 10, 25, 11, 20},
		{"short last page", 3, 10, 25, 21, 25},
		{"single row", 1, 10, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pagination{Page: tt.page, PageSize: tt.size, Total: tt.total}
			got := p.Range()
			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Errorf("Range() = %d..%d, want %d..%d", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
			if got.Total != tt.total {
				t.Errorf("Range().Total = %d, want %d", got.Total, tt.total)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	p := Pagination{Page: 5, PageSize: 10, Total: 100} // 10 pages

	got := p.Window(5)
	want := []int{3, 4, 5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("Window(5) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Window(5) = %v, want %v", got, want)
		}
	}

	// Window wider than the page count shrinks to fit.
	p.Total = 20
	if got := p.Window(5); len(got) != 2 || got[0] != 1 {
		t.Errorf("Window(5) with 2 pages = %v, want [1 2]", got)
	}

	p.Total = 0
	if got := p.Window(5); got != nil {
		t.Errorf("Window on empty list = %v, want nil", got)
	}
}
