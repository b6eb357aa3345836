// internal/app/system/paging/paging.go
package paging

import (
	"fmt"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
)

// WindowWidth is how many numbered page links the pager shows.
const WindowWidth = 5

// Link is one numbered page control.
type Link struct {
	Page    int
	URL     string
	Current bool
}

// VM is the pagination view model shared by every list template. It
// is computed from the table query after the fetch, so the page is
// already clamped and the total is known.
type VM struct {
	Page       int
	TotalPages int
	Total      int
	RangeStart int
	RangeEnd   int
	Showing    string

	HasPrev bool
	HasNext bool
	PrevURL string
	NextURL string
	Links   []Link

	PageSize  int
	PageSizes []int

	// Envelope is the canonical query string for the current state,
	// carried by row-action forms so a redirect lands back on the
	// same page with the same filters.
	Envelope string
}

// Build computes the pager view model for a list mounted at basePath.
func Build(basePath string, q *table.Query) VM {
	p := q.Page()
	rng := p.Range()

	vm := VM{
		Page:       p.Page,
		TotalPages: p.TotalPages(),
		Total:      p.Total,
		RangeStart: rng.Start,
		RangeEnd:   rng.End,
		Showing:    fmt.Sprintf("Showing %d to %d of %d", rng.Start, rng.End, p.Total),
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
		PageSize:   p.PageSize,
		PageSizes:  q.Spec().PageSizes,
		Envelope:   q.EncodeString(),
	}
	if len(vm.PageSizes) == 0 {
		vm.PageSizes = table.DefaultPageSizes
	}

	if vm.HasPrev {
		vm.PrevURL = basePath + "?" + q.PageURL(p.Page-1)
	}
	if vm.HasNext {
		vm.NextURL = basePath + "?" + q.PageURL(p.Page+1)
	}
	for _, n := range p.Window(WindowWidth) {
		vm.Links = append(vm.Links, Link{
			Page:    n,
			URL:     basePath + "?" + q.PageURL(n),
			Current: n == p.Page,
		})
	}
	return vm
}
