// internal/app/system/table/pagination.go
package table

// Pagination tracks the page window of a list: the 1-based current
// page, the page size, and the total number of matching rows.
//
// Page is always kept inside [1, max(1, TotalPages())] by the mutating
// methods; out-of-range requests clamp silently rather than error.
type Pagination struct {
	Page     int
	PageSize int
	Total    int
}

// NewPagination returns page 1 with the given page size. A size of
// zero or less falls back to the first default page size.
func NewPagination(pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSizes[0]
	}
	return Pagination{Page: 1, PageSize: pageSize}
}

// TotalPages returns ceil(Total / PageSize). Zero when there are no
// rows.
func (p Pagination) TotalPages() int {
	if p.Total <= 0 || p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// maxPage is the upper clamp bound: at least 1 even when empty, so an
// empty result set still has a valid "page 1".
func (p Pagination) maxPage() int {
	if tp := p.TotalPages(); tp > 1 {
		return tp
	}
	return 1
}

// HasNext reports whether a later page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages() }

// HasPrev reports whether an earlier page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// SetTotal records the total row count and re-clamps Page, so a
// shrunken result set can never leave the window past the end.
func (p *Pagination) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.Total = total
	p.GoToPage(p.Page)
}

// GoToPage moves to page n, clamped into [1, max(1, TotalPages)].
func (p *Pagination) GoToPage(n int) {
	if n < 1 {
		n = 1
	}
	if m := p.maxPage(); n > m {
		n = m
	}
	p.Page = n
}

// NextPage advances one page; a no-op on the last page.
func (p *Pagination) NextPage() {
	if p.HasNext() {
		p.Page++
	}
}

// PrevPage goes back one page; a no-op on the first page.
func (p *Pagination) PrevPage() {
	if p.HasPrev() {
		p.Page--
	}
}

// FirstPage jumps to page 1.
func (p *Pagination) FirstPage() { p.Page = 1 }

// LastPage jumps to the final page (page 1 when empty).
func (p *Pagination) LastPage() { p.Page = p.maxPage() }

// SetPageSize changes the page size and resets to page 1. The old
// page index is meaningless under a new size, so bounds are recomputed
// before anything renders.
func (p *Pagination) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSizes[0]
	}
	p.PageSize = size
	p.Page = 1
}

// Range holds the 1-based display range for "Showing X to Y of Z".
// Start and End are both 0 when the list is empty.
type Range struct {
	Start int
	End   int
	Total int
}

// Range computes the display range for the current window.
func (p Pagination) Range() Range {
	if p.Total <= 0 {
		return Range{Start: 0, End: 0, Total: 0}
	}
	start := (p.Page-1)*p.PageSize + 1
	end := p.Page * p.PageSize
	if end > p.Total {
		end = p.Total
	}
	return Range{Start: start, End: end, Total: p.Total}
}

// Window returns up to width page numbers centred on the current page,
// for rendering numbered page links.
func (p Pagination) Window(width int) []int {
	tp := p.TotalPages()
	if tp == 0 || width <= 0 {
		return nil
	}
	if width > tp {
		width = tp
	}
	lo := p.Page - width/2
	if lo < 1 {
		lo = 1
	}
	if lo+width-1 > tp {
		lo = tp - width + 1
	}
	pages := make([]int, width)
	for i := range pages {
		pages[i] = lo + i
	}
	return pages
}
