package datagrid

import "fmt"

// TotalPages returns max(1, ceil(count/size)).
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// ClampPage pulls page into [1, total].
func ClampPage(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// RangeSummary renders "<first>-<last> of <total>", or "0 of 0" for an empty set.
func RangeSummary(page, size, total int) string {
	if total <= 0 {
		return "0 of 0"
	}
	first := (page-1)*size + 1
	last := min(page*size, total)
	return fmt.Sprintf("%d-%d of %d", first, last, total)
}

// Paginator tracks the current page over a row count.
type Paginator struct {
	current int
	size    int
	rows    int
}

// NewPaginator builds a paginator on page 1.
func NewPaginator(size, rows int) *Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Paginator{current: 1, size: size, rows: max(rows, 0)}
}

// CurrentPage returns the active page.
func (p *Paginator) CurrentPage() int { return p.current }

// PageSize returns the configured page size.
func (p *Paginator) PageSize() int { return p.size }

// TotalRows returns the row count the paginator windows over.
func (p *Paginator) TotalRows() int { return p.rows }

// TotalPages returns the derived page count.
func (p *Paginator) TotalPages() int { return TotalPages(p.rows, p.size) }

// SetTotalRows updates the row count and clamps the current page.
func (p *Paginator) SetTotalRows(rows int) {
	p.rows = max(rows, 0)
	p.current = ClampPage(p.current, p.TotalPages())
}

// Reset returns to page 1.
func (p *Paginator) Reset() { p.current = 1 }

// GoTo jumps to page. Pages outside [1, TotalPages] are ignored.
func (p *Paginator) GoTo(page int) bool {
	if page < 1 || page > p.TotalPages() {
		return false
	}
	p.current = page
	return true
}

// Next advances one page unless already on the last.
func (p *Paginator) Next() bool { return p.GoTo(p.current + 1) }

// Prev steps back one page unless already on the first.
func (p *Paginator) Prev() bool { return p.GoTo(p.current - 1) }

// Bounds returns the half-open row window for the current page.
func (p *Paginator) Bounds() (start, end int) {
	start = min((p.current-1)*p.size, p.rows)
	end = min(p.current*p.size, p.rows)
	return start, end
}

// Summary renders the range string for the current page.
func (p *Paginator) Summary() string {
	return RangeSummary(p.current, p.size, p.rows)
}

// Pages lists the jumpable page numbers.
func (p *Paginator) Pages() []int {
	total := p.TotalPages()
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
