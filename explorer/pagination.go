package explorer

// PageSize is the number of result rows shown per page.
const PageSize = 3

// Pager is the paging state machine over one result set. Page numbers start
// at 1; navigation past either boundary is a no-op.
type Pager struct {
	size  int
	page  int
	total int
}

func NewPager() *Pager {
	return &Pager{size: PageSize, page: 1}
}

// Load points the pager at a new result set of the given size and resets to
// the first page.
func (p *Pager) Load(total int) {
	p.total = total
	p.page = 1
}

func (p *Pager) Page() int {
	return p.page
}

func (p *Pager) PageCount() int {
	return (p.total + p.size - 1) / p.size
}

func (p *Pager) HasNext() bool {
	return p.page*p.size < p.total
}

func (p *Pager) HasPrev() bool {
	return p.page > 1
}

// Next advances one page, reporting whether the page changed.
func (p *Pager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.page++
	return true
}

// Prev steps back one page, reporting whether the page changed.
func (p *Pager) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.page--
	return true
}

// Bounds returns the half-open slice range of the current page.
func (p *Pager) Bounds() (start, end int) {
	start = (p.page - 1) * p.size
	if start > p.total {
		start = p.total
	}
	end = p.page * p.size
	if end > p.total {
		end = p.total
	}
	return start, end
}
