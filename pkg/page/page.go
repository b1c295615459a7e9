package page

// Limit is the fixed page size of every list endpoint. The wire contract
// does not let callers change it.
const Limit = 25

type Page struct {
	Page int `query:"page" default:"1" vd:"$>=1"`
}

// Normalize clamps the page number to the first page when the query
// parameter is missing or out of range.
func (p *Page) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
}

func (p *Page) Offset() int {
	p.Normalize()
	return (p.Page - 1) * Limit
}

// Count returns the number of pages needed for total elements. An empty
// collection has zero pages.
func Count(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + Limit - 1) / Limit)
}
