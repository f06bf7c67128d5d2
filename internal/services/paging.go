package services

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 25

// Offset is the row offset of page (1-based) for the given size.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// LastPage is max(1, ceil(total/size)).
func LastPage(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	last := (total + size - 1) / size
	if last < 1 {
		return 1
	}
	return last
}

// ClampPage keeps page within [1, last].
func ClampPage(page, last int) int {
	if page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Pager describes the navigation state of an offset-paginated list.
type Pager struct {
	Page     int
	LastPage int
	Total    int
	Size     int
}

func (p Pager) HasPrevious() bool { return p.Page > 1 }
func (p Pager) HasNext() bool     { return p.Page < p.LastPage }
func (p Pager) Previous() int     { return ClampPage(p.Page-1, p.LastPage) }
func (p Pager) Next() int         { return ClampPage(p.Page+1, p.LastPage) }

// PageCursor describes a list whose total is unknown: there is a next page
// whenever the current one came back full.
type PageCursor struct {
	Page    int
	Size    int
	Fetched int
}

func (c PageCursor) HasPrevious() bool { return c.Page > 1 }
func (c PageCursor) HasNext() bool     { return c.Size > 0 && c.Fetched == c.Size }
