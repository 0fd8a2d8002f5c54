package listing

import (
	"errors"
	"fmt"
)

// DefaultPageSize is the number of records shown per page.
const DefaultPageSize = 4

// ErrPageOutOfRange is returned by GoTo for pages outside [1, TotalPages].
var ErrPageOutOfRange = errors.New("page out of range")

// Reason identifies what changed the filtered set before a reconciliation.
type Reason int

const (
	// FilterChanged and Added jump back to the first page.
	FilterChanged Reason = iota
	Added
	// Edited and Deleted keep the page unless it fell out of range.
	Edited
	Deleted
)

// Pager tracks the current page of a filtered list.
type Pager struct {
	size    int
	current int
	total   int
}

// NewPager returns a pager on page 1. Sizes below 1 fall back to DefaultPageSize.
func NewPager(size int) *Pager {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Pager{size: size, current: 1}
}

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// Current returns the current page, starting at 1.
func (p *Pager) Current() int { return p.current }

// TotalPages returns the page count last seen by Reconcile.
func (p *Pager) TotalPages() int { return p.total }

// PageCount returns ceil(n/size).
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Reconcile updates the pager after the filtered set changed to n records.
func (p *Pager) Reconcile(n int, reason Reason) {
	p.total = PageCount(n, p.size)
	switch reason {
	case FilterChanged, Added:
		p.current = 1
	default:
		p.clamp()
	}
}

func (p *Pager) clamp() {
	if p.total == 0 {
		p.current = 1
		return
	}
	if p.current > p.total {
		p.current = p.total
	}
	if p.current < 1 {
		p.current = 1
	}
}

// GoTo moves to page n. Out-of-range requests are rejected and leave the
// current page unchanged; with no pages only page 1 is valid.
func (p *Pager) GoTo(n int) error {
	last := max(p.total, 1)
	if n < 1 || n > last {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, n, last)
	}
	p.current = n
	return nil
}

// HasPrev reports whether a previous page exists.
func (p *Pager) HasPrev() bool { return p.current > 1 }

// HasNext reports whether a next page exists.
func (p *Pager) HasNext() bool { return p.current < p.total }

// Slice returns the records of page (1-based) from filtered.
func Slice[T any](filtered []T, page, size int) []T {
	if page < 1 || size < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(filtered) {
		return nil
	}
	end := min(start+size, len(filtered))
	return filtered[start:end]
}
