package listing

import (
	"time"

	"github.com/erazemk/cargotrack/internal/model"
)

// Page is one rendered page of a filtered list.
type Page[T any] struct {
	Records    []T            `json:"records"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	PageSize   int            `json:"page_size"`
	Filtered   int            `json:"filtered"`
	Total      int            `json:"total"`
	Criteria   model.Criteria `json:"criteria"`
	HasPrev    bool           `json:"has_prev"`
	HasNext    bool           `json:"has_next"`
}

// PageNumbers returns 1..TotalPages for page links.
func (p Page[T]) PageNumbers() []int {
	nums := make([]int, p.TotalPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// NewPage slices the current page of filtered.
func NewPage[T any](filtered []T, total int, pager *Pager, c model.Criteria) Page[T] {
	records := Slice(filtered, pager.Current(), pager.Size())
	if records == nil {
		records = []T{}
	}
	return Page[T]{
		Records:    records,
		Page:       pager.Current(),
		TotalPages: pager.TotalPages(),
		PageSize:   pager.Size(),
		Filtered:   len(filtered),
		Total:      total,
		Criteria:   c,
		HasPrev:    pager.HasPrev(),
		HasNext:    pager.HasNext(),
	}
}

// criteriaKey is a comparable form of model.Criteria.
type criteriaKey struct {
	search, status, typ string
	from, to            time.Time
	hasFrom, hasTo      bool
}

func keyOf(c model.Criteria) criteriaKey {
	k := criteriaKey{search: c.Search, status: c.Status, typ: c.Type}
	if c.DateFrom != nil {
		k.from, k.hasFrom = *c.DateFrom, true
	}
	if c.DateTo != nil {
		k.to, k.hasTo = *c.DateTo, true
	}
	return k
}

// Projection memoizes the filtered list of a store. The cached result is
// reused until the store revision or the criteria change.
//
// Projection is not safe for concurrent use.
type Projection[T any] struct {
	match    Predicate[T]
	valid    bool
	rev      uint64
	key      criteriaKey
	filtered []T
	total    int
	computes int
}

// NewProjection returns a projection filtering with match.
func NewProjection[T any](match Predicate[T]) *Projection[T] {
	return &Projection[T]{match: match}
}

// Filtered returns the records passing c and the unfiltered count. load is
// only called when rev or c differ from the previous call.
func (p *Projection[T]) Filtered(rev uint64, c model.Criteria, load func() ([]T, error)) ([]T, int, error) {
	key := keyOf(c)
	if p.valid && p.rev == rev && p.key == key {
		return p.filtered, p.total, nil
	}

	records, err := load()
	if err != nil {
		return nil, 0, err
	}
	p.filtered = Apply(records, c, p.match)
	p.total = len(records)
	p.rev, p.key, p.valid = rev, key, true
	p.computes++
	return p.filtered, p.total, nil
}

// Computes returns how many times the filter ran.
func (p *Projection[T]) Computes() int { return p.computes }
