// Package listing derives the visible records of a list screen: the filter
// predicates, the pager and the memoized projection that combines them.
package listing

import (
	"strings"
	"time"

	"github.com/erazemk/cargotrack/internal/model"
)

// Predicate decides whether a record passes the criteria. Predicates are pure.
type Predicate[T any] func(rec T, c model.Criteria) bool

// MatchItem reports whether an item passes c. Search covers code, name and
// customer. The type criterion does not apply to items.
func MatchItem(it model.Item, c model.Criteria) bool {
	if !matchSearch(c.Search, it.Code, it.Name, it.Customer) {
		return false
	}
	if !matchExact(c.Status, it.Status) {
		return false
	}
	return matchDate(it.Date, c.DateFrom, c.DateTo)
}

// MatchCustomer reports whether a customer passes c. Search covers name,
// company and email; the date range applies to the join date.
func MatchCustomer(cu model.Customer, c model.Criteria) bool {
	if !matchSearch(c.Search, cu.Name, cu.Company, cu.Email) {
		return false
	}
	if !matchExact(c.Status, cu.Status) {
		return false
	}
	if !matchExact(c.Type, cu.Type) {
		return false
	}
	return matchDate(cu.JoinDate, c.DateFrom, c.DateTo)
}

// Apply returns the records passing match, in their original order.
func Apply[T any](records []T, c model.Criteria, match Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if match(rec, c) {
			out = append(out, rec)
		}
	}
	return out
}

func matchSearch(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func matchExact(want, got string) bool {
	return model.IsAnyValue(want) || got == want
}

// matchDate applies an inclusive calendar-day range. Records with an
// unparseable date never pass a set bound.
func matchDate(value string, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	d, err := model.ParseDate(value)
	if err != nil {
		return false
	}
	day := truncateDay(d)
	if from != nil && day.Before(truncateDay(*from)) {
		return false
	}
	if to != nil && day.After(truncateDay(*to)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
