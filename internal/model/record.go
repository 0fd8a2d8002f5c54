package model

import (
	"fmt"
	"strings"
	"time"
)

// Record is implemented by every entity kept in a record store.
type Record[T any] interface {
	RecordID() int64
	WithID(id int64) T
}

// Criteria holds the filter bar state of a list screen.
type Criteria struct {
	Search   string     `json:"search"`
	Status   string     `json:"status"`
	Type     string     `json:"type"`
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`
}

// Active reports how many filter groups are set, counting the date range once.
func (c Criteria) Active() int {
	n := 0
	if c.Search != "" {
		n++
	}
	if !IsAnyValue(c.Status) {
		n++
	}
	if !IsAnyValue(c.Type) {
		n++
	}
	if c.DateFrom != nil || c.DateTo != nil {
		n++
	}
	return n
}

// NewCriteria builds criteria from raw filter bar values. Empty dates leave
// the bound open.
func NewCriteria(search, status, typ, dateFrom, dateTo string) (Criteria, error) {
	c := Criteria{
		Search: strings.TrimSpace(search),
		Status: strings.TrimSpace(status),
		Type:   strings.TrimSpace(typ),
	}
	if IsAnyValue(c.Status) {
		c.Status = ""
	}
	if IsAnyValue(c.Type) {
		c.Type = ""
	}
	for _, b := range []struct {
		raw string
		dst **time.Time
	}{{dateFrom, &c.DateFrom}, {dateTo, &c.DateTo}} {
		if strings.TrimSpace(b.raw) == "" {
			continue
		}
		t, err := ParseDate(b.raw)
		if err != nil {
			return Criteria{}, err
		}
		*b.dst = &t
	}
	return c, nil
}

// IsAnyValue reports whether a categorical filter value means "no filter".
func IsAnyValue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all", "none":
		return true
	}
	return false
}

// DateLayout is the display format of record dates.
const DateLayout = "02 Jan 2006"

var dateLayouts = []string{DateLayout, "2 Jan 2006", "2006-01-02"}

// ParseDate parses a record date in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// FormatDate formats t for display on a record.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidationError lists required fields that were left empty and fields
// holding a value outside their enumeration.
type ValidationError struct {
	Fields  []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Fields) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Fields, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid values: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}
