// Package calendar holds the business-day exclusion calendar: an ordered,
// date-deduplicated set of holidays, backward business-day arithmetic against
// it, the seeding filter that builds it from raw calendar events, and the
// content fingerprint used to detect drift between the canonical set and the
// copies embedded in generated documents.
package calendar

import (
	"sort"
	"time"
)

// DateFormat is the storage format for calendar dates. Dates carry no time
// component; every time.Time in this package is midnight UTC.
const DateFormat = "2006-01-02"

// Holiday is a single excluded date with its display label.
type Holiday struct {
	Date  time.Time
	Label string
}

// Set is an ordered-by-date collection of holidays with at most one entry
// per date. Construct with NewSet; the zero value is a valid empty set.
type Set struct {
	entries []Holiday
	dates   map[string]bool
}

// NewSet builds a Set from the given holidays, deduplicating by calendar
// date (first occurrence wins) and sorting ascending. Input order only
// matters for resolving duplicates.
func NewSet(holidays []Holiday) Set {
	s := Set{dates: make(map[string]bool, len(holidays))}
	for _, h := range holidays {
		d := Midnight(h.Date)
		key := d.Format(DateFormat)
		if s.dates[key] {
			continue
		}
		s.dates[key] = true
		s.entries = append(s.entries, Holiday{Date: d, Label: h.Label})
	}
	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].Date.Before(s.entries[j].Date)
	})
	return s
}

// Entries returns the holidays in ascending date order.
// The returned slice is shared; callers must not modify it.
func (s Set) Entries() []Holiday {
	return s.entries
}

// Len returns the number of holidays in the set.
func (s Set) Len() int {
	return len(s.entries)
}

// Contains reports whether the given date (time component ignored) is in
// the set.
func (s Set) Contains(d time.Time) bool {
	if s.dates == nil {
		return false
	}
	return s.dates[Midnight(d).Format(DateFormat)]
}

// Midnight truncates t to its calendar date at midnight UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a date in DateFormat.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
