package calendar

import (
	"strings"
	"time"
)

// Event is a raw all-day calendar event as read from the event source.
type Event struct {
	Title string
	Date  time.Time
}

// federalKeywords is the allow-list: an event qualifies only if its
// lower-cased title contains at least one of these.
var federalKeywords = []string{
	"new year",
	"martin luther king",
	"washington's birthday",
	"presidents",
	"memorial day",
	"juneteenth",
	"independence day",
	"labor day",
	"columbus day",
	"indigenous peoples",
	"veterans day",
	"thanksgiving",
	"christmas",
}

// observanceKeywords is the deny-list, checked only after an allow-list
// match. It drops shifted observances and informal adjacent days that the
// source calendar carries alongside the actual federal holidays.
var observanceKeywords = []string{
	"observed",
	"eve",
	"day after",
	"shopping",
	"bank",
}

// Qualifies reports whether an event title passes the federal-holiday
// filter: at least one allow-list keyword and no deny-list keyword.
func Qualifies(title string) bool {
	t := strings.ToLower(title)
	allowed := false
	for _, kw := range federalKeywords {
		if strings.Contains(t, kw) {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	for _, kw := range observanceKeywords {
		if strings.Contains(t, kw) {
			return false
		}
	}
	return true
}

// Seed filters raw calendar events down to the conservative federal-holiday
// subset and builds the exclusion Set from them. Events that match neither
// list are dropped; duplicates by date resolve to the first occurrence.
// Zero qualifying events yield an empty set, not an error.
func Seed(events []Event) Set {
	var holidays []Holiday
	for _, ev := range events {
		if !Qualifies(ev.Title) {
			continue
		}
		holidays = append(holidays, Holiday{Date: ev.Date, Label: ev.Title})
	}
	return NewSet(holidays)
}
