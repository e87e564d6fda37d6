package intake

import (
	"time"

	"github.com/ospworks/runway/internal/calendar"
)

// dateLayouts are the formats accepted for deadline fields, in the order
// people actually write them on forms.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1-2-2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses a deadline string in any accepted layout, truncated to
// midnight UTC. Returns false for empty or unrecognized input.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return calendar.Midnight(d), true
		}
	}
	return time.Time{}, false
}

func parseOptionalDate(s string) *time.Time {
	d, ok := ParseDate(s)
	if !ok {
		return nil
	}
	return &d
}

func formatOptionalDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(calendar.DateFormat)
}
