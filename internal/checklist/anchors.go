package checklist

import (
	"time"

	"github.com/ospworks/runway/internal/calendar"
)

// Anchors computes each section's anchor date for the given resolved
// deadline. Chained sections are walked from the end of the template: the
// last chained section anchors its offset in business days before the
// deadline, and each earlier chained section anchors its offset before its
// successor's anchor. FromDeadline sections form independent chains, each
// anchored directly off the deadline.
//
// Because Back never moves forward, the chained anchors are monotonically
// non-increasing from the deadline back through the first section.
func (t Template) Anchors(deadline time.Time, set calendar.Set) []time.Time {
	anchors := make([]time.Time, len(t.Sections))
	next := calendar.Midnight(deadline)
	for i := len(t.Sections) - 1; i >= 0; i-- {
		sec := t.Sections[i]
		if sec.FromDeadline {
			anchors[i] = calendar.Back(deadline, sec.BusinessDaysBeforeNextAnchor, set)
			continue
		}
		next = calendar.Back(next, sec.BusinessDaysBeforeNextAnchor, set)
		anchors[i] = next
	}
	return anchors
}
