package checklist

import (
	"strings"
	"time"
)

// NameDateFormat is the date segment of a derived document name.
const NameDateFormat = "01-02-2006"

const maxNameSegment = 50

// forbiddenNameChars are characters replaced with '_' in name segments so
// derived names stay valid file names everywhere.
const forbiddenNameChars = `/\:*?"<>|`

// DeriveName builds the document name for a proposal: PI and sponsor each
// sanitized and truncated to 50 characters, joined with " - ", followed by
// the resolved deadline as MM-DD-YYYY, or no date segment when the deadline
// is absent.
func DeriveName(pi, sponsor string, deadline *time.Time) string {
	parts := []string{sanitizeSegment(pi), sanitizeSegment(sponsor)}
	if deadline != nil {
		parts = append(parts, deadline.Format(NameDateFormat))
	}
	return strings.Join(parts, " - ")
}

func sanitizeSegment(s string) string {
	var b strings.Builder
	count := 0
	for _, r := range strings.TrimSpace(s) {
		if count == maxNameSegment {
			break
		}
		if r < 0x20 || strings.ContainsRune(forbiddenNameChars, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
		count++
	}
	return b.String()
}
