package checklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/ospworks/runway/internal/calendar"
)

// String renders the document as deterministic plain text: the identity
// block, then each section's rows with status and due date, then the group
// ranges. The golden tests compare against it.
func (d *Document) String() string {
	var b strings.Builder

	b.WriteString(d.Name)
	b.WriteByte('\n')

	b.WriteString("PI: " + d.Header.PI)
	if d.Header.Email != "" {
		b.WriteString(" <" + d.Header.Email + ">")
	}
	b.WriteByte('\n')
	b.WriteString("Sponsor: " + d.Header.Sponsor + "\n")
	if len(d.Header.CoInvestigators) > 0 {
		b.WriteString("Co-Investigators: " + strings.Join(d.Header.CoInvestigators, ", ") + "\n")
	}
	writeDate(&b, "Official Deadline", d.Header.OfficialDeadline)
	writeDate(&b, "Lead Organization Deadline", d.Header.LeadOrgDeadline)
	writeDate(&b, "Expected Submission", d.Header.ExpectedSubmission)
	b.WriteString("Deadline: " + d.Header.Deadline.Format(calendar.DateFormat) + "\n")
	b.WriteString("Holiday Fingerprint: " + d.Fingerprint + "\n")

	section := ""
	for _, row := range d.Rows {
		if row.Section != section {
			section = row.Section
			b.WriteString("\n[" + section + "]\n")
		}
		switch {
		case row.Header:
			b.WriteString("  " + row.Label + ":\n")
		case row.Sub:
			b.WriteString("    - " + rowText(row) + "\n")
		default:
			b.WriteString("  - " + rowText(row) + "\n")
		}
	}

	if len(d.Groups) > 0 {
		b.WriteString("\nGroups:")
		for _, g := range d.Groups {
			fmt.Fprintf(&b, " %d-%d", g.Start, g.End)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func rowText(row Row) string {
	s := "[" + row.Status + "]"
	// Built documents always carry a due date on task rows, but a document
	// read back from a hand-edited file may not.
	if row.Due != nil {
		s += " " + row.Due.Format(calendar.DateFormat)
	}
	s += " " + row.Label
	if row.NoteURL != "" {
		s += " (" + row.NoteURL + ")"
	}
	return s
}

func writeDate(b *strings.Builder, label string, d *time.Time) {
	if d == nil {
		return
	}
	b.WriteString(label + ": " + d.Format(calendar.DateFormat) + "\n")
}
