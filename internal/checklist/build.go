package checklist

import (
	"strings"
	"time"

	"github.com/ospworks/runway/internal/calendar"
	"github.com/ospworks/runway/internal/intake"
)

// Row is one rendered task row. Header-only rows carry neither a status nor
// a due date.
type Row struct {
	Section string
	Label   string
	NoteURL string
	Due     *time.Time
	Status  string
	Sub     bool
	Header  bool
}

// Group marks a contiguous run of sub-item rows, by inclusive row index,
// for collapsible grouping in the rendered document. Each contiguous run
// yields exactly one group, including a run that ends the task list.
type Group struct {
	Start int
	End   int
}

// DocHeader is the document's identity block, substituted from the source
// record.
type DocHeader struct {
	PI                 string
	Email              string
	Sponsor            string
	CoInvestigators    []string
	OfficialDeadline   *time.Time
	LeadOrgDeadline    *time.Time
	ExpectedSubmission *time.Time
	Deadline           time.Time
}

// Document is the rendered task-tracking document for one proposal,
// carrying its own copy of the holiday set and that copy's fingerprint.
type Document struct {
	Name        string
	Header      DocHeader
	Rows        []Row
	Groups      []Group
	Holidays    calendar.Set
	Fingerprint string
}

// Build expands the template into a concrete document for the record,
// anchored on the given resolved deadline and holiday set snapshot. Every
// leaf task inherits its section's computed anchor date; the builder has no
// side effects, document I/O belongs to the sink.
func Build(r intake.Record, deadline time.Time, set calendar.Set, t Template) *Document {
	deadline = calendar.Midnight(deadline)
	anchors := t.Anchors(deadline, set)

	doc := &Document{
		Name: DeriveName(r.PI, r.Sponsor, &deadline),
		Header: DocHeader{
			PI:                 r.PI,
			Email:              r.Email,
			Sponsor:            r.Sponsor,
			CoInvestigators:    splitNames(r.CoInvestigators),
			OfficialDeadline:   r.OfficialDeadline,
			LeadOrgDeadline:    r.LeadOrgDeadline,
			ExpectedSubmission: r.ExpectedSubmission,
			Deadline:           deadline,
		},
		Holidays:    set,
		Fingerprint: set.Fingerprint(),
	}

	for i, sec := range t.Sections {
		anchor := anchors[i]
		for _, task := range sec.Tasks {
			row := Row{
				Section: sec.Title,
				Label:   task.Label,
				NoteURL: task.NoteURL,
				Sub:     task.Sub,
				Header:  task.Header,
			}
			if !task.Header {
				due := anchor
				row.Due = &due
				row.Status = StatusNotStarted
			}
			doc.Rows = append(doc.Rows, row)
		}
	}

	doc.Groups = groupRows(doc.Rows)
	return doc
}

// groupRows finds every contiguous run of sub-item rows and emits one group
// per run. The post-loop flush covers a run that reaches the end of the
// list.
func groupRows(rows []Row) []Group {
	var groups []Group
	start := -1
	for i, row := range rows {
		if row.Sub {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			groups = append(groups, Group{Start: start, End: i - 1})
			start = -1
		}
	}
	if start >= 0 {
		groups = append(groups, Group{Start: start, End: len(rows) - 1})
	}
	return groups
}

// splitNames splits a delimited co-investigator field into individual names.
// An empty field is an empty list, not an error.
func splitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	split := func(r rune) bool { return r == ';' || r == ',' }
	var names []string
	for _, part := range strings.FieldsFunc(s, split) {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
