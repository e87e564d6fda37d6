// Package docs is the generated-document boundary: a sink contract with a
// file-backed implementation, the YAML wire form of a document, and the
// reconcile pass that keeps every document's embedded holiday copy in step
// with the canonical set.
package docs

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ospworks/runway/internal/calendar"
	"github.com/ospworks/runway/internal/checklist"
)

type wireDocument struct {
	Name     string       `yaml:"name"`
	Header   wireHeader   `yaml:"header"`
	Rows     []wireRow    `yaml:"rows"`
	Groups   []wireGroup  `yaml:"groups,omitempty"`
	Holidays wireHolidays `yaml:"holidays"`
}

type wireHeader struct {
	PI                 string   `yaml:"pi"`
	Email              string   `yaml:"email,omitempty"`
	Sponsor            string   `yaml:"sponsor"`
	CoInvestigators    []string `yaml:"co_investigators,omitempty"`
	OfficialDeadline   string   `yaml:"official_deadline,omitempty"`
	LeadOrgDeadline    string   `yaml:"lead_org_deadline,omitempty"`
	ExpectedSubmission string   `yaml:"expected_submission,omitempty"`
	Deadline           string   `yaml:"deadline"`
}

type wireRow struct {
	Section string `yaml:"section"`
	Label   string `yaml:"label"`
	NoteURL string `yaml:"note_url,omitempty"`
	Due     string `yaml:"due,omitempty"`
	Status  string `yaml:"status,omitempty"`
	Sub     bool   `yaml:"sub,omitempty"`
	Header  bool   `yaml:"header,omitempty"`
}

type wireGroup struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

type wireHolidays struct {
	Fingerprint string        `yaml:"fingerprint"`
	Entries     []wireHoliday `yaml:"entries"`
}

type wireHoliday struct {
	Date  string `yaml:"date"`
	Label string `yaml:"label"`
}

// Marshal renders a document to its YAML wire form.
func Marshal(doc *checklist.Document) ([]byte, error) {
	w := wireDocument{
		Name: doc.Name,
		Header: wireHeader{
			PI:                 doc.Header.PI,
			Email:              doc.Header.Email,
			Sponsor:            doc.Header.Sponsor,
			CoInvestigators:    doc.Header.CoInvestigators,
			OfficialDeadline:   formatDate(doc.Header.OfficialDeadline),
			LeadOrgDeadline:    formatDate(doc.Header.LeadOrgDeadline),
			ExpectedSubmission: formatDate(doc.Header.ExpectedSubmission),
			Deadline:           doc.Header.Deadline.Format(calendar.DateFormat),
		},
		Holidays: wireHolidays{
			Fingerprint: doc.Fingerprint,
			Entries:     wireHolidayEntries(doc.Holidays),
		},
	}
	for _, row := range doc.Rows {
		w.Rows = append(w.Rows, wireRow{
			Section: row.Section,
			Label:   row.Label,
			NoteURL: row.NoteURL,
			Due:     formatDate(row.Due),
			Status:  row.Status,
			Sub:     row.Sub,
			Header:  row.Header,
		})
	}
	for _, g := range doc.Groups {
		w.Groups = append(w.Groups, wireGroup{Start: g.Start, End: g.End})
	}
	return yaml.Marshal(w)
}

// Unmarshal parses the YAML wire form back into a document.
func Unmarshal(data []byte) (*checklist.Document, error) {
	var w wireDocument
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := &checklist.Document{Name: w.Name}
	var err error
	if doc.Header.OfficialDeadline, err = parseOptionalDate(w.Header.OfficialDeadline); err != nil {
		return nil, err
	}
	if doc.Header.LeadOrgDeadline, err = parseOptionalDate(w.Header.LeadOrgDeadline); err != nil {
		return nil, err
	}
	if doc.Header.ExpectedSubmission, err = parseOptionalDate(w.Header.ExpectedSubmission); err != nil {
		return nil, err
	}
	if w.Header.Deadline != "" {
		d, err := calendar.ParseDate(w.Header.Deadline)
		if err != nil {
			return nil, fmt.Errorf("document %q: bad deadline: %w", w.Name, err)
		}
		doc.Header.Deadline = d
	}
	doc.Header.PI = w.Header.PI
	doc.Header.Email = w.Header.Email
	doc.Header.Sponsor = w.Header.Sponsor
	doc.Header.CoInvestigators = w.Header.CoInvestigators

	for _, row := range w.Rows {
		due, err := parseOptionalDate(row.Due)
		if err != nil {
			return nil, fmt.Errorf("document %q: row %q: %w", w.Name, row.Label, err)
		}
		doc.Rows = append(doc.Rows, checklist.Row{
			Section: row.Section,
			Label:   row.Label,
			NoteURL: row.NoteURL,
			Due:     due,
			Status:  row.Status,
			Sub:     row.Sub,
			Header:  row.Header,
		})
	}
	for _, g := range w.Groups {
		doc.Groups = append(doc.Groups, checklist.Group{Start: g.Start, End: g.End})
	}

	holidays := make([]calendar.Holiday, 0, len(w.Holidays.Entries))
	for _, h := range w.Holidays.Entries {
		d, err := calendar.ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("document %q: bad holiday date %q: %w", w.Name, h.Date, err)
		}
		holidays = append(holidays, calendar.Holiday{Date: d, Label: h.Label})
	}
	doc.Holidays = calendar.NewSet(holidays)
	doc.Fingerprint = w.Holidays.Fingerprint
	return doc, nil
}

func wireHolidayEntries(set calendar.Set) []wireHoliday {
	entries := make([]wireHoliday, 0, set.Len())
	for _, h := range set.Entries() {
		entries = append(entries, wireHoliday{Date: h.Date.Format(calendar.DateFormat), Label: h.Label})
	}
	return entries
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(calendar.DateFormat)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", s, err)
	}
	return &d, nil
}
