package intake

import (
	"fmt"
	"strings"
	"time"
)

// Table is the proposal intake dataset boundary. One snapshot is read at the
// start of a run; the generated flag is written back per record as documents
// land.
type Table interface {
	// Snapshot returns all records in source order.
	Snapshot() ([]Record, error)
	// Append adds a newly extracted record to the table.
	Append(r Record) error
	// MarkGenerated sets the generated flag on the record with the given
	// key. Unknown keys are an error.
	MarkGenerated(key string) error
}

// Column names looked up in the intake table header. Order in the file is
// not assumed; a column absent from the header reads as always-empty.
const (
	ColPI                 = "Principal Investigator"
	ColEmail              = "Email"
	ColSponsor            = "Sponsor"
	ColCoInvestigators    = "Co-Investigators"
	ColOfficialDeadline   = "Official Deadline"
	ColLeadOrgDeadline    = "Lead Organization Deadline"
	ColExpectedSubmission = "Expected Submission"
	ColGenerated          = "Generated"
)

func defaultHeader() []string {
	return []string{
		ColPI, ColEmail, ColSponsor, ColCoInvestigators,
		ColOfficialDeadline, ColLeadOrgDeadline, ColExpectedSubmission,
		ColGenerated,
	}
}

// columnIndex maps header names to positions. Header cells are trimmed;
// lookup is exact after that.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func recordFromRow(row []string, idx map[string]int) (Record, error) {
	r := Record{
		PI:              cell(row, idx, ColPI),
		Email:           cell(row, idx, ColEmail),
		Sponsor:         cell(row, idx, ColSponsor),
		CoInvestigators: cell(row, idx, ColCoInvestigators),
		Generated:       parseBool(cell(row, idx, ColGenerated)),
	}
	var err error
	if r.OfficialDeadline, err = parseDateCell(row, idx, ColOfficialDeadline); err != nil {
		return Record{}, err
	}
	if r.LeadOrgDeadline, err = parseDateCell(row, idx, ColLeadOrgDeadline); err != nil {
		return Record{}, err
	}
	if r.ExpectedSubmission, err = parseDateCell(row, idx, ColExpectedSubmission); err != nil {
		return Record{}, err
	}
	return r, nil
}

func parseDateCell(row []string, idx map[string]int, col string) (*time.Time, error) {
	s := cell(row, idx, col)
	if s == "" {
		return nil, nil
	}
	d, ok := ParseDate(s)
	if !ok {
		return nil, fmt.Errorf("column %q: bad date %q", col, s)
	}
	return &d, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true
	}
	return false
}

func formatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
