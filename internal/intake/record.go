// Package intake models proposal intent records and the table boundary they
// cross. Column-name lookup happens once, at the read boundary; everything
// downstream works with typed records and stable content-derived keys.
package intake

import (
	"time"

	"github.com/ospworks/runway/internal/canon"
	"github.com/ospworks/runway/internal/extract"
)

// Domain prefix for record keys.
const recordKeyDomain = "runway/record/v1"

// Record is one structured proposal-intent row.
type Record struct {
	PI                 string
	Email              string
	Sponsor            string
	CoInvestigators    string
	OfficialDeadline   *time.Time
	LeadOrgDeadline    *time.Time
	ExpectedSubmission *time.Time
	Generated          bool
}

// Eligible reports whether the record qualifies for document generation:
// a principal investigator, at least one deadline field, and no document
// generated yet.
func (r Record) Eligible() bool {
	if r.PI == "" || r.Generated {
		return false
	}
	return r.OfficialDeadline != nil || r.LeadOrgDeadline != nil || r.ExpectedSubmission != nil
}

// Key returns the record's stable opaque identifier: a content hash over the
// identifying fields. Row position in the source table plays no part, so
// reordering the table cannot corrupt ledger state keyed by it. The
// Generated flag is excluded so marking a record done does not change its
// identity.
func (r Record) Key() string {
	fields := []string{
		r.PI,
		r.Email,
		r.Sponsor,
		formatOptionalDate(r.OfficialDeadline),
		formatOptionalDate(r.LeadOrgDeadline),
		formatOptionalDate(r.ExpectedSubmission),
	}
	return canon.HashWithDomain(recordKeyDomain, canon.StringArray(fields))
}

// Resolve picks the record's single authoritative deadline under the fixed
// priority order: lead organization deadline, then official deadline, then
// expected submission date. Returns false only when all three are absent,
// which the eligibility invariant rules out for records entering generation.
func Resolve(r Record) (time.Time, bool) {
	switch {
	case r.LeadOrgDeadline != nil:
		return *r.LeadOrgDeadline, true
	case r.OfficialDeadline != nil:
		return *r.OfficialDeadline, true
	case r.ExpectedSubmission != nil:
		return *r.ExpectedSubmission, true
	}
	return time.Time{}, false
}

// Questions maps record fields to the exact question labels used on the
// intake form. The labels double as the ordered list handed to the
// extractor; order matters there, so longer labels that share a prefix with
// shorter ones must come first.
type Questions struct {
	Email              string `yaml:"email"`
	Sponsor            string `yaml:"sponsor"`
	CoInvestigators    string `yaml:"co_investigators"`
	OfficialDeadline   string `yaml:"official_deadline"`
	LeadOrgDeadline    string `yaml:"lead_org_deadline"`
	ExpectedSubmission string `yaml:"expected_submission"`
}

// Labels returns the question labels in extraction order.
func (q Questions) Labels() []string {
	return []string{
		q.Email,
		q.Sponsor,
		q.CoInvestigators,
		q.OfficialDeadline,
		q.LeadOrgDeadline,
		q.ExpectedSubmission,
	}
}

// FromAnswers builds a Record from extracted answers. The PI name comes from
// the subject line, not the answer map. Unparseable or absent dates are left
// nil; eligibility screening happens later.
func FromAnswers(pi string, answers extract.Answers, q Questions) Record {
	return Record{
		PI:                 pi,
		Email:              answers[q.Email],
		Sponsor:            answers[q.Sponsor],
		CoInvestigators:    answers[q.CoInvestigators],
		OfficialDeadline:   parseOptionalDate(answers[q.OfficialDeadline]),
		LeadOrgDeadline:    parseOptionalDate(answers[q.LeadOrgDeadline]),
		ExpectedSubmission: parseOptionalDate(answers[q.ExpectedSubmission]),
	}
}
