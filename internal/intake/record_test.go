package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospworks/runway/internal/calendar"
	"github.com/ospworks/runway/internal/extract"
)

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestRecord_Eligible(t *testing.T) {
	official := mustDate(t, "2025-10-30")

	tests := []struct {
		name string
		r    Record
		want bool
	}{
		{"pi and official deadline", Record{PI: "Jane Smith", OfficialDeadline: official}, true},
		{"pi and lead org deadline", Record{PI: "Jane Smith", LeadOrgDeadline: official}, true},
		{"pi and expected submission", Record{PI: "Jane Smith", ExpectedSubmission: official}, true},
		{"missing pi", Record{OfficialDeadline: official}, false},
		{"no deadlines", Record{PI: "Jane Smith"}, false},
		{"already generated", Record{PI: "Jane Smith", OfficialDeadline: official, Generated: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Eligible())
		})
	}
}

func TestResolve_PriorityOrder(t *testing.T) {
	lead := mustDate(t, "2025-10-27")
	official := mustDate(t, "2025-10-30")
	expected := mustDate(t, "2025-10-28")

	// All eight presence combinations; lead > official > expected.
	tests := []struct {
		name string
		r    Record
		want *time.Time
	}{
		{"all three", Record{LeadOrgDeadline: lead, OfficialDeadline: official, ExpectedSubmission: expected}, lead},
		{"lead and official", Record{LeadOrgDeadline: lead, OfficialDeadline: official}, lead},
		{"lead and expected", Record{LeadOrgDeadline: lead, ExpectedSubmission: expected}, lead},
		{"lead only", Record{LeadOrgDeadline: lead}, lead},
		{"official and expected", Record{OfficialDeadline: official, ExpectedSubmission: expected}, official},
		{"official only", Record{OfficialDeadline: official}, official},
		{"expected only", Record{ExpectedSubmission: expected}, expected},
		{"none", Record{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.r)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, *tt.want, got)
		})
	}
}

func TestRecord_KeyStable(t *testing.T) {
	r := Record{PI: "Jane Smith", Email: "jsmith@example.edu", Sponsor: "NSF", OfficialDeadline: mustDate(t, "2025-10-30")}

	assert.Equal(t, r.Key(), r.Key())

	// The generated flag does not participate in identity.
	done := r
	done.Generated = true
	assert.Equal(t, r.Key(), done.Key())

	// Content changes do.
	other := r
	other.Sponsor = "DOE"
	assert.NotEqual(t, r.Key(), other.Key())
}

func TestFromAnswers(t *testing.T) {
	q := Questions{
		Email:              "What is your email address",
		Sponsor:            "Who is the sponsor",
		CoInvestigators:    "List any co-investigators",
		OfficialDeadline:   "Official deadline",
		LeadOrgDeadline:    "Lead organization deadline",
		ExpectedSubmission: "Expected submission date",
	}
	answers := extract.Answers{
		"What is your email address": "jsmith@example.edu",
		"Who is the sponsor":         "NSF",
		"List any co-investigators":  "",
		"Official deadline":          "10/30/2025",
		"Lead organization deadline": "",
		"Expected submission date":   "sometime in fall",
	}

	r := FromAnswers("Jane Smith", answers, q)

	assert.Equal(t, "Jane Smith", r.PI)
	assert.Equal(t, "jsmith@example.edu", r.Email)
	assert.Equal(t, "NSF", r.Sponsor)
	assert.Equal(t, "", r.CoInvestigators)
	require.NotNil(t, r.OfficialDeadline)
	assert.Equal(t, *mustDate(t, "2025-10-30"), *r.OfficialDeadline)
	assert.Nil(t, r.LeadOrgDeadline)
	assert.Nil(t, r.ExpectedSubmission, "unparseable date stays nil")
}

func TestParseDate_Layouts(t *testing.T) {
	want := *mustDate(t, "2025-10-30")
	for _, input := range []string{"2025-10-30", "10/30/2025", "10-30-2025", "October 30, 2025", "Oct 30, 2025"} {
		got, ok := ParseDate(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, ok := ParseDate("next thursday")
	assert.False(t, ok)
}
