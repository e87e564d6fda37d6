package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplate(t *testing.T) {
	tmpl, err := LoadTemplate()
	require.NoError(t, err)

	require.Len(t, tmpl.Sections, 4)
	assert.Equal(t, "Full Budget Draft", tmpl.Sections[0].Title)
	assert.Equal(t, 5, tmpl.Sections[0].BusinessDaysBeforeNextAnchor)
	assert.Equal(t, "Tier 1", tmpl.Sections[1].Title)
	assert.Equal(t, 4, tmpl.Sections[1].BusinessDaysBeforeNextAnchor)
	assert.Equal(t, "Tier 2", tmpl.Sections[2].Title)
	assert.Equal(t, 1, tmpl.Sections[2].BusinessDaysBeforeNextAnchor)
	assert.Equal(t, "Personnel", tmpl.Sections[3].Title)
	assert.True(t, tmpl.Sections[3].FromDeadline)
}

func TestLoadTemplate_DefaultsApplied(t *testing.T) {
	tmpl, err := LoadTemplate()
	require.NoError(t, err)

	first := tmpl.Sections[0].Tasks[0]
	assert.False(t, first.Sub)
	assert.False(t, first.Header)
	assert.Empty(t, first.NoteURL)

	assert.NotEmpty(t, tmpl.Sections[0].Tasks[1].NoteURL)
}

func TestCompileTemplate_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"negative offset", `
sections: [{title: "A", businessDaysBeforeNextAnchor: -1, tasks: [{label: "x"}]}]
#Section: {title: string, businessDaysBeforeNextAnchor: int & >=0, fromDeadline: *false | bool, tasks: [...]}
sections: [...#Section]
`},
		{"empty title", `sections: [{title: "", businessDaysBeforeNextAnchor: 1, tasks: []}]`},
		{"no sections", `other: 1`},
		{"non-concrete", `sections: [{title: string, businessDaysBeforeNextAnchor: 1, tasks: []}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileTemplate(tt.src, tt.name+".cue")
			assert.Error(t, err)
		})
	}
}

func TestTemplate_Validate(t *testing.T) {
	valid := Template{Sections: []Section{
		{Title: "A", BusinessDaysBeforeNextAnchor: 1, Tasks: []Task{{Label: "x"}}},
	}}
	assert.NoError(t, valid.Validate())

	assert.Error(t, Template{}.Validate(), "no sections")

	onlyIndependent := Template{Sections: []Section{
		{Title: "A", BusinessDaysBeforeNextAnchor: 1, FromDeadline: true},
	}}
	assert.Error(t, onlyIndependent.Validate(), "no chained sections")

	headerAndSub := Template{Sections: []Section{
		{Title: "A", Tasks: []Task{{Label: "x", Header: true, Sub: true}}},
	}}
	assert.Error(t, headerAndSub.Validate())
}
