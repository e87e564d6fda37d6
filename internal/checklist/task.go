// Package checklist expands the declarative tier/task templates into
// concrete per-proposal task-tracking documents. Anchor dates come from a
// backward business-day cascade against the holiday set; the tier templates
// themselves are fixed at build time, declared in CUE and compiled once at
// startup.
package checklist

import "fmt"

// Task status vocabulary.
const (
	StatusNotStarted    = "Not Started"
	StatusInProgress    = "In Progress"
	StatusCompleted     = "Completed"
	StatusNotApplicable = "Not Applicable"
)

// Task is one leaf row of a tier template.
type Task struct {
	// Label is the task text shown in the document.
	Label string `json:"label"`
	// NoteURL links supporting material; empty for most tasks.
	NoteURL string `json:"noteURL"`
	// Sub marks an indented sub-checklist item. Contiguous runs of sub
	// items form one collapsible group under the preceding header row.
	Sub bool `json:"sub"`
	// Header marks a bold parent row that introduces a sub-checklist. It
	// carries no status and no deadline of its own.
	Header bool `json:"header"`
}

// Section is one tier of the template. Every leaf task in a section shows
// the section's single computed anchor date.
type Section struct {
	Title string `json:"title"`
	// BusinessDaysBeforeNextAnchor is the backward offset feeding the
	// cascade: how many business days this section's anchor precedes the
	// next anchor in the chain (or the resolved deadline, for the last
	// chained section and for FromDeadline sections).
	BusinessDaysBeforeNextAnchor int `json:"businessDaysBeforeNextAnchor"`
	// FromDeadline anchors this section directly off the resolved
	// deadline instead of the tier chain.
	FromDeadline bool `json:"fromDeadline"`
	Tasks        []Task `json:"tasks"`
}

// Template is the ordered sequence of sections making up one document.
type Template struct {
	Sections []Section
}

// Validate checks the structural invariants the builder relies on.
func (t Template) Validate() error {
	if len(t.Sections) == 0 {
		return fmt.Errorf("template has no sections")
	}
	chained := 0
	for i, sec := range t.Sections {
		if sec.Title == "" {
			return fmt.Errorf("section %d: empty title", i)
		}
		if sec.BusinessDaysBeforeNextAnchor < 0 {
			return fmt.Errorf("section %q: negative business-day offset", sec.Title)
		}
		if !sec.FromDeadline {
			chained++
		}
		for j, task := range sec.Tasks {
			if task.Label == "" {
				return fmt.Errorf("section %q: task %d has empty label", sec.Title, j)
			}
			if task.Header && task.Sub {
				return fmt.Errorf("section %q: task %q is both header and sub item", sec.Title, task.Label)
			}
		}
	}
	if chained == 0 {
		return fmt.Errorf("template has no chained sections")
	}
	return nil
}
