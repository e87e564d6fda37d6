package checklist

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed templates/checklist.cue
var templateCUE string

// LoadTemplate compiles the embedded CUE tier definition into a Template.
// The CUE schema enforces field types and the non-negative offset bound;
// Template.Validate re-checks the structural invariants on the decoded
// result.
func LoadTemplate() (Template, error) {
	return compileTemplate(templateCUE, "templates/checklist.cue")
}

// LoadTemplateFile compiles a CUE tier definition from disk, for deployments
// that override the built-in task lists or offsets.
func LoadTemplateFile(path string) (Template, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("read checklist template: %w", err)
	}
	return compileTemplate(string(src), path)
}

func compileTemplate(src, filename string) (Template, error) {
	ctx := cuecontext.New()
	value := ctx.CompileString(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return Template{}, fmt.Errorf("compile checklist template: %w", err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return Template{}, fmt.Errorf("validate checklist template: %w", err)
	}

	sectionsVal := value.LookupPath(cue.ParsePath("sections"))
	if !sectionsVal.Exists() {
		return Template{}, fmt.Errorf("checklist template: no sections field")
	}

	var sections []Section
	if err := sectionsVal.Decode(&sections); err != nil {
		return Template{}, fmt.Errorf("decode checklist template: %w", err)
	}

	t := Template{Sections: sections}
	if err := t.Validate(); err != nil {
		return Template{}, fmt.Errorf("checklist template: %w", err)
	}
	return t, nil
}
