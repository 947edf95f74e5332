// Package wizard is the generic step-wizard engine behind every permit
// workflow. A Schema declares the steps and fields once; the same engine
// runs all permit types.
package wizard

import "fmt"

// Field is one form field of a step. A field is either plain (sent in the
// JSON body) or file-backed (routed by UploadKey into a named document
// slot) — never both.
type Field struct {
	Name      string
	Label     string
	Required  bool
	UploadKey string
}

// FileBacked reports whether the field stores an uploaded document.
func (f Field) FileBacked() bool { return f.UploadKey != "" }

// Step is one screen of the wizard.
type Step struct {
	ID     string
	Title  string
	Fields []Field
}

// Schema declares a whole workflow: the backend resource it persists to and
// the ordered steps it walks through.
type Schema struct {
	Kind     string
	Title    string
	Resource string
	Steps    []Step
}

// Validate checks the structural invariants: at least one step, unique step
// ids, and no field that is both plain and file-backed (file-backed fields
// must not collide with plain field names).
func (s *Schema) Validate() error {
	if s.Resource == "" {
		return fmt.Errorf("wizard: schema %q has no resource", s.Kind)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("wizard: schema %q has no steps", s.Kind)
	}
	stepIDs := make(map[string]bool, len(s.Steps))
	fieldNames := make(map[string]bool)
	for _, step := range s.Steps {
		if step.ID == "" {
			return fmt.Errorf("wizard: schema %q has a step without id", s.Kind)
		}
		if stepIDs[step.ID] {
			return fmt.Errorf("wizard: schema %q repeats step %q", s.Kind, step.ID)
		}
		stepIDs[step.ID] = true
		for _, f := range step.Fields {
			if f.Name == "" {
				return fmt.Errorf("wizard: schema %q step %q has a field without name", s.Kind, step.ID)
			}
			if fieldNames[f.Name] {
				return fmt.Errorf("wizard: schema %q repeats field %q", s.Kind, f.Name)
			}
			fieldNames[f.Name] = true
		}
	}
	return nil
}
