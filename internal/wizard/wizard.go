package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HerodesVe/fsr-go/internal/api"
	"github.com/HerodesVe/fsr-go/internal/models"
)

// Persister is the slice of the workflow store a wizard needs. Uploads go
// out immediately on selection; create/update happen on submit.
type Persister interface {
	Create(ctx context.Context, payload *models.WorkflowRecord) (*models.WorkflowRecord, error)
	Update(ctx context.Context, id string, payload *models.WorkflowRecord) (*models.WorkflowRecord, error)
	UploadDocument(ctx context.Context, id string, file api.File, key string) (*models.WorkflowRecord, error)
}

// Wizard owns the form data of one workflow instance and walks its steps.
// States are the step indices plus a terminal submitted state; Next is
// gated on presence validation of the active step, Back is always allowed
// and never clears entered data.
type Wizard struct {
	schema    Schema
	persist   Persister
	recordID  string
	data      models.FormData
	docs      []models.UploadedDocument
	statuses  map[string]models.StepState
	errs      map[string]string
	step      int
	submitted bool
}

// New starts an empty wizard for the given schema.
func New(schema Schema, persist Persister) (*Wizard, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	w := &Wizard{
		schema:   schema,
		persist:  persist,
		data:     models.FormData{},
		statuses: make(map[string]models.StepState, len(schema.Steps)),
		errs:     map[string]string{},
	}
	for i, step := range schema.Steps {
		if i == 0 {
			w.statuses[step.ID] = models.StepInProgress
		} else {
			w.statuses[step.ID] = models.StepPending
		}
	}
	return w, nil
}

// Hydrate starts a wizard from a fetched record, resuming at the first step
// that is not yet completed.
func Hydrate(schema Schema, persist Persister, rec *models.WorkflowRecord) (*Wizard, error) {
	w, err := New(schema, persist)
	if err != nil {
		return nil, err
	}
	w.recordID = rec.ID
	for k, v := range rec.Data {
		w.data[k] = v
	}
	w.docs = append(w.docs, rec.UploadedDocuments...)
	for i, step := range schema.Steps {
		if st, ok := rec.StepsStatus[step.ID]; ok {
			w.statuses[step.ID] = st
		}
		if w.statuses[step.ID] != models.StepCompleted {
			w.step = i
			w.statuses[step.ID] = models.StepInProgress
			return w, nil
		}
	}
	w.step = len(schema.Steps) - 1
	return w, nil
}

// StepIndex returns the active step index.
func (w *Wizard) StepIndex() int { return w.step }

// ActiveStep returns the step currently shown.
func (w *Wizard) ActiveStep() Step { return w.schema.Steps[w.step] }

// Submitted reports whether the wizard reached its terminal state.
func (w *Wizard) Submitted() bool { return w.submitted }

// RecordID returns the backing record's id, empty until a draft exists.
func (w *Wizard) RecordID() string { return w.recordID }

// Field returns the current value of a form field.
func (w *Wizard) Field(name string) any { return w.data[name] }

// SetField replaces exactly the named field, leaving every other field
// untouched. It triggers no network call.
func (w *Wizard) SetField(name string, value any) {
	w.data[name] = value
}

// Errors returns the validation errors of the last failed Next or Submit.
func (w *Wizard) Errors() map[string]string {
	out := make(map[string]string, len(w.errs))
	for k, v := range w.errs {
		out[k] = v
	}
	return out
}

// Documents returns the uploaded documents as last confirmed by the
// backend.
func (w *Wizard) Documents() []models.UploadedDocument {
	out := make([]models.UploadedDocument, len(w.docs))
	copy(out, w.docs)
	return out
}

// StepStatuses returns the status of every step keyed by step id.
func (w *Wizard) StepStatuses() map[string]models.StepState {
	out := make(map[string]models.StepState, len(w.statuses))
	for k, v := range w.statuses {
		out[k] = v
	}
	return out
}

// Progress returns the percentage of completed steps.
func (w *Wizard) Progress() int {
	done := 0
	for _, st := range w.statuses {
		if st == models.StepCompleted {
			done++
		}
	}
	return done * 100 / len(w.schema.Steps)
}

// Next validates presence of the active step's required fields and
// advances. A failed validation records per-field errors and does not
// advance.
func (w *Wizard) Next() bool {
	if w.submitted || w.step >= len(w.schema.Steps)-1 {
		return false
	}
	if !w.validateActive() {
		return false
	}
	cur := w.schema.Steps[w.step]
	w.statuses[cur.ID] = models.StepCompleted
	w.step++
	next := w.schema.Steps[w.step]
	if w.statuses[next.ID] == models.StepPending {
		w.statuses[next.ID] = models.StepInProgress
	}
	return true
}

// Back moves to the previous step. Always allowed; entered data and step
// statuses are kept.
func (w *Wizard) Back() bool {
	if w.submitted || w.step == 0 {
		return false
	}
	w.step--
	return true
}

// UploadDocument sends the file to the record's named slot immediately
// (upload on select). For a wizard that has no record yet, a draft record
// is created first so the upload has a destination. The server's returned
// document list replaces the local one wholesale; re-uploading a key
// replaces that slot server-side and the wizard simply adopts the result.
func (w *Wizard) UploadDocument(ctx context.Context, file api.File, key string) error {
	if w.submitted {
		return errors.New("wizard: already submitted")
	}
	if key == "" {
		return errors.New("wizard: empty upload key")
	}
	if w.recordID == "" {
		draft, err := w.persist.Create(ctx, w.assemble("draft"))
		if err != nil {
			return err
		}
		w.recordID = draft.ID
	}
	rec, err := w.persist.UploadDocument(ctx, w.recordID, file, key)
	if err != nil {
		return err
	}
	w.docs = append(w.docs[:0], rec.UploadedDocuments...)
	return nil
}

// Submit is only reachable from the last step. It validates the last step,
// persists the record (create, or update when a draft exists) and moves to
// the terminal state. On failure the wizard stays on the last step.
func (w *Wizard) Submit(ctx context.Context) (*models.WorkflowRecord, error) {
	if w.submitted {
		return nil, errors.New("wizard: already submitted")
	}
	if w.step != len(w.schema.Steps)-1 {
		return nil, fmt.Errorf("wizard: submit from step %d of %d", w.step+1, len(w.schema.Steps))
	}
	if !w.validateActive() {
		return nil, errors.New("wizard: required fields missing")
	}
	cur := w.schema.Steps[w.step]
	w.statuses[cur.ID] = models.StepCompleted

	payload := w.assemble("submitted")
	var rec *models.WorkflowRecord
	var err error
	if w.recordID == "" {
		rec, err = w.persist.Create(ctx, payload)
	} else {
		rec, err = w.persist.Update(ctx, w.recordID, payload)
	}
	if err != nil {
		// Stay on the last step; the step was verified complete.
		return nil, err
	}
	w.recordID = rec.ID
	w.submitted = true
	return rec, nil
}

func (w *Wizard) assemble(status string) *models.WorkflowRecord {
	data := make(models.FormData, len(w.data))
	for k, v := range w.data {
		data[k] = v
	}
	clientID, _ := w.data["client_id"].(string)
	return &models.WorkflowRecord{
		ID:                 w.recordID,
		ClientID:           clientID,
		Status:             status,
		ProgressPercentage: w.Progress(),
		Data:               data,
		StepsStatus:        w.StepStatuses(),
	}
}

// validateActive performs the presence-only check of the active step:
// required plain fields must be non-empty, required file-backed fields must
// have a document uploaded under their key.
func (w *Wizard) validateActive() bool {
	w.errs = map[string]string{}
	for _, f := range w.ActiveStep().Fields {
		if !f.Required {
			continue
		}
		if f.FileBacked() {
			if !w.hasDocument(f.UploadKey) {
				w.errs[f.Name] = "Este documento es obligatorio"
			}
			continue
		}
		if !present(w.data[f.Name]) {
			w.errs[f.Name] = "Este campo es obligatorio"
		}
	}
	return len(w.errs) == 0
}

func (w *Wizard) hasDocument(key string) bool {
	for _, d := range w.docs {
		if d.Key == key {
			return true
		}
	}
	return false
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		return len(t) > 0
	default:
		// Numbers and booleans count as present once set.
		return true
	}
}
