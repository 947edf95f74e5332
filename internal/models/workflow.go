package models

// StepState is the status of a single wizard step as persisted on the record.
type StepState string

const (
	StepPending    StepState = "Pendiente"
	StepInProgress StepState = "En progreso"
	StepCompleted  StepState = "Completada"
)

// UploadedDocument is one entry of the backend's authoritative document list.
// Key names the slot the file was routed into.
type UploadedDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
}

// FormData is the mutable form state of one workflow instance. Fields are
// scalars or slices of uploaded documents; a field is either file-backed
// (routed by an upload key) or plain, never both.
type FormData map[string]any

// WorkflowRecord is a server-persisted permit workflow instance
// (anteproyecto, proyecto, demolición, ...). The backend is the sole source
// of truth for Status and UploadedDocuments.
type WorkflowRecord struct {
	ID                 string               `json:"id,omitempty"`
	InstanceCode       string               `json:"instance_code,omitempty"`
	ClientID           string               `json:"client_id"`
	Status             string               `json:"status,omitempty"`
	ProgressPercentage int                  `json:"progress_percentage"`
	Data               FormData             `json:"data"`
	StepsStatus        map[string]StepState `json:"steps_status"`
	UploadedDocuments  []UploadedDocument   `json:"uploaded_documents"`
	CreatedAt          string               `json:"created_at,omitempty"`
	UpdatedAt          string               `json:"updated_at,omitempty"`
}

// DocumentByKey returns the uploaded document stored under the given slot
// key, or nil when the slot is empty.
func (r *WorkflowRecord) DocumentByKey(key string) *UploadedDocument {
	for i := range r.UploadedDocuments {
		if r.UploadedDocuments[i].Key == key {
			return &r.UploadedDocuments[i]
		}
	}
	return nil
}
