// Package services holds one resource service per backend entity. Each
// method maps 1:1 to exactly one HTTP request and performs no caching.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/HerodesVe/fsr-go/internal/api"
	"github.com/HerodesVe/fsr-go/internal/models"
)

// WorkflowService is the parameterized service behind every permit type.
// The resource name selects the backend collection ("anteproyectos",
// "proyectos", "demoliciones", ...).
type WorkflowService struct {
	client   *api.Client
	resource string
}

func NewWorkflowService(client *api.Client, resource string) *WorkflowService {
	return &WorkflowService{client: client, resource: resource}
}

// Resource returns the backend collection name this service targets.
func (s *WorkflowService) Resource() string { return s.resource }

func (s *WorkflowService) GetAll(ctx context.Context) ([]models.WorkflowRecord, error) {
	var records []models.WorkflowRecord
	err := s.client.Get(ctx, fmt.Sprintf("/%s/", s.resource), &records)
	return records, err
}

func (s *WorkflowService) GetByID(ctx context.Context, id string) (*models.WorkflowRecord, error) {
	if id == "" {
		return nil, errors.New("services: empty record id")
	}
	var rec models.WorkflowRecord
	if err := s.client.Get(ctx, fmt.Sprintf("/%s/%s/", s.resource, id), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *WorkflowService) Create(ctx context.Context, payload *models.WorkflowRecord) (*models.WorkflowRecord, error) {
	var rec models.WorkflowRecord
	if err := s.client.Post(ctx, fmt.Sprintf("/%s/", s.resource), payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *WorkflowService) Update(ctx context.Context, id string, payload *models.WorkflowRecord) (*models.WorkflowRecord, error) {
	if id == "" {
		return nil, errors.New("services: empty record id")
	}
	var rec models.WorkflowRecord
	if err := s.client.Patch(ctx, fmt.Sprintf("/%s/%s/", s.resource, id), payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *WorkflowService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("services: empty record id")
	}
	return s.client.Delete(ctx, fmt.Sprintf("/%s/%s/", s.resource, id))
}

// UploadSingleDocument routes one file into the named slot of the record.
// The backend returns the updated record, whose uploaded_documents list is
// authoritative.
func (s *WorkflowService) UploadSingleDocument(ctx context.Context, id string, file api.File, key string) (*models.WorkflowRecord, error) {
	return s.UploadDocuments(ctx, id, []api.File{file}, []string{key})
}

// UploadDocuments routes files[i] into the slot named by keys[i].
func (s *WorkflowService) UploadDocuments(ctx context.Context, id string, files []api.File, keys []string) (*models.WorkflowRecord, error) {
	if id == "" {
		return nil, errors.New("services: empty record id")
	}
	if len(files) != len(keys) {
		return nil, fmt.Errorf("services: %d files for %d keys", len(files), len(keys))
	}
	var rec models.WorkflowRecord
	if err := s.client.Upload(ctx, fmt.Sprintf("/%s/%s/documents", s.resource, id), files, keys, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
