package store

import (
	"context"

	"github.com/HerodesVe/fsr-go/internal/api"
	"github.com/HerodesVe/fsr-go/internal/models"
	"github.com/HerodesVe/fsr-go/internal/services"
)

// Workflows is the cache-aware facade over one permit type's service,
// mirroring the original per-entity hooks.
type Workflows struct {
	base *Store
	svc  *services.WorkflowService
}

func (s *Store) Workflows(svc *services.WorkflowService) *Workflows {
	return &Workflows{base: s, svc: svc}
}

func (w *Workflows) collectionKey() string { return w.svc.Resource() }
func (w *Workflows) recordKey(id string) string {
	return w.svc.Resource() + "/" + id
}

func (w *Workflows) List(ctx context.Context) ([]models.WorkflowRecord, error) {
	v, err := w.base.read(ctx, w.collectionKey(), workflowTTL, func(ctx context.Context) (any, error) {
		return w.svc.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.WorkflowRecord), nil
}

func (w *Workflows) Get(ctx context.Context, id string) (*models.WorkflowRecord, error) {
	v, err := w.base.read(ctx, w.recordKey(id), workflowTTL, func(ctx context.Context) (any, error) {
		return w.svc.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.WorkflowRecord), nil
}

func (w *Workflows) Create(ctx context.Context, payload *models.WorkflowRecord) (*models.WorkflowRecord, error) {
	v, err := w.base.mutate(ctx, mutation{
		invalidate: []string{w.collectionKey()},
		success:    "Trámite creado correctamente",
		fallback:   "No se pudo crear el trámite",
	}, func(ctx context.Context) (any, error) {
		return w.svc.Create(ctx, payload)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.WorkflowRecord), nil
}

func (w *Workflows) Update(ctx context.Context, id string, payload *models.WorkflowRecord) (*models.WorkflowRecord, error) {
	v, err := w.base.mutate(ctx, mutation{
		invalidate: []string{w.collectionKey(), w.recordKey(id)},
		success:    "Trámite actualizado correctamente",
		fallback:   "No se pudo actualizar el trámite",
	}, func(ctx context.Context) (any, error) {
		return w.svc.Update(ctx, id, payload)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.WorkflowRecord), nil
}

func (w *Workflows) Delete(ctx context.Context, id string) error {
	_, err := w.base.mutate(ctx, mutation{
		invalidate: []string{w.collectionKey(), w.recordKey(id)},
		success:    "Trámite eliminado",
		fallback:   "No se pudo eliminar el trámite",
	}, func(ctx context.Context) (any, error) {
		return nil, w.svc.Delete(ctx, id)
	})
	return err
}

// UploadDocument routes one file into a slot of the record. Besides the
// collection invalidation, the returned record is written straight into the
// record's own cache slot so an open detail view reflects it without a
// re-fetch.
func (w *Workflows) UploadDocument(ctx context.Context, id string, file api.File, key string) (*models.WorkflowRecord, error) {
	v, err := w.base.mutate(ctx, mutation{
		invalidate: []string{w.collectionKey()},
		setKey:     w.recordKey(id),
		success:    "Documento subido correctamente",
		fallback:   "No se pudo subir el documento",
	}, func(ctx context.Context) (any, error) {
		return w.svc.UploadSingleDocument(ctx, id, file, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.WorkflowRecord), nil
}

// UploadDocuments is the multi-file variant; files and keys are parallel.
func (w *Workflows) UploadDocuments(ctx context.Context, id string, files []api.File, keys []string) (*models.WorkflowRecord, error) {
	v, err := w.base.mutate(ctx, mutation{
		invalidate: []string{w.collectionKey()},
		setKey:     w.recordKey(id),
		success:    "Documentos subidos correctamente",
		fallback:   "No se pudieron subir los documentos",
	}, func(ctx context.Context) (any, error) {
		return w.svc.UploadDocuments(ctx, id, files, keys)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.WorkflowRecord), nil
}
