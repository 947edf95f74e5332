package store

import (
	"context"

	"github.com/HerodesVe/fsr-go/internal/models"
	"github.com/HerodesVe/fsr-go/internal/services"
)

const clientsKey = "clients"

// Clients is the cache-aware facade over the client service.
type Clients struct {
	base *Store
	svc  *services.ClientService
}

func (s *Store) Clients(svc *services.ClientService) *Clients {
	return &Clients{base: s, svc: svc}
}

func (c *Clients) List(ctx context.Context) ([]models.Client, error) {
	v, err := c.base.read(ctx, clientsKey, clientTTL, func(ctx context.Context) (any, error) {
		return c.svc.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Client), nil
}

func (c *Clients) Get(ctx context.Context, id string) (*models.Client, error) {
	v, err := c.base.read(ctx, clientsKey+"/"+id, clientTTL, func(ctx context.Context) (any, error) {
		return c.svc.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Client), nil
}

func (c *Clients) Create(ctx context.Context, payload *models.Client) (*models.Client, error) {
	v, err := c.base.mutate(ctx, mutation{
		invalidate: []string{clientsKey},
		success:    "Cliente creado correctamente",
		fallback:   "No se pudo crear el cliente",
	}, func(ctx context.Context) (any, error) {
		return c.svc.Create(ctx, payload)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Client), nil
}

func (c *Clients) Update(ctx context.Context, id string, payload *models.Client) (*models.Client, error) {
	v, err := c.base.mutate(ctx, mutation{
		invalidate: []string{clientsKey, clientsKey + "/" + id},
		success:    "Cliente actualizado correctamente",
		fallback:   "No se pudo actualizar el cliente",
	}, func(ctx context.Context) (any, error) {
		return c.svc.Update(ctx, id, payload)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Client), nil
}

func (c *Clients) Delete(ctx context.Context, id string) error {
	_, err := c.base.mutate(ctx, mutation{
		invalidate: []string{clientsKey, clientsKey + "/" + id},
		success:    "Cliente eliminado",
		fallback:   "No se pudo eliminar el cliente",
	}, func(ctx context.Context) (any, error) {
		return nil, c.svc.Delete(ctx, id)
	})
	return err
}
