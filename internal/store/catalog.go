package store

import (
	"context"

	"github.com/HerodesVe/fsr-go/internal/models"
	"github.com/HerodesVe/fsr-go/internal/services"
)

// ServiceDefinitions caches the service catalog. The catalog changes
// rarely, so it gets the longer freshness window.
type ServiceDefinitions struct {
	base *Store
	svc  *services.ServiceDefinitionService
}

func (s *Store) ServiceDefinitions(svc *services.ServiceDefinitionService) *ServiceDefinitions {
	return &ServiceDefinitions{base: s, svc: svc}
}

func (d *ServiceDefinitions) List(ctx context.Context) ([]models.ServiceDefinition, error) {
	v, err := d.base.read(ctx, "service-definitions", catalogTTL, func(ctx context.Context) (any, error) {
		return d.svc.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.ServiceDefinition), nil
}

// Ubigeo caches the geography lookup per level and parent.
type Ubigeo struct {
	base *Store
	svc  *services.UbigeoService
}

func (s *Store) Ubigeo(svc *services.UbigeoService) *Ubigeo {
	return &Ubigeo{base: s, svc: svc}
}

func (u *Ubigeo) Departments(ctx context.Context) ([]models.Department, error) {
	v, err := u.base.read(ctx, "ubigeo/departments", ubigeoTTL, func(ctx context.Context) (any, error) {
		return u.svc.Departments(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Department), nil
}

func (u *Ubigeo) Provinces(ctx context.Context, departmentID string) ([]models.Province, error) {
	v, err := u.base.read(ctx, "ubigeo/provinces/"+departmentID, ubigeoTTL, func(ctx context.Context) (any, error) {
		return u.svc.Provinces(ctx, departmentID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Province), nil
}

func (u *Ubigeo) Districts(ctx context.Context, provinceID string) ([]models.District, error) {
	v, err := u.base.read(ctx, "ubigeo/districts/"+provinceID, ubigeoTTL, func(ctx context.Context) (any, error) {
		return u.svc.Districts(ctx, provinceID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.District), nil
}
