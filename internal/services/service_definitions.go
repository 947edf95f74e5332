package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/HerodesVe/fsr-go/internal/api"
	"github.com/HerodesVe/fsr-go/internal/models"
)

// ServiceDefinitionService reads the catalog of services the business
// offers. The catalog is maintained elsewhere; this side only lists it.
type ServiceDefinitionService struct {
	client *api.Client
}

func NewServiceDefinitionService(client *api.Client) *ServiceDefinitionService {
	return &ServiceDefinitionService{client: client}
}

func (s *ServiceDefinitionService) GetAll(ctx context.Context) ([]models.ServiceDefinition, error) {
	var defs []models.ServiceDefinition
	err := s.client.Get(ctx, "/service-definitions/", &defs)
	return defs, err
}

func (s *ServiceDefinitionService) GetByID(ctx context.Context, id string) (*models.ServiceDefinition, error) {
	if id == "" {
		return nil, errors.New("services: empty service definition id")
	}
	var def models.ServiceDefinition
	if err := s.client.Get(ctx, fmt.Sprintf("/service-definitions/%s/", id), &def); err != nil {
		return nil, err
	}
	return &def, nil
}
