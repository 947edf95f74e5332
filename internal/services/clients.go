package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/HerodesVe/fsr-go/internal/api"
	"github.com/HerodesVe/fsr-go/internal/models"
)

// ClientService manages the clients the business works for.
type ClientService struct {
	client *api.Client
}

func NewClientService(client *api.Client) *ClientService {
	return &ClientService{client: client}
}

func (s *ClientService) GetAll(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := s.client.Get(ctx, "/clients/", &clients)
	return clients, err
}

func (s *ClientService) GetByID(ctx context.Context, id string) (*models.Client, error) {
	if id == "" {
		return nil, errors.New("services: empty client id")
	}
	var c models.Client
	if err := s.client.Get(ctx, fmt.Sprintf("/clients/%s/", id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ClientService) Create(ctx context.Context, payload *models.Client) (*models.Client, error) {
	var c models.Client
	if err := s.client.Post(ctx, "/clients/", payload, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ClientService) Update(ctx context.Context, id string, payload *models.Client) (*models.Client, error) {
	if id == "" {
		return nil, errors.New("services: empty client id")
	}
	var c models.Client
	if err := s.client.Patch(ctx, fmt.Sprintf("/clients/%s/", id), payload, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("services: empty client id")
	}
	return s.client.Delete(ctx, fmt.Sprintf("/clients/%s/", id))
}
