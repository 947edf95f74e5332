package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/HerodesVe/fsr-go/internal/api"
	"github.com/HerodesVe/fsr-go/internal/models"
)

// UbigeoService resolves the department/province/district lookup used by
// address forms.
type UbigeoService struct {
	client *api.Client
}

func NewUbigeoService(client *api.Client) *UbigeoService {
	return &UbigeoService{client: client}
}

func (s *UbigeoService) Departments(ctx context.Context) ([]models.Department, error) {
	var deps []models.Department
	err := s.client.Get(ctx, "/ubigeo/departments", &deps)
	return deps, err
}

func (s *UbigeoService) Provinces(ctx context.Context, departmentID string) ([]models.Province, error) {
	if departmentID == "" {
		return nil, errors.New("services: empty department id")
	}
	var provs []models.Province
	err := s.client.Get(ctx, fmt.Sprintf("/ubigeo/departments/%s/provinces", departmentID), &provs)
	return provs, err
}

func (s *UbigeoService) Districts(ctx context.Context, provinceID string) ([]models.District, error) {
	if provinceID == "" {
		return nil, errors.New("services: empty province id")
	}
	var dists []models.District
	err := s.client.Get(ctx, fmt.Sprintf("/ubigeo/provinces/%s/districts", provinceID), &dists)
	return dists, err
}
