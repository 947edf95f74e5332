package services

import (
	"context"
	"errors"
	"net/url"

	"github.com/HerodesVe/fsr-go/internal/api"
	"github.com/HerodesVe/fsr-go/internal/models"
)

// AuthService exchanges credentials for a token pair. The token endpoint is
// form-encoded, unlike the rest of the API.
type AuthService struct {
	client *api.Client
}

func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	if username == "" || password == "" {
		return nil, errors.New("services: username and password are required")
	}
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var pair models.TokenPair
	if err := s.client.PostForm(ctx, "/auth/token", form, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
