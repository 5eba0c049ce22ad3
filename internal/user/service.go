package user

import (
	"context"

	"github.com/fekuna/omnipos-terminal/internal/api"
	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
)

type CreateUserInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

// Service is the thin user administration surface. Admin screens re-fetch
// on every visit, so there is no cache in front of it.
type Service struct {
	client *api.Client
	logger logger.ZapLogger
}

func NewService(client *api.Client, log logger.ZapLogger) *Service {
	return &Service{client: client, logger: log}
}

func (s *Service) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.client.Get(ctx, "/auth/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) Create(ctx context.Context, input *CreateUserInput) (*model.User, error) {
	var u model.User
	if err := s.client.Post(ctx, "/auth/users", input, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Service) Update(ctx context.Context, id string, input *UpdateUserInput) error {
	return s.client.Put(ctx, "/auth/users/"+id, input, nil)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/auth/users/"+id)
	return err
}
