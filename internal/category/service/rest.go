package service

import (
	"context"

	"github.com/fekuna/omnipos-terminal/internal/api"
	"github.com/fekuna/omnipos-terminal/internal/category"
	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
)

type restService struct {
	client *api.Client
	logger logger.ZapLogger
}

func NewRESTService(client *api.Client, log logger.ZapLogger) category.Service {
	return &restService{client: client, logger: log}
}

type listPayload struct {
	Categories []model.Category `json:"categories"`
	Pagination model.Pagination `json:"pagination"`
}

func (s *restService) List(ctx context.Context) ([]model.Category, model.Pagination, error) {
	var payload listPayload
	if err := s.client.Get(ctx, "/categories", &payload); err != nil {
		return nil, model.Pagination{}, err
	}
	return payload.Categories, payload.Pagination, nil
}

func (s *restService) Create(ctx context.Context, input *category.CreateCategoryInput) (*model.Category, error) {
	var c model.Category
	if err := s.client.Post(ctx, "/categories", input, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *restService) Update(ctx context.Context, id string, input *category.UpdateCategoryInput) (*model.Category, error) {
	var c model.Category
	if err := s.client.Put(ctx, "/categories/"+id, input, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *restService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/categories/"+id)
	return err
}
