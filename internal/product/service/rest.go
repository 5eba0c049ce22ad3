package service

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-terminal/internal/api"
	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/internal/product"
	"github.com/fekuna/omnipos-terminal/internal/product/dto"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
)

type restService struct {
	client *api.Client
	logger logger.ZapLogger
}

func NewRESTService(client *api.Client, log logger.ZapLogger) product.Service {
	return &restService{
		client: client,
		logger: log,
	}
}

// listPayload is the data block of list responses: records plus the
// pagination the caches key their freshness on.
type listPayload struct {
	Products   []model.Product  `json:"products"`
	Pagination model.Pagination `json:"pagination"`
}

func (s *restService) List(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, model.Pagination, error) {
	path := "/products"
	if q := filters.Query(); len(q) > 0 {
		path += "?" + q.Encode()
	}

	var payload listPayload
	if err := s.client.Get(ctx, path, &payload); err != nil {
		return nil, model.Pagination{}, err
	}
	return payload.Products, payload.Pagination, nil
}

func (s *restService) TopSelling(ctx context.Context, limit int) ([]model.Product, error) {
	var payload listPayload
	path := fmt.Sprintf("/products/top-selling?limit=%d", limit)
	if err := s.client.Get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

func (s *restService) Get(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := s.client.Get(ctx, "/products/"+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *restService) Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	var p model.Product
	if err := s.client.Post(ctx, "/products", input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *restService) Update(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error) {
	var p model.Product
	if err := s.client.Put(ctx, "/products/"+id, input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *restService) Delete(ctx context.Context, id string) (product.DeleteOutcome, error) {
	res, err := s.client.Delete(ctx, "/products/"+id)
	if err != nil {
		return 0, err
	}
	if res.Action == "deleted" {
		return product.OutcomeDeleted, nil
	}
	return product.OutcomeDeactivated, nil
}
