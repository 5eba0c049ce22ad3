package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fekuna/omnipos-terminal/internal/api"
	"github.com/fekuna/omnipos-terminal/internal/customer"
	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
)

type restService struct {
	client *api.Client
	logger logger.ZapLogger
}

func NewRESTService(client *api.Client, log logger.ZapLogger) customer.Service {
	return &restService{client: client, logger: log}
}

type listPayload struct {
	Customers  []model.Customer `json:"customers"`
	Pagination model.Pagination `json:"pagination"`
}

func (s *restService) List(ctx context.Context, filters *customer.Filters) ([]model.Customer, model.Pagination, error) {
	path := "/customers"
	if q := buildQuery(filters); len(q) > 0 {
		path += "?" + q.Encode()
	}

	var payload listPayload
	if err := s.client.Get(ctx, path, &payload); err != nil {
		return nil, model.Pagination{}, err
	}
	return payload.Customers, payload.Pagination, nil
}

func (s *restService) Create(ctx context.Context, input *customer.CreateCustomerInput) (*model.Customer, error) {
	var c model.Customer
	if err := s.client.Post(ctx, "/customers", input, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *restService) Update(ctx context.Context, id string, input *customer.UpdateCustomerInput) (*model.Customer, error) {
	var c model.Customer
	if err := s.client.Put(ctx, "/customers/"+id, input, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *restService) Delete(ctx context.Context, id string) (customer.DeleteOutcome, error) {
	res, err := s.client.Delete(ctx, "/customers/"+id)
	if err != nil {
		return 0, err
	}
	if res.Action == "deleted" {
		return customer.OutcomeDeleted, nil
	}
	return customer.OutcomeDeactivated, nil
}

func buildQuery(f *customer.Filters) url.Values {
	q := url.Values{}
	if f == nil {
		return q
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Active != nil {
		q.Set("active", strconv.FormatBool(*f.Active))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}
