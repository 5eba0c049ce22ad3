package store

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fekuna/omnipos-terminal/internal/customer"
	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/internal/store"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"go.uber.org/zap"
)

const (
	listWindow   = 30 * time.Second
	searchWindow = 2 * time.Second

	searchPageSize  = 5
	minSearchLength = 2
)

type customerStore struct {
	svc    customer.Service
	logger logger.ZapLogger
	now    func() time.Time

	mu        sync.Mutex
	loading   bool
	lastErr   string
	customers store.Collection[model.Customer]
	search    store.SearchSession[model.Customer]
}

func NewStore(svc customer.Service, log logger.ZapLogger) customer.Store {
	return &customerStore{
		svc:    svc,
		logger: log,
		now:    time.Now,
	}
}

func (s *customerStore) Fetch(ctx context.Context, filters *customer.Filters, forceRefresh bool) ([]model.Customer, error) {
	if filters == nil {
		filters = &customer.Filters{}
	}
	key := store.ParamsKey(filters)

	s.mu.Lock()
	if s.loading && !forceRefresh {
		items := s.customers.Items
		s.mu.Unlock()
		return items, nil
	}
	if !forceRefresh && s.customers.Fresh(s.now(), listWindow, key) {
		items := s.customers.Items
		s.mu.Unlock()
		return items, nil
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	items, pagination, err := s.svc.List(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to load customers")
		s.logger.Error("customer fetch failed", zap.Error(err))
		return nil, err
	}
	s.customers.Replace(items, pagination, s.now(), key)
	return items, nil
}

func (s *customerStore) Search(ctx context.Context, query string, page int, forceRefresh bool) ([]model.Customer, error) {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < minSearchLength {
		s.mu.Lock()
		s.search.Clear()
		s.mu.Unlock()
		return []model.Customer{}, nil
	}
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	if !forceRefresh && s.search.Fresh(s.now(), searchWindow, trimmed, page) {
		results := s.search.Results
		s.mu.Unlock()
		return results, nil
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	active := true
	filters := &customer.Filters{
		Search: trimmed,
		Active: &active,
		Page:   page,
		Limit:  searchPageSize,
	}
	items, pagination, err := s.svc.List(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "customer search failed")
		s.search.Results = nil
		s.logger.Error("customer search failed", zap.String("query", trimmed), zap.Error(err))
		return nil, err
	}
	results := s.search.Apply(trimmed, page, items, pagination, s.now())
	return results, nil
}

func (s *customerStore) LoadMore(ctx context.Context) ([]model.Customer, error) {
	s.mu.Lock()
	if !s.search.HasMore || s.loading {
		results := s.search.Results
		s.mu.Unlock()
		return results, nil
	}
	query := s.search.Query
	nextPage := s.search.Pagination.Page + 1
	s.mu.Unlock()

	return s.Search(ctx, query, nextPage, false)
}

func (s *customerStore) Create(ctx context.Context, input *customer.CreateCustomerInput) (*model.Customer, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	c, err := s.svc.Create(ctx, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to create customer")
		return nil, err
	}
	s.customers.Invalidate()
	s.search.Invalidate()
	return c, nil
}

func (s *customerStore) Update(ctx context.Context, id string, input *customer.UpdateCustomerInput) (*model.Customer, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	c, err := s.svc.Update(ctx, id, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to update customer")
		return nil, err
	}
	s.customers.ReplaceByID(id, *c)
	s.search.ReplaceByID(id, *c)
	s.search.Invalidate()
	return c, nil
}

func (s *customerStore) Delete(ctx context.Context, id string) (customer.DeleteOutcome, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	outcome, err := s.svc.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to delete customer")
		return 0, err
	}
	switch outcome {
	case customer.OutcomeDeleted:
		s.customers.RemoveByID(id)
	default:
		s.customers.Patch(id, func(c *model.Customer) { c.Active = false })
	}
	s.search.RemoveByID(id)
	s.search.Invalidate()
	return outcome, nil
}

func (s *customerStore) Customer(id string) (model.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.search.Find(id); ok {
		return c, true
	}
	return s.customers.Find(id)
}

func (s *customerStore) CustomerByDocument(document string) (model.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match := func(c model.Customer) bool { return c.Document != "" && c.Document == document }
	if c, ok := s.search.FindFunc(match); ok {
		return c, true
	}
	return s.customers.FindFunc(match)
}

func (s *customerStore) All() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.Items
}

func (s *customerStore) SearchResults() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.Results
}

func (s *customerStore) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.HasMore
}

func (s *customerStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *customerStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *customerStore) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *customerStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.lastErr = ""
	s.customers.Clear()
	s.search.Clear()
}
