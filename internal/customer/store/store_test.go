package store

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-terminal/internal/api"
	"github.com/fekuna/omnipos-terminal/internal/customer"
	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	listCalls  []customer.Filters
	listResp   func(f *customer.Filters) ([]model.Customer, model.Pagination, error)
	deleteResp func(id string) (customer.DeleteOutcome, error)
	updateResp func(id string, in *customer.UpdateCustomerInput) (*model.Customer, error)
}

func (f *fakeService) List(_ context.Context, filters *customer.Filters) ([]model.Customer, model.Pagination, error) {
	f.listCalls = append(f.listCalls, *filters)
	if f.listResp != nil {
		return f.listResp(filters)
	}
	return nil, model.Pagination{}, nil
}

func (f *fakeService) Create(_ context.Context, _ *customer.CreateCustomerInput) (*model.Customer, error) {
	return &model.Customer{}, nil
}

func (f *fakeService) Update(_ context.Context, id string, in *customer.UpdateCustomerInput) (*model.Customer, error) {
	if f.updateResp != nil {
		return f.updateResp(id, in)
	}
	return &model.Customer{}, nil
}

func (f *fakeService) Delete(_ context.Context, id string) (customer.DeleteOutcome, error) {
	if f.deleteResp != nil {
		return f.deleteResp(id)
	}
	return customer.OutcomeDeleted, nil
}

func newTestStore(svc customer.Service) (*customerStore, *time.Time) {
	current := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := &customerStore{
		svc:    svc,
		logger: logger.NewNop(),
		now:    func() time.Time { return current },
	}
	return s, &current
}

func mkCustomer(id, name, document string) model.Customer {
	c := model.Customer{Name: name, Document: document, Active: true}
	c.ID = id
	return c
}

func TestFetchCachesWithinWindow(t *testing.T) {
	svc := &fakeService{
		listResp: func(*customer.Filters) ([]model.Customer, model.Pagination, error) {
			return []model.Customer{mkCustomer("c1", "Ana", "")}, model.Pagination{Page: 1, Pages: 1}, nil
		},
	}
	s, now := newTestStore(svc)
	ctx := context.Background()

	_, err := s.Fetch(ctx, nil, false)
	require.NoError(t, err)

	*now = now.Add(10 * time.Second)
	_, err = s.Fetch(ctx, nil, false)
	require.NoError(t, err)
	assert.Len(t, svc.listCalls, 1)

	*now = now.Add(30 * time.Second)
	_, err = s.Fetch(ctx, nil, false)
	require.NoError(t, err)
	assert.Len(t, svc.listCalls, 2)
}

func TestSearchPagination(t *testing.T) {
	svc := &fakeService{
		listResp: func(f *customer.Filters) ([]model.Customer, model.Pagination, error) {
			items := []model.Customer{mkCustomer("c1", "Ana", ""), mkCustomer("c2", "Andrea", "")}
			if f.Page == 2 {
				items = []model.Customer{mkCustomer("c3", "Andres", "")}
			}
			return items, model.Pagination{Page: f.Page, Pages: 2}, nil
		},
	}
	s, _ := newTestStore(svc)
	ctx := context.Background()

	results, err := s.Search(ctx, "an", 1, false)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.True(t, s.HasMore())

	results, err = s.LoadMore(ctx)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.False(t, s.HasMore())

	short, err := s.Search(ctx, "a", 1, false)
	require.NoError(t, err)
	assert.Empty(t, short)
	assert.Empty(t, s.SearchResults(), "a short query clears the session")
}

func TestSearchLengthGuardCountsRunes(t *testing.T) {
	svc := &fakeService{}
	s, _ := newTestStore(svc)

	results, err := s.Search(context.Background(), "ñ", 1, false)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, svc.listCalls, "one multibyte character is still one character")
}

func TestDeleteOutcomes(t *testing.T) {
	seedList := func() ([]model.Customer, model.Pagination, error) {
		return []model.Customer{mkCustomer("c1", "Ana", ""), mkCustomer("c2", "Bruno", "")}, model.Pagination{Page: 1, Pages: 1}, nil
	}

	t.Run("hard delete removes the record", func(t *testing.T) {
		svc := &fakeService{
			listResp:   func(*customer.Filters) ([]model.Customer, model.Pagination, error) { return seedList() },
			deleteResp: func(string) (customer.DeleteOutcome, error) { return customer.OutcomeDeleted, nil },
		}
		s, _ := newTestStore(svc)
		_, err := s.Fetch(context.Background(), nil, false)
		require.NoError(t, err)

		outcome, err := s.Delete(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, customer.OutcomeDeleted, outcome)
		_, ok := s.Customer("c1")
		assert.False(t, ok)
	})

	t.Run("referenced customer is deactivated", func(t *testing.T) {
		svc := &fakeService{
			listResp:   func(*customer.Filters) ([]model.Customer, model.Pagination, error) { return seedList() },
			deleteResp: func(string) (customer.DeleteOutcome, error) { return customer.OutcomeDeactivated, nil },
		}
		s, _ := newTestStore(svc)
		_, err := s.Fetch(context.Background(), nil, false)
		require.NoError(t, err)

		outcome, err := s.Delete(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, customer.OutcomeDeactivated, outcome)

		got, ok := s.Customer("c1")
		require.True(t, ok)
		assert.False(t, got.Active)
	})
}

func TestWriteFailureRecordsErrorAndClearsLoading(t *testing.T) {
	svc := &fakeService{
		updateResp: func(string, *customer.UpdateCustomerInput) (*model.Customer, error) {
			return nil, &api.ApplicationError{Status: 409, Message: "email already in use"}
		},
	}
	s, _ := newTestStore(svc)

	_, err := s.Update(context.Background(), "c1", &customer.UpdateCustomerInput{Name: "Ana"})
	require.Error(t, err)
	assert.Equal(t, "email already in use", s.Err())
	assert.False(t, s.Loading())
}

func TestCustomerByDocument(t *testing.T) {
	svc := &fakeService{
		listResp: func(*customer.Filters) ([]model.Customer, model.Pagination, error) {
			return []model.Customer{mkCustomer("c1", "Ana", "20-1234"), mkCustomer("c2", "Bruno", "")}, model.Pagination{Page: 1, Pages: 1}, nil
		},
	}
	s, _ := newTestStore(svc)
	_, err := s.Fetch(context.Background(), nil, false)
	require.NoError(t, err)

	got, ok := s.CustomerByDocument("20-1234")
	require.True(t, ok)
	assert.Equal(t, "c1", got.ID)

	_, ok = s.CustomerByDocument("")
	assert.False(t, ok)
}
