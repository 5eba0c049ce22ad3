package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-terminal/internal/api"
	"github.com/fekuna/omnipos-terminal/internal/product"
	"github.com/fekuna/omnipos-terminal/internal/product/dto"
	"github.com/fekuna/omnipos-terminal/internal/product/service"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, handler http.HandlerFunc) product.Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.NewClient(&api.Config{BaseURL: srv.URL}, logger.NewNop())
	return service.NewRESTService(client, logger.NewNop())
}

func TestListEncodesFilters(t *testing.T) {
	active := true
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "milk", q.Get("search"))
		assert.Equal(t, "true", q.Get("active"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "5", q.Get("limit"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"products":   []map[string]any{{"id": "p1", "name": "Milk"}},
				"pagination": map[string]any{"page": 2, "limit": 5, "total": 12, "pages": 3},
			},
		})
	})

	items, pagination, err := svc.List(context.Background(), &dto.ProductFilters{
		Search: "milk",
		Active: &active,
		Page:   2,
		Limit:  5,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 3, pagination.Pages)
	assert.True(t, pagination.HasMore())
}

func TestTopSellingPassesLimit(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/top-selling", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"products": []map[string]any{{"id": "p1"}}},
		})
	})

	items, err := svc.TopSelling(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDeleteOutcomeMapping(t *testing.T) {
	cases := []struct {
		action string
		want   product.DeleteOutcome
	}{
		{"deleted", product.OutcomeDeleted},
		{"deactivated", product.OutcomeDeactivated},
	}
	for _, tc := range cases {
		t.Run(tc.action, func(t *testing.T) {
			svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				json.NewEncoder(w).Encode(map[string]any{"success": true, "action": tc.action})
			})

			outcome, err := svc.Delete(context.Background(), "p1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, outcome)
		})
	}
}
