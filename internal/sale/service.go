package sale

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-terminal/internal/api"
	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/internal/product"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ItemInput struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

type CreateSaleInput struct {
	ClientTxnID   string      `json:"client_txn_id"`
	CustomerID    string      `json:"customer_id,omitempty"`
	Items         []ItemInput `json:"items"`
	Discount      float64     `json:"discount,omitempty"`
	PaymentMethod string      `json:"payment_method"`
}

// Service posts sales to the server and keeps the product cache coherent
// with the stock the sale just consumed.
type Service struct {
	client   *api.Client
	products product.Store
	logger   logger.ZapLogger
}

func NewService(client *api.Client, products product.Store, log logger.ZapLogger) *Service {
	return &Service{
		client:   client,
		products: products,
		logger:   log,
	}
}

// Create posts the sale and, on success, optimistically decrements the
// cached stock of every line's product. The server already committed the
// decrement, so no round trip is needed to reflect it locally.
func (s *Service) Create(ctx context.Context, input *CreateSaleInput) (*model.Sale, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("sale has no items")
	}
	if input.ClientTxnID == "" {
		input.ClientTxnID = uuid.New().String()
	}

	var sale model.Sale
	if err := s.client.Post(ctx, "/sales", input, &sale); err != nil {
		return nil, err
	}

	for _, item := range input.Items {
		if p, ok := s.products.Product(item.ProductID); ok {
			s.products.UpdateStock(item.ProductID, p.Stock-item.Quantity)
		}
	}

	s.logger.Info("sale created",
		zap.String("sale_id", sale.ID),
		zap.Float64("total", sale.Total),
		zap.Int("items", len(sale.Items)))
	return &sale, nil
}

type listPayload struct {
	Sales      []model.Sale     `json:"sales"`
	Pagination model.Pagination `json:"pagination"`
}

// Recent lists the latest sales. No cache window: the list is short and
// only requested on explicit navigation.
func (s *Service) Recent(ctx context.Context, limit int) ([]model.Sale, error) {
	if limit <= 0 {
		limit = 10
	}
	var payload listPayload
	path := fmt.Sprintf("/sales?limit=%d", limit)
	if err := s.client.Get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Sales, nil
}

// Get fetches one sale with its items, as needed for reprint and preview.
func (s *Service) Get(ctx context.Context, id string) (*model.Sale, error) {
	var sale model.Sale
	if err := s.client.Get(ctx, "/sales/"+id, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}
