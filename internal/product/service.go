package product

import (
	"context"

	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/internal/product/dto"
)

// DeleteOutcome is the server's report of how a delete was carried out:
// records never referenced by a sale are removed, the rest are deactivated
// so sale history keeps resolving.
type DeleteOutcome int

const (
	OutcomeDeleted DeleteOutcome = iota
	OutcomeDeactivated
)

// Service is the REST surface for products. The Store mediates all calls to
// it; nothing else should talk to these endpoints directly.
type Service interface {
	List(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, model.Pagination, error)
	TopSelling(ctx context.Context, limit int) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, id string) (DeleteOutcome, error)
}
