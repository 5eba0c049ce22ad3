package product

import (
	"context"

	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/internal/product/dto"
)

// Store is the cache-aware product state holder. Reads prefer cached data
// inside a freshness window; writes go to the Service and reconcile every
// cached collection on success.
type Store interface {
	// Network-backed reads.
	Fetch(ctx context.Context, filters *dto.ProductFilters, forceRefresh bool) ([]model.Product, error)
	FetchTopSelling(ctx context.Context, limit int, forceRefresh bool) ([]model.Product, error)
	FetchByID(ctx context.Context, id string) (*model.Product, error)
	Search(ctx context.Context, query string, page int, forceRefresh bool) ([]model.Product, error)
	LoadMore(ctx context.Context) ([]model.Product, error)

	// Writes.
	Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, id string) (DeleteOutcome, error)

	// UpdateStock is a local-only optimistic patch for stock values the
	// caller already knows are authoritative (a just-confirmed sale).
	UpdateStock(id string, stock float64)

	// Local accessors over cached data. Lookup order: search results,
	// then top sellers, then the full collection.
	Product(id string) (model.Product, bool)
	ProductByBarcode(barcode string) (model.Product, bool)
	ByCategory(categoryID string) []model.Product
	Filter(query string) []model.Product
	Active() []model.Product
	All() []model.Product
	TopSelling() []model.Product
	SearchResults() []model.Product
	HasMore() bool

	Loading() bool
	Err() string
	ClearErr()
	Reset()
}
