package category

import (
	"context"

	"github.com/fekuna/omnipos-terminal/internal/model"
)

type CreateCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order,omitempty"`
}

type UpdateCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order,omitempty"`
	Active      bool   `json:"active"`
}

type Service interface {
	List(ctx context.Context) ([]model.Category, model.Pagination, error)
	Create(ctx context.Context, input *CreateCategoryInput) (*model.Category, error)
	Update(ctx context.Context, id string, input *UpdateCategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}

// Store caches the category list. Categories change rarely, so there is no
// search session and no top subset, just the full collection with the
// listing freshness window.
type Store interface {
	Fetch(ctx context.Context, forceRefresh bool) ([]model.Category, error)
	Create(ctx context.Context, input *CreateCategoryInput) (*model.Category, error)
	Update(ctx context.Context, id string, input *UpdateCategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id string) error

	Category(id string) (model.Category, bool)
	Active() []model.Category
	All() []model.Category

	Loading() bool
	Err() string
	ClearErr()
	Reset()
}
