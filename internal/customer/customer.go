package customer

import (
	"context"

	"github.com/fekuna/omnipos-terminal/internal/model"
)

// DeleteOutcome mirrors the server's delete report: customers referenced by
// a sale are deactivated instead of removed.
type DeleteOutcome int

const (
	OutcomeDeleted DeleteOutcome = iota
	OutcomeDeactivated
)

type CreateCustomerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Document string `json:"document,omitempty"`
}

type UpdateCustomerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Document string `json:"document,omitempty"`
	Active   bool   `json:"active"`
}

type Filters struct {
	Search string `json:"search,omitempty"`
	Active *bool  `json:"active,omitempty"`
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type Service interface {
	List(ctx context.Context, filters *Filters) ([]model.Customer, model.Pagination, error)
	Create(ctx context.Context, input *CreateCustomerInput) (*model.Customer, error)
	Update(ctx context.Context, id string, input *UpdateCustomerInput) (*model.Customer, error)
	Delete(ctx context.Context, id string) (DeleteOutcome, error)
}

// Store caches the customer list and runs the incremental customer search
// used when attaching a customer to a sale.
type Store interface {
	Fetch(ctx context.Context, filters *Filters, forceRefresh bool) ([]model.Customer, error)
	Search(ctx context.Context, query string, page int, forceRefresh bool) ([]model.Customer, error)
	LoadMore(ctx context.Context) ([]model.Customer, error)

	Create(ctx context.Context, input *CreateCustomerInput) (*model.Customer, error)
	Update(ctx context.Context, id string, input *UpdateCustomerInput) (*model.Customer, error)
	Delete(ctx context.Context, id string) (DeleteOutcome, error)

	Customer(id string) (model.Customer, bool)
	CustomerByDocument(document string) (model.Customer, bool)
	All() []model.Customer
	SearchResults() []model.Customer
	HasMore() bool

	Loading() bool
	Err() string
	ClearErr()
	Reset()
}
