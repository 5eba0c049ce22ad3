package dto

import (
	"net/url"
	"strconv"
)

type CreateProductInput struct {
	CategoryID  string  `json:"category_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Barcode     string  `json:"barcode,omitempty"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost,omitempty"`
	TaxRate     float64 `json:"tax_rate,omitempty"`
	Stock       float64 `json:"stock"`
}

type UpdateProductInput struct {
	CategoryID  string  `json:"category_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Barcode     string  `json:"barcode,omitempty"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost,omitempty"`
	TaxRate     float64 `json:"tax_rate,omitempty"`
	Stock       float64 `json:"stock"`
	Active      bool    `json:"active"`
}

// ProductFilters drive the paginated listing endpoint. The zero value lists
// everything with the server's default page size.
type ProductFilters struct {
	Search     string `json:"search,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
	Active     *bool  `json:"active,omitempty"`
	SortBy     string `json:"sort_by,omitempty"`    // name, price, created_at
	SortOrder  string `json:"sort_order,omitempty"` // asc, desc
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

func (f *ProductFilters) Query() url.Values {
	q := url.Values{}
	if f == nil {
		return q
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.CategoryID != "" {
		q.Set("category_id", f.CategoryID)
	}
	if f.Active != nil {
		q.Set("active", strconv.FormatBool(*f.Active))
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sort_order", f.SortOrder)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}
