package model

// Product as served by the remote API. The server is the source of truth;
// instances held by the stores are cached copies and may be stale.
type Product struct {
	BaseModel
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Barcode     string  `json:"barcode"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	TaxRate     float64 `json:"tax_rate"`
	Stock       float64 `json:"stock"`
	Active      bool    `json:"active"`
}
