package model

import "time"

type Sale struct {
	ID            string     `json:"id"`
	ClientTxnID   string     `json:"client_txn_id"`
	CustomerID    string     `json:"customer_id"`
	Items         []SaleItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Discount      float64    `json:"discount"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	CreatedAt     time.Time  `json:"created_at"`
}

type SaleItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

var paymentMethodLabels = map[string]string{
	"cash":        "Cash",
	"credit_card": "Credit Card",
	"debit_card":  "Debit Card",
	"transfer":    "Bank Transfer",
	"account":     "Store Account",
	"multiple":    "Mixed",
}

// PaymentMethodLabel maps the server's payment method tag to a label
// suitable for receipts. Unknown tags pass through unchanged.
func PaymentMethodLabel(method string) string {
	if label, ok := paymentMethodLabels[method]; ok {
		return label
	}
	return method
}
