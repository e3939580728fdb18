package types

import "github.com/shopspring/decimal"

// Product is the wire representation of a catalog entry, shared by the API
// server and the storefront clients.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	// Quantity is the tracked stock level. Nil means the product does not
	// track stock and additions are never rejected.
	Quantity *int   `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

// CartLine is a snapshot of a product at add-to-cart time. Name and price are
// frozen; later edits to the product do not flow back into existing lines.
type CartLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// StockDeductRequest asks the stock authority to reserve units of a product.
type StockDeductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}
