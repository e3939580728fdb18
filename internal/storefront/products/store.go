// Package products implements the storefront's product store with two
// interchangeable backends: a KV-backed local store and an API-backed remote
// store. Listing never fails to the caller; mutations validate before any
// persistence attempt and never leave partial state behind.
package products

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"github.com/teltechdev/teltech-backend/pkg/kv"
	"github.com/teltechdev/teltech-backend/pkg/types"
)

// StorageKey is the KV key holding the local product catalog.
var StorageKey = kv.Key("products")

// Store is the product store contract shared by both backends.
type Store interface {
	// List returns the catalog. It never fails: backend and decode errors
	// are logged and surface as the empty sequence.
	List(ctx context.Context) []types.Product
	// Create validates and persists a new product.
	Create(ctx context.Context, input Input) (*types.Product, error)
	// Update replaces the product with the given id.
	Update(ctx context.Context, productID string, input Input) (*types.Product, error)
	// Delete removes the product with the given id.
	Delete(ctx context.Context, productID string) error
}

// Input is the payload for create and full update.
type Input struct {
	Name     string
	Price    decimal.Decimal
	Category string
	Quantity *int
	Image    string
}

func (i Input) validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(i.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if i.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if i.Quantity != nil && *i.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	return nil
}
