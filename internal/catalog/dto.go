package catalog

import (
	"github.com/teltechdev/teltech-backend/pkg/db/models"
	"github.com/teltechdev/teltech-backend/pkg/types"
)

// ToWire maps a catalog row onto the shared wire representation.
func ToWire(product models.Product) types.Product {
	return types.Product{
		ID:       product.ID.String(),
		Name:     product.Name,
		Price:    product.Price,
		Category: product.Category,
		Quantity: product.Quantity,
		Image:    product.Image,
	}
}

// ToWireList maps a slice of rows, never returning nil.
func ToWireList(products []models.Product) []types.Product {
	out := make([]types.Product, 0, len(products))
	for _, product := range products {
		out = append(out, ToWire(product))
	}
	return out
}
