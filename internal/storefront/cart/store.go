// Package cart keeps the shopper's cart as a JSON array in the KV store.
// Lines are keyed by product id and merge on add: adding a product already in
// the cart increments the existing line instead of appending a duplicate.
package cart

import (
	"context"

	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"github.com/teltechdev/teltech-backend/pkg/kv"
	"github.com/teltechdev/teltech-backend/pkg/logger"
	"github.com/teltechdev/teltech-backend/pkg/types"
)

// StorageKey is the KV key holding the cart contents.
var StorageKey = kv.Key("cart")

type Store struct {
	store *kv.Store
	logg  *logger.Logger
}

func NewStore(store *kv.Store, logg *logger.Logger) *Store {
	return &Store{store: store, logg: logg}
}

// Items returns the cart lines. It never fails: backend and decode errors are
// logged and surface as the empty cart.
func (s *Store) Items(ctx context.Context) []types.CartLine {
	return kv.Read[types.CartLine](ctx, s.store, StorageKey)
}

// Count returns the total unit count across all lines, for the cart badge.
func (s *Store) Count(ctx context.Context) int {
	total := 0
	for _, line := range s.Items(ctx) {
		total += line.Quantity
	}
	return total
}

// Add merges quantity units of the product into the cart. The line snapshots
// the product's name and price at add time; a later catalog edit does not
// reprice lines already in the cart.
func (s *Store) Add(ctx context.Context, product types.Product, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	lines := s.Items(ctx)
	merged := false
	for i := range lines {
		if lines[i].ID == product.ID {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, types.CartLine{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: quantity,
		})
	}

	if err := kv.Write(ctx, s.store, StorageKey, lines); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "kv: persist cart")
	}
	return nil
}

// Remove drops the whole line for the given product id. Removing an id that
// is not in the cart is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	lines := s.Items(ctx)
	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if line.ID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return nil
	}

	if err := kv.Write(ctx, s.store, StorageKey, kept); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "kv: persist cart")
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	if err := kv.Write(ctx, s.store, StorageKey, []types.CartLine{}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "kv: persist cart")
	}
	return nil
}
