// Package reservation sequences add-to-cart as reserve-then-commit. Stock is
// deducted at the authority before the cart line exists, so two shoppers
// cannot both claim the last unit; a failed reservation leaves the cart
// untouched.
package reservation

import (
	"context"

	"github.com/teltechdev/teltech-backend/internal/storefront/cart"
	"github.com/teltechdev/teltech-backend/internal/storefront/views"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"github.com/teltechdev/teltech-backend/pkg/logger"
	"github.com/teltechdev/teltech-backend/pkg/types"
)

// StockReserver deducts stock at the authority. An error means nothing was
// deducted or the deduction is unknown, and the cart must not change.
type StockReserver interface {
	Reserve(ctx context.Context, productID string, quantity int) error
}

// Coordinator runs the two-phase add-to-cart. With a nil reserver it runs in
// optimistic mode: the local catalog is the only authority and the cart
// commits directly.
type Coordinator struct {
	reserver StockReserver
	cart     *cart.Store
	views    *views.Registry
	logg     *logger.Logger
}

// NewPessimistic builds a coordinator that reserves stock remotely before
// committing a cart line.
func NewPessimistic(reserver StockReserver, cartStore *cart.Store, registry *views.Registry, logg *logger.Logger) *Coordinator {
	return &Coordinator{reserver: reserver, cart: cartStore, views: registry, logg: logg}
}

// NewOptimistic builds a coordinator without a stock authority. Cart adds
// commit unconditionally.
func NewOptimistic(cartStore *cart.Store, registry *views.Registry, logg *logger.Logger) *Coordinator {
	return &Coordinator{cart: cartStore, views: registry, logg: logg}
}

// AddToCart reserves stock (pessimistic mode only), merges the line into the
// cart, then refreshes all views. Reservation failure aborts before any cart
// mutation.
func (c *Coordinator) AddToCart(ctx context.Context, product types.Product, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	if c.reserver != nil {
		if err := c.reserver.Reserve(ctx, product.ID, quantity); err != nil {
			if c.logg != nil {
				c.logg.Warn(c.logg.WithProductID(ctx, product.ID), "stock reservation refused")
			}
			return err
		}
	}

	if err := c.cart.Add(ctx, product, quantity); err != nil {
		return err
	}
	c.refresh(ctx)
	return nil
}

// RemoveFromCart drops the line for the product id and refreshes all views.
// Reserved stock is not returned to the catalog; see the catalog service for
// restocking.
func (c *Coordinator) RemoveFromCart(ctx context.Context, productID string) error {
	if err := c.cart.Remove(ctx, productID); err != nil {
		return err
	}
	c.refresh(ctx)
	return nil
}

func (c *Coordinator) refresh(ctx context.Context) {
	if c.views == nil {
		return
	}
	if err := c.views.RefreshAll(ctx); err != nil && c.logg != nil {
		c.logg.Error(ctx, "view refresh after cart change", err)
	}
}
