package views

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/teltechdev/teltech-backend/internal/storefront/cart"
	"github.com/teltechdev/teltech-backend/internal/storefront/products"
)

// ProductGrid renders the shopper-facing catalog.
type ProductGrid struct {
	store products.Store
	out   io.Writer
}

func NewProductGrid(store products.Store, out io.Writer) *ProductGrid {
	return &ProductGrid{store: store, out: out}
}

func (g *ProductGrid) Name() string { return "product_grid" }

func (g *ProductGrid) Refresh(ctx context.Context) error {
	catalog := g.store.List(ctx)
	if len(catalog) == 0 {
		fmt.Fprintln(g.out, "no products available")
		return nil
	}
	for _, p := range catalog {
		stock := "∞"
		if p.Quantity != nil {
			stock = fmt.Sprintf("%d", *p.Quantity)
		}
		fmt.Fprintf(g.out, "%s  $%s  [%s]  stock: %s\n", p.Name, p.Price.StringFixed(2), p.Category, stock)
	}
	return nil
}

// AdminTable renders the management view of the catalog with ids exposed.
type AdminTable struct {
	store products.Store
	out   io.Writer
}

func NewAdminTable(store products.Store, out io.Writer) *AdminTable {
	return &AdminTable{store: store, out: out}
}

func (t *AdminTable) Name() string { return "admin_table" }

func (t *AdminTable) Refresh(ctx context.Context) error {
	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY\tQTY")
	for _, p := range t.store.List(ctx) {
		qty := "-"
		if p.Quantity != nil {
			qty = fmt.Sprintf("%d", *p.Quantity)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Category, qty)
	}
	return w.Flush()
}

// CartBadge renders the unit count shown next to the cart icon.
type CartBadge struct {
	cart *cart.Store
	out  io.Writer
}

func NewCartBadge(cartStore *cart.Store, out io.Writer) *CartBadge {
	return &CartBadge{cart: cartStore, out: out}
}

func (b *CartBadge) Name() string { return "cart_badge" }

func (b *CartBadge) Refresh(ctx context.Context) error {
	fmt.Fprintf(b.out, "cart (%d)\n", b.cart.Count(ctx))
	return nil
}
