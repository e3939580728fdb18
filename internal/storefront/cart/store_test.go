package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/teltechdev/teltech-backend/pkg/kv"
	"github.com/teltechdev/teltech-backend/pkg/types"
)

func newStore() *Store {
	return NewStore(kv.NewStore(kv.NewMemoryBackend(), nil, nil), nil)
}

func widget() types.Product {
	return types.Product{ID: "w1", Name: "Widget", Price: decimal.NewFromFloat(9.99), Category: "tools"}
}

func TestItemsEmptyCart(t *testing.T) {
	store := newStore()

	items := store.Items(context.Background())
	if items == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(items))
	}
}

func TestAddMergesByProductID(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	if err := store.Add(ctx, widget(), 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := store.Add(ctx, widget(), 2); err != nil {
		t.Fatalf("second add: %v", err)
	}

	items := store.Items(ctx)
	if len(items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
}

func TestAddSnapshotsNameAndPrice(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	product := widget()
	if err := store.Add(ctx, product, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// A later catalog edit must not reprice the existing line.
	product.Name = "Widget Pro"
	product.Price = decimal.NewFromInt(20)

	items := store.Items(ctx)
	if items[0].Name != "Widget" || !items[0].Price.Equal(decimal.NewFromFloat(9.99)) {
		t.Fatalf("line should keep add-time snapshot, got %+v", items[0])
	}
}

func TestAddRejectsZeroQuantity(t *testing.T) {
	store := newStore()

	if err := store.Add(context.Background(), widget(), 0); err == nil {
		t.Fatal("expected validation error for zero quantity")
	}
	if len(store.Items(context.Background())) != 0 {
		t.Fatal("rejected add must not change the cart")
	}
}

func TestRemoveDropsWholeLine(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	other := types.Product{ID: "g1", Name: "Gadget", Price: decimal.NewFromInt(7)}
	store.Add(ctx, widget(), 3)
	store.Add(ctx, other, 1)

	if err := store.Remove(ctx, "w1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	items := store.Items(ctx)
	if len(items) != 1 || items[0].ID != "g1" {
		t.Fatalf("expected only gadget to remain, got %+v", items)
	}
}

func TestRemoveAbsentIDIsNoop(t *testing.T) {
	store := newStore()
	ctx := context.Background()
	store.Add(ctx, widget(), 1)

	if err := store.Remove(ctx, "missing"); err != nil {
		t.Fatalf("remove of absent id should be a no-op, got %v", err)
	}
	if len(store.Items(ctx)) != 1 {
		t.Fatal("no-op remove must not change the cart")
	}
}

func TestCountSumsUnits(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	store.Add(ctx, widget(), 2)
	store.Add(ctx, types.Product{ID: "g1", Name: "Gadget", Price: decimal.NewFromInt(7)}, 3)

	if got := store.Count(ctx); got != 5 {
		t.Fatalf("expected count 5, got %d", got)
	}
}

func TestClear(t *testing.T) {
	store := newStore()
	ctx := context.Background()
	store.Add(ctx, widget(), 2)

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := store.Count(ctx); got != 0 {
		t.Fatalf("expected empty cart, got count %d", got)
	}
}
