package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teltechdev/teltech-backend/pkg/db"
	"github.com/teltechdev/teltech-backend/pkg/db/models"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	client := db.FromConn(conn)
	svc, err := NewService(NewRepository(conn), client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client
}

func validInput() ProductInput {
	return ProductInput{
		Name:     "Widget",
		Price:    decimal.NewFromFloat(9.99),
		Category: "tools",
	}
}

func TestListProductsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if products == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(products) != 0 {
		t.Fatalf("expected empty catalog, got %d", len(products))
	}
}

func TestCreateAndListProducts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned id")
	}

	products, err := svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Widget" {
		t.Fatalf("unexpected catalog: %+v", products)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newTestService(t)

	input := validInput()
	input.Name = "   "
	_, err := svc.CreateProduct(context.Background(), input)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	products, _ := svc.ListProducts(context.Background())
	if len(products) != 0 {
		t.Fatal("rejected create must not persist anything")
	}
}

func TestUpdateProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, _ := svc.CreateProduct(ctx, validInput())
	id, err := uuid.Parse(created.ID)
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}

	input := validInput()
	input.Name = "Widget Pro"
	input.Price = decimal.NewFromInt(15)

	updated, err := svc.UpdateProduct(ctx, id, input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Widget Pro" || !updated.Price.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("unexpected product: %+v", updated)
	}
}

func TestUpdateUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateProduct(context.Background(), uuid.New(), validInput())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, _ := svc.CreateProduct(ctx, validInput())
	id, _ := uuid.Parse(created.ID)

	if err := svc.DeleteProduct(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	products, _ := svc.ListProducts(ctx)
	if len(products) != 0 {
		t.Fatalf("expected empty catalog after delete, got %d", len(products))
	}

	err := svc.DeleteProduct(ctx, id)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestListOrderIsStable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	names := []string{"Alpha", "Beta", "Gamma"}
	for _, name := range names {
		input := validInput()
		input.Name = name
		if _, err := svc.CreateProduct(ctx, input); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	products, err := svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, name := range names {
		if products[i].Name != name {
			t.Fatalf("expected %s at position %d, got %s", name, i, products[i].Name)
		}
	}
}
