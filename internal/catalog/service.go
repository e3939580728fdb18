package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teltechdev/teltech-backend/pkg/db"
	"github.com/teltechdev/teltech-backend/pkg/db/models"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"github.com/teltechdev/teltech-backend/pkg/types"
	"gorm.io/gorm"
)

// Service exposes catalog management operations.
type Service interface {
	ListProducts(ctx context.Context) ([]types.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*types.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*types.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

// ProductInput holds the validated payload for create and full update.
type ProductInput struct {
	Name     string
	Price    decimal.Decimal
	Category string
	Quantity *int
	Image    string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func validateInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	return nil
}

// ListProducts returns the catalog in stable order.
func (s *service) ListProducts(ctx context.Context) ([]types.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return ToWireList(products), nil
}

// CreateProduct validates and inserts a product. Validation runs before any
// persistence attempt; a failed insert leaves no partial state.
func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*types.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price,
		Category: strings.TrimSpace(input.Category),
		Quantity: input.Quantity,
		Image:    input.Image,
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}

	wire := ToWire(*created)
	return &wire, nil
}

// UpdateProduct replaces the mutable fields of a product (PUT semantics).
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*types.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}

		product.Name = strings.TrimSpace(input.Name)
		product.Price = input.Price
		product.Category = strings.TrimSpace(input.Category)
		product.Quantity = input.Quantity
		product.Image = input.Image

		updated, err = txRepo.UpdateProduct(ctx, product)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	wire := ToWire(*updated)
	return &wire, nil
}

// DeleteProduct removes a product by id.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	deleted, err := s.repo.DeleteProduct(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
