package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/teltechdev/teltech-backend/pkg/db"
	"github.com/teltechdev/teltech-backend/pkg/db/models"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service is the stock authority. Deductions are atomic: two concurrent
// reservations can never push a tracked quantity below zero.
type Service interface {
	Deduct(ctx context.Context, productID uuid.UUID, quantity int) (*DeductResult, error)
}

// DeductResult reports the stock level after a successful deduction.
// Remaining is nil for products that do not track stock.
type DeductResult struct {
	ProductID uuid.UUID `json:"product_id"`
	Remaining *int      `json:"remaining"`
}

type service struct {
	dbClient *db.Client
}

// NewService constructs the stock service.
func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{dbClient: dbClient}, nil
}

// Deduct subtracts quantity from the product's tracked stock inside a
// transaction. The guarded UPDATE only matches when enough stock remains, so
// the check and the decrement are a single atomic step.
func (s *service) Deduct(ctx context.Context, productID uuid.UUID, quantity int) (*DeductResult, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	result := &DeductResult{ProductID: productID}
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", productID, quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
		if res.Error != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "db: deduct stock")
		}
		if res.RowsAffected == 1 {
			var product models.Product
			if err := tx.First(&product, "id = ?", productID).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload product")
			}
			result.Remaining = product.Quantity
			return nil
		}

		// The guard did not match: missing row, untracked stock, or not
		// enough units. Look at the row to tell them apart.
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		if product.Quantity == nil {
			// Untracked stock always accepts; nothing to decrement.
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
			WithDetails(map[string]int{"available": *product.Quantity, "requested": quantity})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
