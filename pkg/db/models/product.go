package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the canonical catalog row; the server is the sole authority for
// its stock quantity.
type Product struct {
	ID       uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name     string          `gorm:"column:name;not null"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Category string          `gorm:"column:category;not null"`
	// Quantity is nullable: products without tracked stock never reject
	// reservations.
	Quantity  *int      `gorm:"column:quantity"`
	Image     string    `gorm:"column:image;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the id client-side so the model works on both
// postgres and sqlite.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
