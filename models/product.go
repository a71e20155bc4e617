package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a sellable product. Name and SKU uniqueness is enforced
// at validation time among non-deleted rows.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"index;not null" json:"name"`
	Description *string        `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	SKU         string         `gorm:"index;not null" json:"sku"` // uppercase alnum/hyphen/underscore
	CreatedBy   *uint          `json:"created_by"`
	UpdatedBy   *uint          `json:"updated_by"`
	DeletedBy   *uint          `json:"deleted_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
