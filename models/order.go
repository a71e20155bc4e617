package models

import (
	"time"

	"gorm.io/gorm"
)

// Order represents a customer order in the back office
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CustomerID      uint           `gorm:"not null;index" json:"customer_id"`
	Customer        *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	StatusID        uint           `gorm:"not null;index" json:"status_id"`
	Status          *OrderStatus   `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Total           float64        `gorm:"not null" json:"total"`
	Currency        *string        `json:"currency"`
	Notes           *string        `json:"notes"`
	ShippingAddress *string        `json:"shipping_address"`
	BillingAddress  *string        `json:"billing_address"`
	Items           []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedBy       *uint          `json:"created_by"`
	UpdatedBy       *uint          `json:"updated_by"`
	DeletedBy       *uint          `json:"deleted_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
