package models

import "time"

// OrderItem is a line item linking an Order to a Product. The unit price is a
// snapshot taken at order time; line_total = quantity * unit_price is computed
// once at write time and never recomputed from the current product price.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	LineTotal float64   `gorm:"not null" json:"line_total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
