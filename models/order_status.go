package models

import "time"

// OrderStatus is a display status an order can be in. The sort_order defines
// the display order only; it is not a workflow graph.
type OrderStatus struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description *string   `json:"description"`
	Color       string    `gorm:"not null" json:"color"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the OrderStatus model
func (OrderStatus) TableName() string {
	return "order_statuses"
}
