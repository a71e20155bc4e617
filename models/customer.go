package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a customer record in the back office.
// Email uniqueness is enforced at validation time among non-deleted rows,
// so a soft-deleted customer does not block re-use of their email address.
type Customer struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	FirstName   string         `gorm:"not null" json:"first_name"`
	LastName    string         `gorm:"not null" json:"last_name"`
	Email       string         `gorm:"index;not null" json:"email"`
	Phone       *string        `json:"phone"`
	Address     *string        `json:"address"`
	City        *string        `json:"city"`
	State       *string        `json:"state"`
	PostalCode  *string        `json:"postal_code"`
	Country     *string        `json:"country"`
	DateOfBirth *string        `gorm:"type:date" json:"date_of_birth"`
	Notes       *string        `json:"notes"`
	CreatedBy   *uint          `json:"created_by"`
	UpdatedBy   *uint          `json:"updated_by"`
	DeletedBy   *uint          `json:"deleted_by"`
	Orders      []Order        `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
