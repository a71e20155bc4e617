package repositories

import (
	"github.com/mvera-dev/backoffice-api/models"
	"gorm.io/gorm"
)

// OrderStatusRepository centralizes order status lookups
type OrderStatusRepository struct {
	db *gorm.DB
}

// NewOrderStatusRepository creates an order status repository backed by db
func NewOrderStatusRepository(db *gorm.DB) *OrderStatusRepository {
	return &OrderStatusRepository{db: db}
}

// Find returns a status by id or gorm.ErrRecordNotFound
func (r *OrderStatusRepository) Find(id uint) (*models.OrderStatus, error) {
	var status models.OrderStatus
	if err := r.db.First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// AllOrdered returns every status in display order
func (r *OrderStatusRepository) AllOrdered() ([]models.OrderStatus, error) {
	var statuses []models.OrderStatus
	if err := r.db.Order("sort_order asc").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// StatusSummary is an order status together with its non-deleted order count
type StatusSummary struct {
	models.OrderStatus
	OrdersCount int64 `json:"orders_count"`
}

// Summary returns every status in display order with the count of non-deleted
// orders currently in it
func (r *OrderStatusRepository) Summary() ([]StatusSummary, error) {
	var summaries []StatusSummary
	err := r.db.Model(&models.OrderStatus{}).
		Select("order_statuses.*, (SELECT COUNT(*) FROM orders WHERE orders.status_id = order_statuses.id AND orders.deleted_at IS NULL) AS orders_count").
		Order("sort_order asc").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Exists reports whether a status with the id exists
func (r *OrderStatusRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.OrderStatus{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
