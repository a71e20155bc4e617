package repositories

import (
	"math"

	"github.com/mvera-dev/backoffice-api/models"
	"gorm.io/gorm"
)

// LineItem is one validated order line: a product reference, a quantity and
// the unit price asserted by the caller as the price in effect at order time.
type LineItem struct {
	ProductID uint
	Quantity  int
	UnitPrice float64
}

// lineTotal freezes quantity * unit price, rounded to two fraction digits
func (li LineItem) lineTotal() float64 {
	return round2(float64(li.Quantity) * li.UnitPrice)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OrderRepository centralizes order query construction and owns the aggregate
// write path for an order header together with its line items.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository backed by db
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// preload attaches the customer, status and line-item relations
func (r *OrderRepository) preload(query *gorm.DB) *gorm.DB {
	return query.Preload("Customer").Preload("Status").Preload("Items.Product")
}

// Find returns an order with relations loaded, or gorm.ErrRecordNotFound
func (r *OrderRepository) Find(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.preload(r.db).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindAny returns an order by id including soft-deleted rows
func (r *OrderRepository) FindAny(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.preload(r.db.Unscoped()).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetFiltered returns a page of orders with relations loaded
func (r *OrderRepository) GetFiltered(filter OrderFilter) ([]models.Order, *Pagination, error) {
	query := filter.scope(r.db, &models.Order{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.StatusID != nil {
		query = query.Where("status_id = ?", *filter.StatusID)
	}
	query = applyDateRange(query, filter.CreatedFrom, filter.CreatedTo)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var orders []models.Order
	err := r.preload(query).
		Order(filter.orderClause()).
		Offset(filter.offset()).
		Limit(filter.PerPage).
		Find(&orders).Error
	if err != nil {
		return nil, nil, err
	}

	return orders, NewPagination(filter.Page, filter.PerPage, total, len(orders)), nil
}

// CreateWithItems persists an order header and its line items in a single
// transaction. Line totals are computed here and frozen; later product price
// changes never touch them.
func (r *OrderRepository) CreateWithItems(order *models.Order, items []LineItem) (*models.Order, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, item := range items {
			row := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				LineTotal: item.lineTotal(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Find(order.ID)
}

// UpdateWithItems updates an order header and, when items is non-empty,
// replaces the full line-item set: rows for products absent from the new list
// are removed, rows for present products are updated, and new ones are added.
// A nil/empty items list leaves the existing line items untouched.
func (r *OrderRepository) UpdateWithItems(id uint, updates map[string]interface{}, items []LineItem) (*models.Order, error) {
	if _, err := r.Find(id); err != nil {
		return nil, err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if len(items) == 0 {
			return nil
		}

		var existing []models.OrderItem
		if err := tx.Where("order_id = ?", id).Find(&existing).Error; err != nil {
			return err
		}
		current := make(map[uint]models.OrderItem, len(existing))
		for _, row := range existing {
			current[row.ProductID] = row
		}

		keep := make(map[uint]bool, len(items))
		for _, item := range items {
			keep[item.ProductID] = true
			if row, ok := current[item.ProductID]; ok {
				err := tx.Model(&models.OrderItem{}).Where("id = ?", row.ID).Updates(map[string]interface{}{
					"quantity":   item.Quantity,
					"unit_price": item.UnitPrice,
					"line_total": item.lineTotal(),
				}).Error
				if err != nil {
					return err
				}
				continue
			}
			row := models.OrderItem{
				OrderID:   id,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				LineTotal: item.lineTotal(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for productID, row := range current {
			if !keep[productID] {
				if err := tx.Delete(&models.OrderItem{}, row.ID).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.Find(id)
}

// Update applies header-only column updates (used by the status guard path)
func (r *OrderRepository) Update(id uint, updates map[string]interface{}) error {
	if _, err := r.Find(id); err != nil {
		return err
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// SoftDelete marks an order deleted, recording the deleting actor. Line items
// stay in place so the order remains auditable and restorable.
func (r *OrderRepository) SoftDelete(id uint, deletedBy *uint) error {
	order, err := r.Find(id)
	if err != nil {
		return err
	}
	if deletedBy != nil {
		if err := r.db.Model(&models.Order{}).Where("id = ?", id).Update("deleted_by", *deletedBy).Error; err != nil {
			return err
		}
	}
	return r.db.Delete(&models.Order{}, order.ID).Error
}

// Restore clears the soft-delete marker on an order
func (r *OrderRepository) Restore(id uint) error {
	return r.db.Unscoped().Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_at": nil, "deleted_by": nil}).Error
}
