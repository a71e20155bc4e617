package repositories

import (
	"strings"

	"github.com/mvera-dev/backoffice-api/models"
	"gorm.io/gorm"
)

// CustomerRepository centralizes customer query construction
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository backed by db
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Find returns a customer by id or gorm.ErrRecordNotFound
func (r *CustomerRepository) Find(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindAny returns a customer by id including soft-deleted rows
func (r *CustomerRepository) FindAny(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Unscoped().First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetFiltered returns a page of customers matching the filter, newest first by
// default. Filters combine with AND; empty filter values are no-ops.
func (r *CustomerRepository) GetFiltered(filter CustomerFilter) ([]models.Customer, *Pagination, error) {
	query := filter.scope(r.db, &models.Customer{})

	if filter.Email != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(filter.Email)+"%")
	}

	if filter.HasOrders != nil {
		existing := "EXISTS (SELECT 1 FROM orders WHERE orders.customer_id = customers.id AND orders.deleted_at IS NULL)"
		if *filter.HasOrders {
			query = query.Where(existing)
		} else {
			query = query.Where("NOT " + existing)
		}
	}

	query = applyDateRange(query, filter.CreatedFrom, filter.CreatedTo)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var customers []models.Customer
	err := query.Order(filter.orderClause()).
		Offset(filter.offset()).
		Limit(filter.PerPage).
		Find(&customers).Error
	if err != nil {
		return nil, nil, err
	}

	return customers, NewPagination(filter.Page, filter.PerPage, total, len(customers)), nil
}

// Create persists a new customer
func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update applies the given column updates to a customer
func (r *CustomerRepository) Update(id uint, updates map[string]interface{}) error {
	if _, err := r.Find(id); err != nil {
		return err
	}
	return r.db.Model(&models.Customer{}).Where("id = ?", id).Updates(updates).Error
}

// SoftDelete marks a customer deleted, recording the deleting actor
func (r *CustomerRepository) SoftDelete(id uint, deletedBy *uint) error {
	customer, err := r.Find(id)
	if err != nil {
		return err
	}
	if deletedBy != nil {
		if err := r.db.Model(customer).Update("deleted_by", *deletedBy).Error; err != nil {
			return err
		}
	}
	return r.db.Delete(customer).Error
}

// Restore clears the soft-delete marker on a customer
func (r *CustomerRepository) Restore(id uint) error {
	return r.db.Unscoped().Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_at": nil, "deleted_by": nil}).Error
}

// EmailTaken reports whether a non-deleted customer other than excludeID
// already uses the email
func (r *CustomerRepository) EmailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}
