package repositories

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mvera-dev/backoffice-api/models"
	"gorm.io/gorm"
)

// ProductRepository centralizes product query construction
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository backed by db
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Find returns a product by id or gorm.ErrRecordNotFound
func (r *ProductRepository) Find(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAny returns a product by id including soft-deleted rows
func (r *ProductRepository) FindAny(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Unscoped().First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetFiltered returns a page of products matching the filter
func (r *ProductRepository) GetFiltered(filter ProductFilter) ([]models.Product, *Pagination, error) {
	query := filter.scope(r.db, &models.Product{})

	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var products []models.Product
	err := query.Order(filter.orderClause()).
		Offset(filter.offset()).
		Limit(filter.PerPage).
		Find(&products).Error
	if err != nil {
		return nil, nil, err
	}

	return products, NewPagination(filter.Page, filter.PerPage, total, len(products)), nil
}

// Create persists a new product, generating an SKU when none was supplied
func (r *ProductRepository) Create(product *models.Product) error {
	if product.SKU == "" {
		product.SKU = GenerateSKU()
	}
	return r.db.Create(product).Error
}

// Update applies the given column updates to a product
func (r *ProductRepository) Update(id uint, updates map[string]interface{}) error {
	if _, err := r.Find(id); err != nil {
		return err
	}
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error
}

// SoftDelete marks a product deleted, recording the deleting actor
func (r *ProductRepository) SoftDelete(id uint, deletedBy *uint) error {
	product, err := r.Find(id)
	if err != nil {
		return err
	}
	if deletedBy != nil {
		if err := r.db.Model(product).Update("deleted_by", *deletedBy).Error; err != nil {
			return err
		}
	}
	return r.db.Delete(product).Error
}

// Restore clears the soft-delete marker on a product
func (r *ProductRepository) Restore(id uint) error {
	return r.db.Unscoped().Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_at": nil, "deleted_by": nil}).Error
}

// NameTaken reports whether a non-deleted product other than excludeID already
// uses the name
func (r *ProductRepository) NameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

// SKUTaken reports whether a non-deleted product other than excludeID already
// uses the SKU
func (r *ProductRepository) SKUTaken(sku string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("sku = ?", sku).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

// Exists reports whether a non-deleted product with the id exists
func (r *ProductRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GenerateSKU produces a random 8-character uppercase SKU
func GenerateSKU() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return raw[:8]
}
