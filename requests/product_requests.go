package requests

import (
	"github.com/mvera-dev/backoffice-api/models"
	"github.com/mvera-dev/backoffice-api/repositories"
	"gorm.io/gorm"
)

// ProductSortFields is the sort_by allow-list for product listings
var ProductSortFields = []string{"id", "name", "price", "created_at", "updated_at"}

// ProductRequest is the validated body for creating or updating a product.
// Name and price are required on create and optional on update; pointer
// fields distinguish "absent" from "zero".
type ProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=255,product_name"`
	Description *string  `json:"description" validate:"omitempty,min=10,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0.01,lte=999999.99,decimal2"`
	SKU         *string  `json:"sku" validate:"omitempty,min=3,max=50,sku"`
}

var productMessages = map[string]string{
	"name.min":          "Product name must be at least 2 characters.",
	"name.max":          "Product name may not be greater than 255 characters.",
	"name.product_name": "Product name may only contain letters, numbers, spaces, hyphens, underscores, ampersands, periods, commas, and parentheses.",
	"description.min":   "Description must be at least 10 characters.",
	"description.max":   "Description may not be greater than 2000 characters.",
	"price.gte":         "Price must be at least 0.01.",
	"price.lte":         "Price may not be greater than 999,999.99.",
	"price.decimal2":    "Price must be in valid format (e.g., 10.99).",
	"sku.min":           "SKU must be at least 3 characters.",
	"sku.max":           "SKU may not be greater than 50 characters.",
	"sku.sku":           "SKU may only contain uppercase letters, numbers, hyphens, and underscores.",
}

// Validate runs the declarative rules, the required-on-create checks, and the
// uniqueness checks against non-deleted products
func (r *ProductRequest) Validate(db *gorm.DB, excludeID uint) Errors {
	errs := runValidation(r, productMessages)

	if excludeID == 0 {
		if r.Name == nil {
			errs.Add("name", "Product name is required.")
		}
		if r.Price == nil {
			errs.Add("price", "Price is required.")
		}
	}

	repo := repositories.NewProductRepository(db)
	if _, bad := errs["name"]; !bad && r.Name != nil {
		if taken, err := repo.NameTaken(*r.Name, excludeID); err == nil && taken {
			errs.Add("name", "This product name is already in use.")
		}
	}
	if _, bad := errs["sku"]; !bad && r.SKU != nil {
		if taken, err := repo.SKUTaken(*r.SKU, excludeID); err == nil && taken {
			errs.Add("sku", "This SKU is already in use.")
		}
	}

	return errs
}

// Model maps the validated request onto a product record. A missing SKU is
// generated at the repository layer.
func (r *ProductRequest) Model(createdBy *uint) *models.Product {
	product := &models.Product{
		Description: r.Description,
		CreatedBy:   createdBy,
	}
	if r.Name != nil {
		product.Name = *r.Name
	}
	if r.Price != nil {
		product.Price = *r.Price
	}
	if r.SKU != nil {
		product.SKU = *r.SKU
	}
	return product
}

// Updates maps the fields present in the request onto a column-update set
func (r *ProductRequest) Updates(updatedBy *uint) map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.SKU != nil {
		updates["sku"] = *r.SKU
	}
	if updatedBy != nil {
		updates["updated_by"] = *updatedBy
	}
	return updates
}

// ProductIndexRequest is the validated query string for product listings
type ProductIndexRequest struct {
	Name     string   `form:"name"`
	PriceMin *float64 `form:"price_min"`
	PriceMax *float64 `form:"price_max"`
	ListParams
}

// Validate checks every filter; absent values are no-ops
func (r *ProductIndexRequest) Validate() Errors {
	errs := Errors{}
	if r.PriceMin != nil && *r.PriceMin < 0 {
		errs.Add("price_min", "The minimum price must be at least 0.")
	}
	if r.PriceMax != nil && *r.PriceMax < 0 {
		errs.Add("price_max", "The maximum price must be at least 0.")
	}
	if r.PriceMin != nil && r.PriceMax != nil && *r.PriceMin > *r.PriceMax {
		errs.Add("price_min", "The minimum price must be less than or equal to the maximum price.")
	}
	r.validateList(errs, ProductSortFields)
	return errs
}

// Filter builds the immutable filter value object for the query layer
func (r *ProductIndexRequest) Filter() repositories.ProductFilter {
	return repositories.ProductFilter{
		Name:        r.Name,
		PriceMin:    r.PriceMin,
		PriceMax:    r.PriceMax,
		ListOptions: r.options(),
	}
}

// AppliedFilters echoes the active filters for the response envelope
func (r *ProductIndexRequest) AppliedFilters() map[string]interface{} {
	filters := r.sortedFilters()
	filters["name"] = r.Name
	filters["price_min"] = r.PriceMin
	filters["price_max"] = r.PriceMax
	return filters
}
