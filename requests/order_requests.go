package requests

import (
	"fmt"

	"github.com/mvera-dev/backoffice-api/models"
	"github.com/mvera-dev/backoffice-api/repositories"
	"gorm.io/gorm"
)

// OrderSortFields is the sort_by allow-list for order listings
var OrderSortFields = []string{"id", "total", "created_at", "updated_at"}

// OrderItemInput is one line item in an order write request. The price is the
// unit price in effect at order time, asserted by the caller.
type OrderItemInput struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1,max=999"`
	Price     float64 `json:"price" validate:"required,gte=0.01,lte=99999.99,decimal2"`
}

// OrderRequest is the validated body for creating or updating an order.
// Status and total are required on create only. Products are required on
// create; on update an absent list leaves the existing line items untouched.
type OrderRequest struct {
	CustomerID      *uint            `json:"customer_id"`
	StatusID        *uint            `json:"status_id"`
	Total           *float64         `json:"total" validate:"omitempty,gte=0.01,lte=999999.99,decimal2"`
	Currency        *string          `json:"currency" validate:"omitempty,currency"`
	Notes           *string          `json:"notes" validate:"omitempty,max=1000"`
	ShippingAddress *string          `json:"shipping_address" validate:"omitempty,min=10,max=500"`
	BillingAddress  *string          `json:"billing_address" validate:"omitempty,min=10,max=500"`
	Products        []OrderItemInput `json:"products" validate:"omitempty,max=50,dive"`
}

var orderMessages = map[string]string{
	"total.gte":            "Total amount must be at least 0.01.",
	"total.lte":            "Total amount may not be greater than 999,999.99.",
	"total.decimal2":       "Total amount must be in valid format (e.g., 10.99).",
	"currency.currency":    "Currency must be in uppercase format (e.g., USD).",
	"notes.max":            "Notes may not be greater than 1000 characters.",
	"shipping_address.min": "Shipping address must be at least 10 characters.",
	"shipping_address.max": "Shipping address may not be greater than 500 characters.",
	"billing_address.min":  "Billing address must be at least 10 characters.",
	"billing_address.max":  "Billing address may not be greater than 500 characters.",
	"products.max":         "You may not have more than 50 products.",
	"product_id.required":  "Product ID is required for each product.",
	"quantity.required":    "Quantity is required for each product.",
	"quantity.min":         "Quantity must be at least 1.",
	"quantity.max":         "Quantity may not be greater than 999.",
	"price.required":       "Price is required for each product.",
	"price.gte":            "Price must be at least 0.01.",
	"price.lte":            "Price may not be greater than 99,999.99.",
	"price.decimal2":       "Price must be in valid format (e.g., 10.99).",
}

// Validate runs the declarative rules, the required-on-create checks, and the
// existence checks for every referenced customer, status and product.
// orderID is the order being updated, or zero on create.
func (r *OrderRequest) Validate(db *gorm.DB, orderID uint) Errors {
	errs := runValidation(r, orderMessages)

	if r.CustomerID == nil {
		errs.Add("customer_id", "Customer is required.")
	}
	if orderID == 0 {
		if r.StatusID == nil {
			errs.Add("status_id", "Order status is required.")
		}
		if r.Total == nil {
			errs.Add("total", "Total amount is required.")
		}
		if len(r.Products) == 0 {
			errs.Add("products", "At least one product is required.")
		}
	}

	if r.CustomerID != nil {
		if _, err := repositories.NewCustomerRepository(db).Find(*r.CustomerID); err != nil {
			errs.Add("customer_id", "Selected customer does not exist.")
		}
	}
	if r.StatusID != nil {
		if exists, err := repositories.NewOrderStatusRepository(db).Exists(*r.StatusID); err == nil && !exists {
			errs.Add("status_id", "Selected status does not exist.")
		}
	}

	// One row per product: the line-item sync on update is keyed by product,
	// so duplicates would leave stale rows behind
	productRepo := repositories.NewProductRepository(db)
	seen := make(map[uint]bool, len(r.Products))
	for i, item := range r.Products {
		if item.ProductID == 0 {
			continue // already reported by the required rule
		}
		if seen[item.ProductID] {
			errs.Add(fmt.Sprintf("products.%d.product_id", i), "This product appears more than once.")
			continue
		}
		seen[item.ProductID] = true
		if exists, err := productRepo.Exists(item.ProductID); err == nil && !exists {
			errs.Add(fmt.Sprintf("products.%d.product_id", i), "Selected product does not exist.")
		}
	}

	return errs
}

// Model maps the validated request onto an order header record
func (r *OrderRequest) Model(createdBy *uint) *models.Order {
	order := &models.Order{
		Currency:        r.Currency,
		Notes:           r.Notes,
		ShippingAddress: r.ShippingAddress,
		BillingAddress:  r.BillingAddress,
		CreatedBy:       createdBy,
	}
	if r.CustomerID != nil {
		order.CustomerID = *r.CustomerID
	}
	if r.StatusID != nil {
		order.StatusID = *r.StatusID
	}
	if r.Total != nil {
		order.Total = *r.Total
	}
	return order
}

// Updates maps the header fields present in the request onto a column-update
// set
func (r *OrderRequest) Updates(updatedBy *uint) map[string]interface{} {
	updates := map[string]interface{}{}
	if r.CustomerID != nil {
		updates["customer_id"] = *r.CustomerID
	}
	if r.StatusID != nil {
		updates["status_id"] = *r.StatusID
	}
	if r.Total != nil {
		updates["total"] = *r.Total
	}
	if r.Currency != nil {
		updates["currency"] = *r.Currency
	}
	if r.Notes != nil {
		updates["notes"] = *r.Notes
	}
	if r.ShippingAddress != nil {
		updates["shipping_address"] = *r.ShippingAddress
	}
	if r.BillingAddress != nil {
		updates["billing_address"] = *r.BillingAddress
	}
	if updatedBy != nil {
		updates["updated_by"] = *updatedBy
	}
	return updates
}

// LineItems converts the request's product list for the aggregate writer
func (r *OrderRequest) LineItems() []repositories.LineItem {
	items := make([]repositories.LineItem, 0, len(r.Products))
	for _, p := range r.Products {
		items = append(items, repositories.LineItem{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			UnitPrice: p.Price,
		})
	}
	return items
}

// OrderStatusUpdateRequest is the validated body for a status-only update
type OrderStatusUpdateRequest struct {
	StatusID *uint `json:"status_id"`
}

// Validate checks the status reference exists
func (r *OrderStatusUpdateRequest) Validate(db *gorm.DB) Errors {
	errs := Errors{}
	if r.StatusID == nil {
		errs.Add("status_id", "Order status is required.")
		return errs
	}
	if exists, err := repositories.NewOrderStatusRepository(db).Exists(*r.StatusID); err == nil && !exists {
		errs.Add("status_id", "Selected status does not exist.")
	}
	return errs
}

// OrderIndexRequest is the validated query string for order listings
type OrderIndexRequest struct {
	CustomerID  *uint  `form:"customer_id"`
	StatusID    *uint  `form:"status_id"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
	ListParams
}

// Validate checks every filter, including that referenced ids exist
func (r *OrderIndexRequest) Validate(db *gorm.DB) Errors {
	errs := Errors{}
	if r.CustomerID != nil {
		if _, err := repositories.NewCustomerRepository(db).Find(*r.CustomerID); err != nil {
			errs.Add("customer_id", "The selected customer does not exist.")
		}
	}
	if r.StatusID != nil {
		if exists, err := repositories.NewOrderStatusRepository(db).Exists(*r.StatusID); err == nil && !exists {
			errs.Add("status_id", "The selected status does not exist.")
		}
	}
	validateDateRange(errs, r.CreatedFrom, r.CreatedTo)
	r.validateList(errs, OrderSortFields)
	return errs
}

// Filter builds the immutable filter value object for the query layer
func (r *OrderIndexRequest) Filter() repositories.OrderFilter {
	return repositories.OrderFilter{
		CustomerID:  r.CustomerID,
		StatusID:    r.StatusID,
		CreatedFrom: r.CreatedFrom,
		CreatedTo:   r.CreatedTo,
		ListOptions: r.options(),
	}
}

// AppliedFilters echoes the active filters for the response envelope
func (r *OrderIndexRequest) AppliedFilters() map[string]interface{} {
	filters := r.sortedFilters()
	filters["customer_id"] = r.CustomerID
	filters["status_id"] = r.StatusID
	filters["created_from"] = r.CreatedFrom
	filters["created_to"] = r.CreatedTo
	return filters
}
