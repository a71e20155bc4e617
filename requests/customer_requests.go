package requests

import (
	"github.com/mvera-dev/backoffice-api/models"
	"github.com/mvera-dev/backoffice-api/repositories"
	"gorm.io/gorm"
)

// CustomerSortFields is the sort_by allow-list for customer listings
var CustomerSortFields = []string{"id", "first_name", "last_name", "email", "created_at", "updated_at"}

// CustomerRequest is the validated body for creating or updating a customer
type CustomerRequest struct {
	FirstName   string  `json:"first_name" validate:"required,min=2,max=100,person_name"`
	LastName    string  `json:"last_name" validate:"required,min=2,max=100,person_name"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,min=10,max=20,phone_e164"`
	Address     *string `json:"address" validate:"omitempty,min=10,max=500"`
	City        *string `json:"city" validate:"omitempty,min=2,max=100,person_name"`
	State       *string `json:"state" validate:"omitempty,min=2,max=100,person_name"`
	PostalCode  *string `json:"postal_code" validate:"omitempty,min=5,max=20,postal_code"`
	Country     *string `json:"country" validate:"omitempty,min=2,max=100,person_name"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,dob"`
	Notes       *string `json:"notes" validate:"omitempty,max=1000"`
}

var customerMessages = map[string]string{
	"first_name.required":      "First name is required.",
	"first_name.min":           "First name must be at least 2 characters.",
	"first_name.max":           "First name may not be greater than 100 characters.",
	"first_name.person_name":   "First name may only contain letters, spaces, hyphens, and apostrophes.",
	"last_name.required":       "Last name is required.",
	"last_name.min":            "Last name must be at least 2 characters.",
	"last_name.max":            "Last name may not be greater than 100 characters.",
	"last_name.person_name":    "Last name may only contain letters, spaces, hyphens, and apostrophes.",
	"email.required":           "Email is required.",
	"email.email":              "Enter a valid email address.",
	"email.max":                "Email may not be greater than 255 characters.",
	"phone.min":                "Phone number must be at least 10 characters.",
	"phone.max":                "Phone number may not be greater than 20 characters.",
	"phone.phone_e164":         "Phone number must start with + followed by numbers only (e.g., +1234567890).",
	"address.min":              "Address must be at least 10 characters.",
	"address.max":              "Address may not be greater than 500 characters.",
	"city.min":                 "City must be at least 2 characters.",
	"city.max":                 "City may not be greater than 100 characters.",
	"city.person_name":         "City may only contain letters, spaces, hyphens, and apostrophes.",
	"state.min":                "State must be at least 2 characters.",
	"state.max":                "State may not be greater than 100 characters.",
	"state.person_name":        "State may only contain letters, spaces, hyphens, and apostrophes.",
	"postal_code.min":          "Postal code must be at least 5 characters.",
	"postal_code.max":          "Postal code may not be greater than 20 characters.",
	"postal_code.postal_code":  "Postal code may only contain letters, numbers, spaces, and hyphens.",
	"country.min":              "Country must be at least 2 characters.",
	"country.max":              "Country may not be greater than 100 characters.",
	"country.person_name":      "Country may only contain letters, spaces, hyphens, and apostrophes.",
	"date_of_birth.dob":        "Date of birth must be a valid date between 1900-01-01 and today.",
	"notes.max":                "Notes may not be greater than 1000 characters.",
}

// Validate runs the declarative rules and the uniqueness check against
// non-deleted customers. excludeID is the customer being updated, or zero on
// create.
func (r *CustomerRequest) Validate(db *gorm.DB, excludeID uint) Errors {
	errs := runValidation(r, customerMessages)

	if _, taken := errs["email"]; !taken && r.Email != "" {
		exists, err := repositories.NewCustomerRepository(db).EmailTaken(r.Email, excludeID)
		if err == nil && exists {
			errs.Add("email", "This email is already in use.")
		}
	}

	return errs
}

// Model maps the validated request onto a customer record
func (r *CustomerRequest) Model(createdBy *uint) *models.Customer {
	return &models.Customer{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		PostalCode:  r.PostalCode,
		Country:     r.Country,
		DateOfBirth: r.DateOfBirth,
		Notes:       r.Notes,
		CreatedBy:   createdBy,
	}
}

// Updates maps the validated request onto a column-update set
func (r *CustomerRequest) Updates(updatedBy *uint) map[string]interface{} {
	updates := map[string]interface{}{
		"first_name":    r.FirstName,
		"last_name":     r.LastName,
		"email":         r.Email,
		"phone":         r.Phone,
		"address":       r.Address,
		"city":          r.City,
		"state":         r.State,
		"postal_code":   r.PostalCode,
		"country":       r.Country,
		"date_of_birth": r.DateOfBirth,
		"notes":         r.Notes,
	}
	if updatedBy != nil {
		updates["updated_by"] = *updatedBy
	}
	return updates
}

// CustomerIndexRequest is the validated query string for customer listings
type CustomerIndexRequest struct {
	Email       string `form:"email"`
	HasOrders   *bool  `form:"has_orders"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
	ListParams
}

// Validate checks every filter; absent values are no-ops
func (r *CustomerIndexRequest) Validate() Errors {
	errs := Errors{}
	if r.Email != "" {
		if err := validate.Var(r.Email, "email"); err != nil {
			errs.Add("email", "The email must be a valid email address.")
		}
	}
	validateDateRange(errs, r.CreatedFrom, r.CreatedTo)
	r.validateList(errs, CustomerSortFields)
	return errs
}

// Filter builds the immutable filter value object for the query layer
func (r *CustomerIndexRequest) Filter() repositories.CustomerFilter {
	return repositories.CustomerFilter{
		Email:       r.Email,
		HasOrders:   r.HasOrders,
		CreatedFrom: r.CreatedFrom,
		CreatedTo:   r.CreatedTo,
		ListOptions: r.options(),
	}
}

// AppliedFilters echoes the active filters for the response envelope
func (r *CustomerIndexRequest) AppliedFilters() map[string]interface{} {
	filters := r.sortedFilters()
	filters["email"] = r.Email
	filters["has_orders"] = r.HasOrders
	filters["created_from"] = r.CreatedFrom
	filters["created_to"] = r.CreatedTo
	return filters
}
