package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/middleware"
	"github.com/mvera-dev/backoffice-api/repositories"
	"github.com/mvera-dev/backoffice-api/requests"
)

// GetCustomers returns a filtered, sorted, paginated customer listing
func GetCustomers(c *gin.Context) {
	var req requests.CustomerIndexRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadQuery(c, err)
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	customers, pagination, err := repositories.NewCustomerRepository(config.GetDB()).GetFiltered(req.Filter())
	if err != nil {
		respondServerError(c, "Failed to fetch customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       customers,
		"pagination": pagination,
		"filters":    req.AppliedFilters(),
	})
}

// GetCustomer returns a single customer by id
func GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Customer")
		return
	}

	customer, err := repositories.NewCustomerRepository(config.GetDB()).Find(id)
	if err != nil {
		respondNotFound(c, "Customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// CreateCustomer validates and persists a new customer
func CreateCustomer(c *gin.Context) {
	var req requests.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	db := config.GetDB()
	if errs := req.Validate(db, 0); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	customer := req.Model(middleware.CurrentUserID(c))
	if err := repositories.NewCustomerRepository(db).Create(customer); err != nil {
		respondServerError(c, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Customer created successfully",
		"data":    customer,
	})
}

// UpdateCustomer validates and applies a full update to a customer
func UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Customer")
		return
	}

	db := config.GetDB()
	repo := repositories.NewCustomerRepository(db)
	if _, err := repo.Find(id); err != nil {
		respondNotFound(c, "Customer")
		return
	}

	var req requests.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}
	if errs := req.Validate(db, id); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if err := repo.Update(id, req.Updates(middleware.CurrentUserID(c))); err != nil {
		respondServerError(c, "Failed to update customer")
		return
	}

	customer, err := repo.Find(id)
	if err != nil {
		respondServerError(c, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Customer updated successfully",
		"data":    customer,
	})
}

// DeleteCustomer soft-deletes a customer, stamping the deleting actor
func DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Customer")
		return
	}

	err := repositories.NewCustomerRepository(config.GetDB()).SoftDelete(id, middleware.CurrentUserID(c))
	if err != nil {
		if isNotFound(err) {
			respondNotFound(c, "Customer")
			return
		}
		respondServerError(c, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Customer deleted successfully",
	})
}

// RestoreCustomer clears the soft-delete marker on a customer
func RestoreCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Customer")
		return
	}

	repo := repositories.NewCustomerRepository(config.GetDB())
	if _, err := repo.FindAny(id); err != nil {
		respondNotFound(c, "Customer")
		return
	}
	if err := repo.Restore(id); err != nil {
		respondServerError(c, "Failed to restore customer")
		return
	}

	customer, err := repo.Find(id)
	if err != nil {
		respondServerError(c, "Failed to restore customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Customer restored successfully",
		"data":    customer,
	})
}
