package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/middleware"
	"github.com/mvera-dev/backoffice-api/repositories"
	"github.com/mvera-dev/backoffice-api/requests"
)

// GetProducts returns a filtered, sorted, paginated product listing
func GetProducts(c *gin.Context) {
	var req requests.ProductIndexRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadQuery(c, err)
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	products, pagination, err := repositories.NewProductRepository(config.GetDB()).GetFiltered(req.Filter())
	if err != nil {
		respondServerError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       products,
		"pagination": pagination,
		"filters":    req.AppliedFilters(),
	})
}

// GetProduct returns a single product by id
func GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Product")
		return
	}

	product, err := repositories.NewProductRepository(config.GetDB()).Find(id)
	if err != nil {
		respondNotFound(c, "Product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// CreateProduct validates and persists a new product
func CreateProduct(c *gin.Context) {
	var req requests.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	db := config.GetDB()
	if errs := req.Validate(db, 0); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	product := req.Model(middleware.CurrentUserID(c))
	if err := repositories.NewProductRepository(db).Create(product); err != nil {
		respondServerError(c, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}

// UpdateProduct validates and applies a partial update to a product
func UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Product")
		return
	}

	db := config.GetDB()
	repo := repositories.NewProductRepository(db)
	if _, err := repo.Find(id); err != nil {
		respondNotFound(c, "Product")
		return
	}

	var req requests.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}
	if errs := req.Validate(db, id); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if err := repo.Update(id, req.Updates(middleware.CurrentUserID(c))); err != nil {
		respondServerError(c, "Failed to update product")
		return
	}

	product, err := repo.Find(id)
	if err != nil {
		respondServerError(c, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DeleteProduct soft-deletes a product. Existing order line items keep their
// frozen prices and stay attached to the deleted product row.
func DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Product")
		return
	}

	err := repositories.NewProductRepository(config.GetDB()).SoftDelete(id, middleware.CurrentUserID(c))
	if err != nil {
		if isNotFound(err) {
			respondNotFound(c, "Product")
			return
		}
		respondServerError(c, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// RestoreProduct clears the soft-delete marker on a product
func RestoreProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Product")
		return
	}

	repo := repositories.NewProductRepository(config.GetDB())
	if _, err := repo.FindAny(id); err != nil {
		respondNotFound(c, "Product")
		return
	}
	if err := repo.Restore(id); err != nil {
		respondServerError(c, "Failed to restore product")
		return
	}

	product, err := repo.Find(id)
	if err != nil {
		respondServerError(c, "Failed to restore product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product restored successfully",
		"data":    product,
	})
}
