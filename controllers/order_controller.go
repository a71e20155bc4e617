package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/middleware"
	"github.com/mvera-dev/backoffice-api/models"
	"github.com/mvera-dev/backoffice-api/repositories"
	"github.com/mvera-dev/backoffice-api/requests"
)

// orderDetails decorates an order with aggregates computed from its line
// items. The stored total is the caller-asserted amount; calculated_total is
// the line-item sum, surfaced so clients can flag discrepancies.
type orderDetails struct {
	*models.Order
	CalculatedTotal float64 `json:"calculated_total"`
	ProductCount    int     `json:"product_count"`
	TotalQuantity   int     `json:"total_quantity"`
}

func newOrderDetails(order *models.Order) orderDetails {
	details := orderDetails{Order: order, ProductCount: len(order.Items)}
	for _, item := range order.Items {
		details.CalculatedTotal += item.LineTotal
		details.TotalQuantity += item.Quantity
	}
	details.CalculatedTotal = math.Round(details.CalculatedTotal*100) / 100
	return details
}

// GetOrders returns a filtered, sorted, paginated order listing with
// customer, status and line-item relations loaded
func GetOrders(c *gin.Context) {
	var req requests.OrderIndexRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadQuery(c, err)
		return
	}

	db := config.GetDB()
	if errs := req.Validate(db); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	orders, pagination, err := repositories.NewOrderRepository(db).GetFiltered(req.Filter())
	if err != nil {
		respondServerError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       orders,
		"pagination": pagination,
		"filters":    req.AppliedFilters(),
	})
}

// GetOrder returns a single order with relations and computed aggregates
func GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Order")
		return
	}

	order, err := repositories.NewOrderRepository(config.GetDB()).Find(id)
	if err != nil {
		respondNotFound(c, "Order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newOrderDetails(order),
	})
}

// CreateOrder validates and persists an order with its line items in one
// transaction
func CreateOrder(c *gin.Context) {
	var req requests.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	db := config.GetDB()
	if errs := req.Validate(db, 0); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	order := req.Model(middleware.CurrentUserID(c))
	created, err := repositories.NewOrderRepository(db).CreateWithItems(order, req.LineItems())
	if err != nil {
		respondServerError(c, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order created successfully",
		"data":    newOrderDetails(created),
	})
}

// UpdateOrder validates and applies an update to an order. A products list in
// the body replaces the full line-item set; an absent list leaves the existing
// items untouched.
func UpdateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Order")
		return
	}

	db := config.GetDB()
	repo := repositories.NewOrderRepository(db)
	if _, err := repo.Find(id); err != nil {
		respondNotFound(c, "Order")
		return
	}

	var req requests.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}
	if errs := req.Validate(db, id); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	order, err := repo.UpdateWithItems(id, req.Updates(middleware.CurrentUserID(c)), req.LineItems())
	if err != nil {
		respondServerError(c, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order updated successfully",
		"data":    newOrderDetails(order),
	})
}

// UpdateOrderStatus moves an order to a different status. Re-asserting the
// current status is rejected so accidental double submissions surface.
func UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Order")
		return
	}

	db := config.GetDB()
	repo := repositories.NewOrderRepository(db)
	order, err := repo.Find(id)
	if err != nil {
		respondNotFound(c, "Order")
		return
	}

	var req requests.OrderStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}
	if errs := req.Validate(db); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if *req.StatusID == order.StatusID {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Order is already in this status",
		})
		return
	}

	updates := map[string]interface{}{"status_id": *req.StatusID}
	if actor := middleware.CurrentUserID(c); actor != nil {
		updates["updated_by"] = *actor
	}
	if err := repo.Update(id, updates); err != nil {
		respondServerError(c, "Failed to update order status")
		return
	}

	order, err = repo.Find(id)
	if err != nil {
		respondServerError(c, "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated successfully",
		"data":    order,
	})
}

// DeleteOrder soft-deletes an order. Line items stay in place so the order
// can be restored intact.
func DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Order")
		return
	}

	err := repositories.NewOrderRepository(config.GetDB()).SoftDelete(id, middleware.CurrentUserID(c))
	if err != nil {
		if isNotFound(err) {
			respondNotFound(c, "Order")
			return
		}
		respondServerError(c, "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order deleted successfully",
	})
}

// RestoreOrder clears the soft-delete marker on an order
func RestoreOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "Order")
		return
	}

	repo := repositories.NewOrderRepository(config.GetDB())
	if _, err := repo.FindAny(id); err != nil {
		respondNotFound(c, "Order")
		return
	}
	if err := repo.Restore(id); err != nil {
		respondServerError(c, "Failed to restore order")
		return
	}

	order, err := repo.Find(id)
	if err != nil {
		respondServerError(c, "Failed to restore order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order restored successfully",
		"data":    newOrderDetails(order),
	})
}
