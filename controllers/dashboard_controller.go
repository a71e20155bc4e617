package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/models"
	"github.com/mvera-dev/backoffice-api/repositories"
)

// statusCount is one row of the orders-by-status breakdown
type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GetDashboardStats aggregates the landing-page numbers: order counts and
// breakdown, recent orders, customer growth, product count and revenue.
// Soft-deleted rows are excluded from every figure.
func GetDashboardStats(c *gin.Context) {
	db := config.GetDB()
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var totalOrders int64
	if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		respondServerError(c, "Failed to fetch dashboard stats")
		return
	}

	var byStatus []statusCount
	err := db.Model(&models.Order{}).
		Select("order_statuses.name AS status, COUNT(orders.id) AS count").
		Joins("JOIN order_statuses ON order_statuses.id = orders.status_id").
		Group("order_statuses.name").
		Scan(&byStatus).Error
	if err != nil {
		respondServerError(c, "Failed to fetch dashboard stats")
		return
	}

	var recent []models.Order
	err = db.Preload("Customer").Preload("Status").Preload("Items").
		Order("created_at desc, id desc").
		Limit(10).
		Find(&recent).Error
	if err != nil {
		respondServerError(c, "Failed to fetch dashboard stats")
		return
	}
	recentData := make([]gin.H, 0, len(recent))
	for _, order := range recent {
		customerName := ""
		if order.Customer != nil {
			customerName = order.Customer.FirstName + " " + order.Customer.LastName
		}
		statusName := ""
		if order.Status != nil {
			statusName = order.Status.Name
		}
		recentData = append(recentData, gin.H{
			"id":            order.ID,
			"customer_name": customerName,
			"status":        statusName,
			"total":         order.Total,
			"product_count": len(order.Items),
			"created_at":    order.CreatedAt,
		})
	}

	var totalCustomers, newCustomers int64
	if err := db.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		respondServerError(c, "Failed to fetch dashboard stats")
		return
	}
	if err := db.Model(&models.Customer{}).Where("created_at >= ?", monthStart).Count(&newCustomers).Error; err != nil {
		respondServerError(c, "Failed to fetch dashboard stats")
		return
	}

	var totalProducts int64
	if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		respondServerError(c, "Failed to fetch dashboard stats")
		return
	}

	var totalRevenue, monthRevenue float64
	if err := db.Model(&models.Order{}).Select("COALESCE(SUM(total), 0)").Scan(&totalRevenue).Error; err != nil {
		respondServerError(c, "Failed to fetch dashboard stats")
		return
	}
	err = db.Model(&models.Order{}).
		Where("created_at >= ?", monthStart).
		Select("COALESCE(SUM(total), 0)").
		Scan(&monthRevenue).Error
	if err != nil {
		respondServerError(c, "Failed to fetch dashboard stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"orders": gin.H{
				"total":     totalOrders,
				"by_status": byStatus,
				"recent":    recentData,
			},
			"customers": gin.H{
				"total":          totalCustomers,
				"new_this_month": newCustomers,
			},
			"products": gin.H{
				"total": totalProducts,
			},
			"revenue": gin.H{
				"total":      totalRevenue,
				"this_month": monthRevenue,
			},
		},
	})
}

// GetOrderStatusSummary returns every status in display order with the count
// of non-deleted orders currently in it
func GetOrderStatusSummary(c *gin.Context) {
	summaries, err := repositories.NewOrderStatusRepository(config.GetDB()).Summary()
	if err != nil {
		respondServerError(c, "Failed to fetch order status summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summaries,
	})
}
