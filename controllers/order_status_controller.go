package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/repositories"
)

// GetOrderStatuses returns every order status in display order
func GetOrderStatuses(c *gin.Context) {
	statuses, err := repositories.NewOrderStatusRepository(config.GetDB()).AllOrdered()
	if err != nil {
		respondServerError(c, "Failed to fetch order statuses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    statuses,
	})
}
