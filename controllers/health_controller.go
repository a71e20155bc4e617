package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/config"
)

// HealthCheck reports that the API process is up
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Back-office API is running",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// DatabaseStatus pings the database and reports connectivity
func DatabaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success":  false,
			"database": "disconnected",
		})
		return
	}

	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success":  false,
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"database": "connected",
	})
}
