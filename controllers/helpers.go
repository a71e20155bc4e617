package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/requests"
	"gorm.io/gorm"
)

// parseID parses the :id route parameter. A non-numeric id behaves like a
// missing record, so both cases surface as 404.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": resource + " not found",
	})
}

func respondValidation(c *gin.Context, errs requests.Errors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"success": false,
		"message": "Validation failed.",
		"errors":  errs,
	})
}

func respondBadBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func respondBadQuery(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid query parameters",
		"error":   err.Error(),
	})
}

func respondServerError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": message,
	})
}
