package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "admin@example.com", "password")
	jane := createTestCustomer(t, db, "Jane", "Doe", "jane@example.com")
	bob := createTestCustomer(t, db, "Bob", "Smith", "bob@example.com")
	createTestProduct(t, db, "Widget", 10)
	processing := statusID(t, db, "processing")
	shipped := statusID(t, db, "shipped")

	createTestOrder(t, db, jane.ID, processing, 10)
	createTestOrder(t, db, jane.ID, shipped, 25.50)
	deleted := createTestOrder(t, db, bob.ID, processing, 100)
	require.NoError(t, db.Delete(deleted).Error)

	router := setupTestRouter()
	router.GET("/dashboard/stats", mockAuthMiddleware(actor), GetDashboardStats)

	w := performRequest(router, http.MethodGet, "/dashboard/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})

	// Soft-deleted order excluded everywhere
	orders := data["orders"].(map[string]interface{})
	assert.Equal(t, float64(2), orders["total"])

	byStatus := orders["by_status"].([]interface{})
	counts := map[string]float64{}
	for _, raw := range byStatus {
		row := raw.(map[string]interface{})
		counts[row["status"].(string)] = row["count"].(float64)
	}
	assert.Equal(t, float64(1), counts["Processing"])
	assert.Equal(t, float64(1), counts["Shipped"])

	recent := orders["recent"].([]interface{})
	require.Len(t, recent, 2)
	first := recent[0].(map[string]interface{})
	assert.Equal(t, "Jane Doe", first["customer_name"])
	assert.NotEmpty(t, first["status"])

	customers := data["customers"].(map[string]interface{})
	assert.Equal(t, float64(2), customers["total"])
	assert.Equal(t, float64(2), customers["new_this_month"])

	products := data["products"].(map[string]interface{})
	assert.Equal(t, float64(1), products["total"])

	revenue := data["revenue"].(map[string]interface{})
	assert.Equal(t, 35.50, revenue["total"])
	assert.Equal(t, 35.50, revenue["this_month"])
}

func TestGetDashboardStats_Empty(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "admin@example.com", "password")

	router := setupTestRouter()
	router.GET("/dashboard/stats", mockAuthMiddleware(actor), GetDashboardStats)

	w := performRequest(router, http.MethodGet, "/dashboard/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["orders"].(map[string]interface{})["total"])
	assert.Equal(t, float64(0), data["revenue"].(map[string]interface{})["total"])
}

func TestGetOrderStatusSummary(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "admin@example.com", "password")
	jane := createTestCustomer(t, db, "Jane", "Doe", "jane@example.com")
	processing := statusID(t, db, "processing")

	createTestOrder(t, db, jane.ID, processing, 10)
	createTestOrder(t, db, jane.ID, processing, 20)

	router := setupTestRouter()
	router.GET("/dashboard/order-status-summary", mockAuthMiddleware(actor), GetOrderStatusSummary)

	w := performRequest(router, http.MethodGet, "/dashboard/order-status-summary", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].([]interface{})
	require.Len(t, data, 4)

	// Display order follows sort_order, counts only cover live orders
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Processing", first["name"])
	assert.Equal(t, float64(2), first["orders_count"])

	second := data[1].(map[string]interface{})
	assert.Equal(t, "Shipped", second["name"])
	assert.Equal(t, float64(0), second["orders_count"])
}

func TestGetOrderStatuses(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "admin@example.com", "password")

	router := setupTestRouter()
	router.GET("/order-statuses", mockAuthMiddleware(actor), GetOrderStatuses)

	w := performRequest(router, http.MethodGet, "/order-statuses", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].([]interface{})
	require.Len(t, data, 4)
	assert.Equal(t, "Processing", data[0].(map[string]interface{})["name"])
	assert.Equal(t, "Canceled", data[3].(map[string]interface{})["name"])
}
