package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/mvera-dev/backoffice-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "admin@example.com", "password")
	customer := createTestCustomer(t, db, "Jane", "Doe", "jane@example.com")
	widget := createTestProduct(t, db, "Widget", 9.99)
	gadget := createTestProduct(t, db, "Gadget", 24.50)
	processing := statusID(t, db, "processing")

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		errorFields    []string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully create order with line items",
			requestBody: map[string]interface{}{
				"customer_id": customer.ID,
				"status_id":   processing,
				"total":       58.99,
				"products": []map[string]interface{}{
					{"product_id": widget.ID, "quantity": 1, "price": 9.99},
					{"product_id": gadget.ID, "quantity": 2, "price": 24.50},
				},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, 58.99, data["total"])
				assert.Equal(t, 58.99, data["calculated_total"])
				assert.Equal(t, float64(2), data["product_count"])
				assert.Equal(t, float64(3), data["total_quantity"])

				items := data["items"].([]interface{})
				require.Len(t, items, 2)

				// Relations come preloaded
				assert.Equal(t, "jane@example.com", data["customer"].(map[string]interface{})["email"])
				assert.Equal(t, "Processing", data["status"].(map[string]interface{})["name"])
			},
		},
		{
			name: "Fail with empty products list",
			requestBody: map[string]interface{}{
				"customer_id": customer.ID,
				"status_id":   processing,
				"total":       10.00,
				"products":    []map[string]interface{}{},
			},
			expectedStatus: http.StatusUnprocessableEntity,
			errorFields:    []string{"products"},
		},
		{
			name: "Fail with missing required fields",
			requestBody: map[string]interface{}{
				"notes": "no required fields at all",
			},
			expectedStatus: http.StatusUnprocessableEntity,
			errorFields:    []string{"customer_id", "status_id", "total", "products"},
		},
		{
			name: "Fail with nonexistent customer",
			requestBody: map[string]interface{}{
				"customer_id": 9999,
				"status_id":   processing,
				"total":       9.99,
				"products": []map[string]interface{}{
					{"product_id": widget.ID, "quantity": 1, "price": 9.99},
				},
			},
			expectedStatus: http.StatusUnprocessableEntity,
			errorFields:    []string{"customer_id"},
		},
		{
			name: "Fail with nonexistent product in line items",
			requestBody: map[string]interface{}{
				"customer_id": customer.ID,
				"status_id":   processing,
				"total":       9.99,
				"products": []map[string]interface{}{
					{"product_id": widget.ID, "quantity": 1, "price": 9.99},
					{"product_id": 9999, "quantity": 1, "price": 5.00},
				},
			},
			expectedStatus: http.StatusUnprocessableEntity,
			errorFields:    []string{"products.1.product_id"},
		},
		{
			name: "Fail with duplicate product in line items",
			requestBody: map[string]interface{}{
				"customer_id": customer.ID,
				"status_id":   processing,
				"total":       59.49,
				"products": []map[string]interface{}{
					{"product_id": widget.ID, "quantity": 1, "price": 9.99},
					{"product_id": gadget.ID, "quantity": 1, "price": 24.50},
					{"product_id": widget.ID, "quantity": 5, "price": 9.99},
				},
			},
			expectedStatus: http.StatusUnprocessableEntity,
			errorFields:    []string{"products.2.product_id"},
		},
		{
			name: "Fail with zero quantity",
			requestBody: map[string]interface{}{
				"customer_id": customer.ID,
				"status_id":   processing,
				"total":       9.99,
				"products": []map[string]interface{}{
					{"product_id": widget.ID, "quantity": 0, "price": 9.99},
				},
			},
			expectedStatus: http.StatusUnprocessableEntity,
			errorFields:    []string{"products.0.quantity"},
		},
		{
			name: "Fail with three decimal place price",
			requestBody: map[string]interface{}{
				"customer_id": customer.ID,
				"status_id":   processing,
				"total":       9.99,
				"products": []map[string]interface{}{
					{"product_id": widget.ID, "quantity": 1, "price": 9.999},
				},
			},
			expectedStatus: http.StatusUnprocessableEntity,
			errorFields:    []string{"products.0.price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/orders", mockAuthMiddleware(actor), CreateOrder)

			w := performRequest(router, http.MethodPost, "/orders", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, w.Code)

			response := parseResponse(t, w)
			if len(tt.errorFields) > 0 {
				assert.False(t, response["success"].(bool))
				errs := response["errors"].(map[string]interface{})
				for _, field := range tt.errorFields {
					assert.Contains(t, errs, field)
				}
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestOrder_LineTotalsFrozen(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "admin@example.com", "password")
	customer := createTestCustomer(t, db, "Jane", "Doe", "jane@example.com")
	widget := createTestProduct(t, db, "Widget", 10.00)
	processing := statusID(t, db, "processing")

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(actor), CreateOrder)
	router.GET("/orders/:id", mockAuthMiddleware(actor), GetOrder)

	w := performRequest(router, http.MethodPost, "/orders", map[string]interface{}{
		"customer_id": customer.ID,
		"status_id":   processing,
		"total":       30.00,
		"products": []map[string]interface{}{
			{"product_id": widget.ID, "quantity": 3, "price": 10.00},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := uint(parseResponse(t, w)["data"].(map[string]interface{})["id"].(float64))

	// Raising the product price later must not touch the stored line totals
	require.NoError(t, db.Model(widget).Update("price", 99.99).Error)

	w = performRequest(router, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, float64(10), item["unit_price"])
	assert.Equal(t, float64(30), item["line_total"])
	assert.Equal(t, float64(30), data["calculated_total"])
}

func TestUpdateOrder_ItemSync(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "admin@example.com", "password")
	customer := createTestCustomer(t, db, "Jane", "Doe", "jane@example.com")
	widget := createTestProduct(t, db, "Widget", 10.00)
	gadget := createTestProduct(t, db, "Gadget", 20.00)
	gizmo := createTestProduct(t, db, "Gizmo", 5.00)
	processing := statusID(t, db, "processing")

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(actor), CreateOrder)
	router.PUT("/orders/:id", mockAuthMiddleware(actor), UpdateOrder)

	w := performRequest(router, http.MethodPost, "/orders", map[string]interface{}{
		"customer_id": customer.ID,
		"status_id":   processing,
		"total":       50.00,
		"products": []map[string]interface{}{
			{"product_id": widget.ID, "quantity": 1, "price": 10.00},
			{"product_id": gadget.ID, "quantity": 2, "price": 20.00},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := uint(parseResponse(t, w)["data"].(map[string]interface{})["id"].(float64))

	t.Run("Products list replaces the item set", func(t *testing.T) {
		// Widget changes quantity, gadget disappears, gizmo is added
		w := performRequest(router, http.MethodPut, fmt.Sprintf("/orders/%d", orderID), map[string]interface{}{
			"customer_id": customer.ID,
			"total":       55.00,
			"products": []map[string]interface{}{
				{"product_id": widget.ID, "quantity": 5, "price": 10.00},
				{"product_id": gizmo.ID, "quantity": 1, "price": 5.00},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		data := parseResponse(t, w)["data"].(map[string]interface{})
		items := data["items"].([]interface{})
		require.Len(t, items, 2)

		byProduct := map[float64]map[string]interface{}{}
		for _, raw := range items {
			item := raw.(map[string]interface{})
			byProduct[item["product_id"].(float64)] = item
		}
		require.Contains(t, byProduct, float64(widget.ID))
		require.Contains(t, byProduct, float64(gizmo.ID))
		assert.NotContains(t, byProduct, float64(gadget.ID))
		assert.Equal(t, float64(5), byProduct[float64(widget.ID)]["quantity"])
		assert.Equal(t, float64(50), byProduct[float64(widget.ID)]["line_total"])

		// Removed rows are gone from storage too
		var count int64
		db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&count)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Absent products list leaves items untouched", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, fmt.Sprintf("/orders/%d", orderID), map[string]interface{}{
			"customer_id": customer.ID,
			"notes":       "updated header only",
		})
		require.Equal(t, http.StatusOK, w.Code)

		data := parseResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "updated header only", data["notes"])
		assert.Len(t, data["items"].([]interface{}), 2)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "admin@example.com", "password")
	customer := createTestCustomer(t, db, "Jane", "Doe", "jane@example.com")
	processing := statusID(t, db, "processing")
	shipped := statusID(t, db, "shipped")
	order := createTestOrder(t, db, customer.ID, processing, 10)

	router := setupTestRouter()
	router.PUT("/orders/:id/status", mockAuthMiddleware(actor), UpdateOrderStatus)

	t.Run("Re-asserting current status is rejected", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), map[string]interface{}{
			"status_id": processing,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		response := parseResponse(t, w)
		assert.False(t, response["success"].(bool))
		assert.Equal(t, "Order is already in this status", response["message"])
	})

	t.Run("Transition to a different status succeeds", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), map[string]interface{}{
			"status_id": shipped,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		data := parseResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, float64(shipped), data["status_id"])
		assert.Equal(t, "Shipped", data["status"].(map[string]interface{})["name"])
	})

	t.Run("Repeating the transition is now rejected", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), map[string]interface{}{
			"status_id": shipped,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown status is a validation error", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), map[string]interface{}{
			"status_id": 9999,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Missing status is a validation error", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), map[string]interface{}{})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGetOrders_Filters(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "admin@example.com", "password")
	jane := createTestCustomer(t, db, "Jane", "Doe", "jane@example.com")
	bob := createTestCustomer(t, db, "Bob", "Smith", "bob@example.com")
	processing := statusID(t, db, "processing")
	shipped := statusID(t, db, "shipped")

	createTestOrder(t, db, jane.ID, processing, 10)
	createTestOrder(t, db, jane.ID, shipped, 20)
	createTestOrder(t, db, bob.ID, processing, 30)

	router := setupTestRouter()
	router.GET("/orders", mockAuthMiddleware(actor), GetOrders)

	t.Run("Filter by customer", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, fmt.Sprintf("/orders?customer_id=%d", jane.ID), nil)
		response := parseResponse(t, w)
		assert.Len(t, response["data"].([]interface{}), 2)
	})

	t.Run("Filter by status", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, fmt.Sprintf("/orders?status_id=%d", processing), nil)
		response := parseResponse(t, w)
		assert.Len(t, response["data"].([]interface{}), 2)
	})

	t.Run("Filter by customer and status", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, fmt.Sprintf("/orders?customer_id=%d&status_id=%d", jane.ID, shipped), nil)
		response := parseResponse(t, w)
		data := response["data"].([]interface{})
		require.Len(t, data, 1)
		assert.Equal(t, float64(20), data[0].(map[string]interface{})["total"])
	})

	t.Run("Nonexistent filter customer is a validation error", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/orders?customer_id=9999", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Sort by total descending", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/orders?sort_by=total&sort_direction=desc", nil)
		response := parseResponse(t, w)
		data := response["data"].([]interface{})
		require.Len(t, data, 3)
		assert.Equal(t, float64(30), data[0].(map[string]interface{})["total"])
		assert.Equal(t, float64(10), data[2].(map[string]interface{})["total"])
	})
}

func TestDeleteAndRestoreOrder(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "admin@example.com", "password")
	customer := createTestCustomer(t, db, "Jane", "Doe", "jane@example.com")
	widget := createTestProduct(t, db, "Widget", 10.00)
	processing := statusID(t, db, "processing")

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(actor), CreateOrder)
	router.GET("/orders/:id", mockAuthMiddleware(actor), GetOrder)
	router.DELETE("/orders/:id", mockAuthMiddleware(actor), DeleteOrder)
	router.POST("/orders/:id/restore", mockAuthMiddleware(actor), RestoreOrder)

	w := performRequest(router, http.MethodPost, "/orders", map[string]interface{}{
		"customer_id": customer.ID,
		"status_id":   processing,
		"total":       20.00,
		"products": []map[string]interface{}{
			{"product_id": widget.ID, "quantity": 2, "price": 10.00},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := uint(parseResponse(t, w)["data"].(map[string]interface{})["id"].(float64))

	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Line items survive the soft delete
	var count int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&count)
	assert.Equal(t, int64(1), count)

	w = performRequest(router, http.MethodPost, fmt.Sprintf("/orders/%d/restore", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["items"].([]interface{}), 1)
}
