package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/middleware"
	"github.com/mvera-dev/backoffice-api/models"
	"github.com/mvera-dev/backoffice-api/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory database with the full schema and the
// default status set, and installs it as the active connection
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.AccessToken{},
		&models.Customer{},
		&models.Product{},
		&models.OrderStatus{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	if err := services.SeedOrderStatuses(db); err != nil {
		t.Fatalf("Failed to seed order statuses: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(&config.Config{
		GoEnv:            "test",
		JWTSecret:        "test-secret",
		TokenTTLHours:    3,
		RateLimitEnabled: false,
	})

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware stands in for RequireAuth, injecting the given user
func mockAuthMiddleware(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, user)
		c.Next()
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{Name: "Test User", Email: email, Password: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

func createTestCustomer(t *testing.T, db *gorm.DB, firstName, lastName, email string) *models.Customer {
	t.Helper()

	customer := models.Customer{FirstName: firstName, LastName: lastName, Email: email}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}
	return &customer
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()

	product := models.Product{Name: name, Price: price, SKU: "SKU-" + name}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return &product
}

func createTestOrder(t *testing.T, db *gorm.DB, customerID, statusID uint, total float64) *models.Order {
	t.Helper()

	order := models.Order{CustomerID: customerID, StatusID: statusID, Total: total}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	return &order
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		buf = bytes.NewBuffer(raw)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performAuthedRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response body: %v", err)
	}
	return response
}

// statusID looks up a seeded status by slug
func statusID(t *testing.T, db *gorm.DB, slug string) uint {
	t.Helper()

	var status models.OrderStatus
	if err := db.Where("slug = ?", slug).First(&status).Error; err != nil {
		t.Fatalf("Failed to find status %q: %v", slug, err)
	}
	return status.ID
}
