package services

import (
	"log"

	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func strPtr(s string) *string {
	return &s
}

// SeedOrderStatuses inserts the default status set when the table is empty
func SeedOrderStatuses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.OrderStatus{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	statuses := []models.OrderStatus{
		{Name: "Processing", Slug: "processing", Description: strPtr("Order is being prepared and processed"), Color: "#F59E0B", SortOrder: 1},
		{Name: "Shipped", Slug: "shipped", Description: strPtr("Order has been shipped and is in transit"), Color: "#3B82F6", SortOrder: 2},
		{Name: "Delivered", Slug: "delivered", Description: strPtr("Order has been successfully delivered"), Color: "#10B981", SortOrder: 3},
		{Name: "Canceled", Slug: "canceled", Description: strPtr("Order has been canceled"), Color: "#EF4444", SortOrder: 4},
	}

	if err := db.Create(&statuses).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d order statuses", len(statuses))
	return nil
}

// SeedAdminUser creates the initial operator account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no users exist yet
func SeedAdminUser(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin",
		Email:    cfg.AdminEmail,
		Password: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin user %s", admin.Email)
	return nil
}
