package main

import (
	"log"

	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/models"
	"github.com/mvera-dev/backoffice-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
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
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := services.SeedOrderStatuses(db); err != nil {
		log.Fatalf("Failed to seed order statuses: %v", err)
	}
	if err := services.SeedAdminUser(db, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	if err := config.ConnectRedis(cfg); err != nil {
		log.Fatalf("Failed to configure Redis: %v", err)
	}

	router := setupRouter(cfg)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
