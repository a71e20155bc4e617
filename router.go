package main

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/controllers"
	"github.com/mvera-dev/backoffice-api/middleware"
)

// setupRouter builds the full route tree. Login is rate limited before
// authentication; everything else authenticates first so rate limit counters
// are keyed by user.
func setupRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.CORSAllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		api.GET("/health", controllers.HealthCheck)
		api.GET("/database/status", controllers.DatabaseStatus)

		api.POST("/login", middleware.RateLimit(cfg), controllers.Login)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(cfg), middleware.RateLimit(cfg))
		{
			protected.POST("/logout", controllers.Logout)
			protected.GET("/me", controllers.Me)
			protected.POST("/refresh", controllers.Refresh)

			protected.GET("/customers", controllers.GetCustomers)
			protected.POST("/customers", controllers.CreateCustomer)
			protected.GET("/customers/:id", controllers.GetCustomer)
			protected.PUT("/customers/:id", controllers.UpdateCustomer)
			protected.DELETE("/customers/:id", controllers.DeleteCustomer)
			protected.POST("/customers/:id/restore", controllers.RestoreCustomer)

			protected.GET("/products", controllers.GetProducts)
			protected.POST("/products", controllers.CreateProduct)
			protected.GET("/products/:id", controllers.GetProduct)
			protected.PUT("/products/:id", controllers.UpdateProduct)
			protected.DELETE("/products/:id", controllers.DeleteProduct)
			protected.POST("/products/:id/restore", controllers.RestoreProduct)

			protected.GET("/orders", controllers.GetOrders)
			protected.POST("/orders", controllers.CreateOrder)
			protected.GET("/orders/:id", controllers.GetOrder)
			protected.PUT("/orders/:id", controllers.UpdateOrder)
			protected.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
			protected.DELETE("/orders/:id", controllers.DeleteOrder)
			protected.POST("/orders/:id/restore", controllers.RestoreOrder)

			protected.GET("/order-statuses", controllers.GetOrderStatuses)

			protected.GET("/dashboard/stats", controllers.GetDashboardStats)
			protected.GET("/dashboard/order-status-summary", controllers.GetOrderStatusSummary)
		}
	}

	return router
}
