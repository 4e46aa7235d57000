// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/tradesupply-backend/internal/config"
	"github.com/your-org/tradesupply-backend/internal/interfaces/http/handlers"
	"github.com/your-org/tradesupply-backend/internal/interfaces/http/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(api *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	customerHandler := handlers.NewCustomerHandler(db, cfg)
	manufacturerHandler := handlers.NewManufacturerHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg, log)
	purchaseHandler := handlers.NewPurchaseOrderHandler(db, cfg)
	storefrontHandler := handlers.NewStorefrontHandler(db, cfg, log)
	inventoryHandler := handlers.NewInventoryHandler(db, cfg, log)
	auditHandler := handlers.NewAuditHandler(db, cfg, log)

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	// Storefront ingestion is called by the public web shop
	api.POST("/storefront-orders", storefrontHandler.IngestOrder)

	// Authenticated routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/auth/profile", authHandler.Profile)
		protected.POST("/auth/change-password", authHandler.ChangePassword)

		customers := protected.Group("/customers")
		{
			customers.POST("", customerHandler.CreateCustomer)
			customers.GET("", customerHandler.GetCustomers)
			customers.GET("/:id", customerHandler.GetCustomer)
			customers.PUT("/:id", customerHandler.UpdateCustomer)
			customers.DELETE("/:id", customerHandler.ArchiveCustomer)
		}

		manufacturers := protected.Group("/manufacturers")
		{
			manufacturers.POST("", manufacturerHandler.CreateManufacturer)
			manufacturers.GET("", manufacturerHandler.GetManufacturers)
			manufacturers.GET("/:id", manufacturerHandler.GetManufacturer)
			manufacturers.PUT("/:id", manufacturerHandler.UpdateManufacturer)
			manufacturers.DELETE("/:id", manufacturerHandler.ArchiveManufacturer)
		}

		products := protected.Group("/products")
		{
			products.POST("", productHandler.CreateProduct)
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("/:id/variants", productHandler.AddVariant)
			products.DELETE("/:id", productHandler.ArchiveProduct)
		}
		protected.PUT("/variants/:id", productHandler.UpdateVariant)

		orders := protected.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id", orderHandler.UpdateOrder)
			orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			orders.DELETE("/:id", orderHandler.ArchiveOrder)
			orders.GET("/:id/document", orderHandler.DownloadOrderDocument)
		}

		purchaseOrders := protected.Group("/purchase-orders")
		{
			purchaseOrders.POST("", purchaseHandler.CreateOrder)
			purchaseOrders.GET("", purchaseHandler.GetOrders)
			purchaseOrders.GET("/:id", purchaseHandler.GetOrder)
			purchaseOrders.PUT("/:id/status", purchaseHandler.UpdateOrderStatus)
			purchaseOrders.DELETE("/:id", purchaseHandler.ArchiveOrder)
		}

		storefrontOrders := protected.Group("/storefront-orders")
		{
			storefrontOrders.GET("", storefrontHandler.GetOrders)
			storefrontOrders.GET("/:id", storefrontHandler.GetOrder)
			storefrontOrders.DELETE("/:id", storefrontHandler.ArchiveOrder)
			storefrontOrders.POST("/:id/convert", storefrontHandler.ConvertOrder)
		}

		inventoryRoutes := protected.Group("/inventory")
		{
			inventoryRoutes.POST("/impact/preview", inventoryHandler.PreviewImpact)
			inventoryRoutes.POST("/impact/apply", inventoryHandler.ApplyImpact)
			inventoryRoutes.GET("/variants/:id/movements", inventoryHandler.GetMovements)
		}

		// Admin-only routes
		admin := protected.Group("/admin")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/employees", authHandler.CreateEmployee)
			admin.GET("/employees", authHandler.GetEmployees)
			admin.PUT("/employees/:id/active", authHandler.SetEmployeeActive)
			admin.GET("/audit-log", auditHandler.GetEntries)
		}
	}
}
