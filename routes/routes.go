package routes

import (
	"time"

	"alshifa-backend/firebase"
	"alshifa-backend/handlers"
	"alshifa-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storage firebase.StorageClient) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	serviceHandler := &handlers.ServiceHandler{DB: db}
	doctorHandler := &handlers.DoctorHandler{DB: db}
	mediaHandler := &handlers.MediaHandler{DB: db, Storage: storage}
	reportHandler := &handlers.ReportHandler{DB: db}
	contactHandler := &handlers.ContactHandler{DB: db}

	// Login and the contact form are the abuse-prone public endpoints.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	contactLimiter := middleware.NewRateLimiter(5, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:id", categoryHandler.GetCategory)

		api.GET("/services", serviceHandler.GetServices)
		api.GET("/services/:id", serviceHandler.GetService)

		api.GET("/doctors", doctorHandler.GetDoctors)
		api.GET("/doctors/:id", doctorHandler.GetDoctor)

		api.GET("/media", mediaHandler.GetMedia)

		api.GET("/reports", reportHandler.GetReports)

		api.POST("/contact", contactLimiter.Middleware(), contactHandler.SubmitMessage)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Category management
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		// Service management
		admin.POST("/services", serviceHandler.CreateService)
		admin.PUT("/services/:id", serviceHandler.UpdateService)
		admin.DELETE("/services/:id", serviceHandler.DeleteService)

		// Doctor management
		admin.POST("/doctors", doctorHandler.CreateDoctor)
		admin.PUT("/doctors/:id", doctorHandler.UpdateDoctor)
		admin.DELETE("/doctors/:id", doctorHandler.DeleteDoctor)

		// Media management
		admin.GET("/media", mediaHandler.GetAllMedia)
		admin.POST("/media", mediaHandler.CreateMedia)
		admin.PUT("/media/:id", mediaHandler.UpdateMedia)
		admin.DELETE("/media/:id", mediaHandler.DeleteMedia)

		// Yearly report management
		admin.GET("/reports/:id", reportHandler.GetReport)
		admin.POST("/reports", reportHandler.CreateReport)
		admin.PUT("/reports/:id", reportHandler.UpdateReport)
		admin.DELETE("/reports/:id", reportHandler.DeleteReport)

		// Contact inbox
		admin.GET("/contact", contactHandler.GetMessages)
		admin.PUT("/contact/:id/read", contactHandler.MarkMessageRead)
		admin.DELETE("/contact/:id", contactHandler.DeleteMessage)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
