package router

import (
	"time"

	"github.com/fintrack-dev/fintrack/internal/handlers"
	"github.com/fintrack-dev/fintrack/internal/middleware"
	"github.com/fintrack-dev/fintrack/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
		}

		categories := api.Group("/categories", middleware.AuthMiddleware())
		{
			categories.GET("", handlers.ListCategories)
			categories.POST("", handlers.CreateCategory)
			categories.PATCH("/:category_id", handlers.UpdateCategory)
			categories.DELETE("/:category_id", handlers.DeleteCategory)
		}

		transactions := api.Group("/transactions", middleware.AuthMiddleware())
		{
			transactions.GET("", handlers.ListTransactions)
			transactions.POST("", handlers.CreateTransaction)
			transactions.GET("/export", handlers.ExportTransactions)
			transactions.PATCH("/:transaction_id", handlers.UpdateTransaction)
			transactions.DELETE("/:transaction_id", handlers.DeleteTransaction)
		}

		budgets := api.Group("/budgets", middleware.AuthMiddleware())
		{
			budgets.GET("", handlers.ListBudgets)
			budgets.POST("", handlers.CreateBudget)
			budgets.PATCH("/:budget_id", handlers.UpdateBudget)
			budgets.DELETE("/:budget_id", handlers.DeleteBudget)
		}

		// Dashboard endpoint
		api.GET("/dashboard", middleware.AuthMiddleware(), handlers.GetDashboard)
	}

	return r
}
