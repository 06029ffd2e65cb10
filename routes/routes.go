package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/config"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/controllers"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/middlewares"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.CORSOrigins()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Backend running"})
	})

	// Public auth routes
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)
		auth.GET("/check", controllers.CheckAuth)
		auth.GET("/me", middlewares.AuthRequired(), controllers.Me)
	}

	// Resource directory: reads are public, mutations are admin-only.
	r.GET("/api/food-resources", controllers.ListFoodResources)
	r.GET("/api/food-resources/:id", controllers.GetFoodResource)

	adminResources := r.Group("/api/food-resources")
	adminResources.Use(middlewares.AdminRequired())
	{
		adminResources.POST("", controllers.CreateFoodResource)
		adminResources.POST("/import", controllers.ImportFoodResources)
		adminResources.PUT("/:id", controllers.UpdateFoodResource)
		adminResources.DELETE("/:id", controllers.DeleteFoodResource)
	}

	// Moderation queues: anyone may file, admins triage.
	r.POST("/api/reports", controllers.CreateReport)
	adminReports := r.Group("/api/reports")
	adminReports.Use(middlewares.AdminRequired())
	{
		adminReports.GET("", controllers.ListReports)
		adminReports.GET("/stats", controllers.GetReportStats)
		adminReports.GET("/:id", controllers.GetReport)
		adminReports.PUT("/:id", controllers.UpdateReportStatus)
		adminReports.DELETE("/:id", controllers.DeleteReport)
	}

	r.POST("/api/suggestions", controllers.CreateSuggestion)
	adminSuggestions := r.Group("/api/suggestions")
	adminSuggestions.Use(middlewares.AdminRequired())
	{
		adminSuggestions.GET("", controllers.ListSuggestions)
		adminSuggestions.GET("/stats", controllers.GetSuggestionStats)
		adminSuggestions.GET("/:id", controllers.GetSuggestion)
		adminSuggestions.PUT("/:id", controllers.UpdateSuggestionStatus)
		adminSuggestions.DELETE("/:id", controllers.DeleteSuggestion)
	}

	// User management
	users := r.Group("/api/users")
	{
		users.GET("", middlewares.AdminRequired(), controllers.ListUsers)
		users.GET("/:id", middlewares.AuthRequired(), controllers.GetUser)
		users.PUT("/:id", middlewares.AuthRequired(), controllers.UpdateUser)
		users.DELETE("/:id", middlewares.AdminRequired(), controllers.DeleteUser)
	}

	// Live moderation feed for the admin dashboard
	r.GET("/api/admin/events", middlewares.AdminRequired(), controllers.ModerationEvents)

	return r
}
