package routes

import (
	"civicconnect-be/controllers"
	"civicconnect-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the operational admin routes
func AdminRoutes(r *gin.Engine, ac *controllers.AdminController) {
	admin := r.Group("/api/admin", middlewares.AuthMiddleware())
	{
		admin.POST("/cleanup/run", ac.RunCleanup)
		admin.GET("/cleanup/stats", ac.CleanupStats)
	}
}
