package routes

import (
	"civicconnect-be/controllers"
	"civicconnect-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController) {
	issue := r.Group("/api/issues")
	{
		issue.GET("", middlewares.OptionalAuthMiddleware(), ic.GetIssues)
		issue.GET("/nearby", ic.GetNearbyIssues)
		issue.GET("/stats", ic.GetIssueStats)

		issue.POST("", middlewares.AuthMiddleware(), middlewares.IssueRateLimiter(10), ic.CreateIssue)
		issue.GET("/:id", middlewares.OptionalAuthMiddleware(), ic.GetIssue)
		issue.PUT("/:id", middlewares.AuthMiddleware(), ic.UpdateIssue)
		issue.PATCH("/:id/status", middlewares.AuthMiddleware(), ic.UpdateIssueStatus)
		issue.DELETE("/:id", middlewares.AuthMiddleware(), ic.DeleteIssue)

		issue.POST("/:id/upvote", middlewares.AuthMiddleware(), ic.UpvoteIssue)
		issue.DELETE("/:id/upvote", middlewares.AuthMiddleware(), ic.RemoveUpvote)

		issue.GET("/:id/comments", ic.GetIssueComments)
		issue.POST("/:id/comments", middlewares.AuthMiddleware(), ic.AddComment)

		issue.GET("/user/:userId", middlewares.AuthMiddleware(), ic.GetUserIssues)
	}
}
