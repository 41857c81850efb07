// Package routes maps the HTTP surface onto the controllers.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/makerere/aits/internal/app/controllers"
	"github.com/makerere/aits/internal/middleware"
	"github.com/makerere/aits/internal/pkg/auth"
)

// SetupRoutes registers every route on the engine
func SetupRoutes(router *gin.Engine, ctrls *controllers.Controllers,
	jwtService *auth.JWTService, users middleware.UserLoader) {

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", ctrls.Auth.Register)
		authGroup.POST("/login", ctrls.Auth.Login)
		authGroup.POST("/refresh", ctrls.Auth.Refresh)
	}

	reference := v1.Group("/reference")
	{
		reference.GET("/colleges", ctrls.Reference.ListColleges)
		reference.GET("/course-units", ctrls.Reference.ListCourseUnits)
		reference.GET("/role-fields/:role", ctrls.Reference.RoleFields)
	}

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService, users))
	{
		usersGroup := protected.Group("/users")
		{
			usersGroup.GET("", ctrls.Users.ListUsers)
			usersGroup.GET("/me", ctrls.Users.GetProfile)
			usersGroup.PUT("/me", ctrls.Users.UpdateProfile)
		}

		issues := protected.Group("/issues")
		{
			issues.POST("", ctrls.Issues.CreateIssue)
			issues.GET("", ctrls.Issues.ListIssues)
			issues.GET("/stats", ctrls.Issues.GetStats)
			issues.GET("/:id", ctrls.Issues.GetIssue)
			issues.PATCH("/:id", ctrls.Issues.UpdateIssue)
			issues.DELETE("/:id", ctrls.Issues.DeleteIssue)
			issues.POST("/:id/assign", ctrls.Issues.AssignIssue)
			issues.POST("/:id/request-info", ctrls.Issues.RequestMoreInfo)
			issues.GET("/:id/comments", ctrls.Comments.ListComments)
			issues.POST("/:id/comments", ctrls.Comments.AddComment)
		}

		comments := protected.Group("/comments")
		{
			comments.PUT("/:id", ctrls.Comments.UpdateComment)
			comments.DELETE("/:id", ctrls.Comments.DeleteComment)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", ctrls.Notifications.ListNotifications)
			notifications.GET("/unread-count", ctrls.Notifications.UnreadCount)
			notifications.POST("/mark-all-read", ctrls.Notifications.MarkAllRead)
			notifications.POST("/:id/mark-read", ctrls.Notifications.MarkRead)
		}

		protected.GET("/dashboard", ctrls.Dashboard.GetDashboard)
	}
}
