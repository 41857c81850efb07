// Package controllers holds the gin handlers. Controllers bind and
// validate requests, delegate to the services and translate failures
// through the shared error mapper.
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/services"
	"github.com/makerere/aits/internal/middleware"
	"github.com/makerere/aits/internal/pkg/apperrors"
)

// Controllers groups every controller behind a single constructor
type Controllers struct {
	Auth          *AuthController
	Users         *UserController
	Issues        *IssueController
	Comments      *CommentController
	Notifications *NotificationController
	Dashboard     *DashboardController
	Reference     *ReferenceController
}

// NewControllers wires the controllers over the services
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		Auth:          NewAuthController(svcs.Auth),
		Users:         NewUserController(svcs.Users),
		Issues:        NewIssueController(svcs.Issues),
		Comments:      NewCommentController(svcs.Comments),
		Notifications: NewNotificationController(svcs.Notifications),
		Dashboard:     NewDashboardController(svcs.Dashboard),
		Reference:     NewReferenceController(svcs.Reference),
	}
}

// currentUser pulls the authenticated user loaded by the auth
// middleware. Routes behind JWTAuth always have one; the error path
// covers miswired routes.
func currentUser(c *gin.Context) (*models.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperrors.ErrTokenInvalid
	}
	return user, nil
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid " + name + " parameter")
	}
	return id, nil
}
