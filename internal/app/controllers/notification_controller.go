package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/app/services"
	"github.com/makerere/aits/internal/middleware"
)

// NotificationController handles the recipient-facing notification
// endpoints
type NotificationController struct {
	notifications services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notifications services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// ListNotifications godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.NotificationResponse}
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /notifications [get]
func (ctrl *NotificationController) ListNotifications(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	notifications, err := ctrl.notifications.ListNotifications(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NotificationsFromModels(notifications), ""))
}

// UnreadCount godoc
// @Summary Count the caller's unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse}
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (ctrl *NotificationController) UnreadCount(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	count, err := ctrl.notifications.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UnreadCountResponse{Unread: count}, ""))
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationResponse}
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /notifications/{id}/mark-read [post]
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	n, err := ctrl.notifications.MarkRead(c.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NotificationFromModel(n), "Notification marked as read"))
}

// MarkAllRead godoc
// @Summary Mark all of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.MarkAllReadResponse}
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /notifications/mark-all-read [post]
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	marked, err := ctrl.notifications.MarkAllRead(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MarkAllReadResponse{Marked: marked}, "All notifications marked as read"))
}
