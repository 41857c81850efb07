package services

import (
	"context"

	appauth "github.com/makerere/aits/internal/app/auth"
	"github.com/makerere/aits/internal/app/models"
)

// notificationRepository is the notification repository surface the
// notification service needs
type notificationRepository interface {
	GetNotificationByID(ctx context.Context, id int64) (*models.Notification, error)
	ListNotificationsByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int, error)
}

// NotificationService handles the recipient-facing notification surface
type NotificationService interface {
	ListNotifications(ctx context.Context, actor *models.User) ([]models.Notification, error)
	UnreadCount(ctx context.Context, actor *models.User) (int, error)
	MarkRead(ctx context.Context, actor *models.User, id int64) (*models.Notification, error)
	MarkAllRead(ctx context.Context, actor *models.User) (int, error)
}

type notificationService struct {
	notifications notificationRepository
	authz         *appauth.AuthorizationService
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications notificationRepository, authz *appauth.AuthorizationService) NotificationService {
	return &notificationService{
		notifications: notifications,
		authz:         authz,
	}
}

// ListNotifications retrieves the actor's notifications, newest first
func (s *notificationService) ListNotifications(ctx context.Context, actor *models.User) ([]models.Notification, error) {
	return s.notifications.ListNotificationsByUser(ctx, actor.ID)
}

// UnreadCount counts the actor's unread notifications
func (s *notificationService) UnreadCount(ctx context.Context, actor *models.User) (int, error) {
	return s.notifications.CountUnread(ctx, actor.ID)
}

// MarkRead marks one of the actor's notifications as read
func (s *notificationService) MarkRead(ctx context.Context, actor *models.User, id int64) (*models.Notification, error) {
	n, err := s.notifications.GetNotificationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateNotificationOwner(actor, n); err != nil {
		return nil, err
	}

	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	n.IsRead = true
	return n, nil
}

// MarkAllRead marks every unread notification of the actor as read
func (s *notificationService) MarkAllRead(ctx context.Context, actor *models.User) (int, error) {
	return s.notifications.MarkAllRead(ctx, actor.ID)
}
