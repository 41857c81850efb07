package dto

import (
	"time"

	"github.com/makerere/aits/internal/app/models"
)

// NotificationResponse is the public view of a notification
type NotificationResponse struct {
	ID        int64     `json:"id" example:"1"`
	Type      string    `json:"notificationType" example:"ISSUE_CREATED"`
	IssueID   *int64    `json:"issue,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationFromModel maps a notification model to its response shape
func NotificationFromModel(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		IssueID:   n.IssueID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationsFromModels maps a notification slice to response shapes
func NotificationsFromModels(notifications []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, NotificationFromModel(&notifications[i]))
	}
	return out
}

// UnreadCountResponse carries the unread notification count
type UnreadCountResponse struct {
	Unread int `json:"unread" example:"3"`
}

// MarkAllReadResponse reports how many notifications were marked read
type MarkAllReadResponse struct {
	Marked int `json:"marked" example:"3"`
}
