package models

import (
	"time"
)

// Notification defines the notification model based on the 'notifications'
// table. Rows are created only by the fanout engine; IsRead is the single
// field a recipient may change afterwards. IssueID is a soft reference and
// survives issue deletion as NULL.
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"user" db:"user_id"`
	Type      NotificationType `json:"notificationType" db:"notification_type" example:"ISSUE_CREATED"`
	IssueID   *int64           `json:"issue,omitempty" db:"issue_id"`
	Message   string           `json:"message" db:"message"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
