package models

import (
	"time"
)

// Comment defines the comment model based on the 'comments' table.
// A comment always belongs to exactly one issue and is removed with it.
type Comment struct {
	ID          int64     `json:"id" db:"id"`
	IssueID     int64     `json:"issue" db:"issue_id"`
	Content     string    `json:"content" db:"content"`
	CreatedByID int64     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	CreatedBy *User `json:"-"` // Relation, no db tag
}
