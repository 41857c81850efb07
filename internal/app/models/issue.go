package models

import (
	"time"
)

// Issue defines the issue model based on the 'issues' table.
// CreatedByID is immutable after creation; AssignedToID is the only
// mutable user reference.
type Issue struct {
	ID           int64         `json:"id" db:"id"`
	Title        string        `json:"title" db:"title"`
	Description  string        `json:"description" db:"description"`
	Status       IssueStatus   `json:"status" db:"status" example:"PENDING"`
	Priority     IssuePriority `json:"priority" db:"priority" example:"MEDIUM"`
	CourseUnit   string        `json:"courseUnit" db:"course_unit"`
	College      *string       `json:"college,omitempty" db:"college"`
	CreatedByID  int64         `json:"createdBy" db:"created_by"`
	AssignedToID *int64        `json:"assignedTo,omitempty" db:"assigned_to"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`

	CreatedBy  *User `json:"-"` // Relation, no db tag
	AssignedTo *User `json:"-"` // Relation, no db tag
}

// IsAssignedTo reports whether the issue is currently assigned to the given user
func (i *Issue) IsAssignedTo(userID int64) bool {
	return i.AssignedToID != nil && *i.AssignedToID == userID
}
