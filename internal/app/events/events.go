// Package events defines the transition events produced by issue and
// comment mutations. The notification fanout engine is their only
// consumer; keeping them as explicit values makes the fanout rules
// testable without a database.
package events

import (
	"github.com/makerere/aits/internal/app/models"
)

// Event is the closed set of mutation events that trigger notification
// fanout.
type Event interface {
	isEvent()
}

// IssueCreated is emitted once when a new issue is stored.
type IssueCreated struct {
	Issue    *models.Issue
	Creator  *models.User
	Assignee *models.User // nil when the issue starts unassigned
}

// StatusChanged is emitted when an update call changes the issue status.
type StatusChanged struct {
	Issue     *models.Issue
	OldStatus models.IssueStatus
	NewStatus models.IssueStatus
}

// AssignmentChanged is emitted when the assignee changes, either through
// the explicit assign action or a field-level update. Actor identifies
// who performed the change; the fanout needs it to avoid telling a
// creator about their own reassignment.
type AssignmentChanged struct {
	Issue         *models.Issue
	OldAssigneeID *int64
	NewAssignee   *models.User // nil when the issue was unassigned
	Actor         *models.User
	// FromAssignAction distinguishes the explicit assign endpoint from a
	// field-level update; the assignee message names the actor only for
	// the former.
	FromAssignAction bool
}

// CommentAdded is emitted when a comment is stored. InfoRequest marks
// comments created through the request-more-info action, which carry a
// different message to the issue creator.
type CommentAdded struct {
	Issue       *models.Issue
	Comment     *models.Comment
	InfoRequest bool
}

func (IssueCreated) isEvent()      {}
func (StatusChanged) isEvent()     {}
func (AssignmentChanged) isEvent() {}
func (CommentAdded) isEvent()      {}
