// Package notifications turns mutation events into persisted notification
// rows. Fanout runs synchronously in the request that produced the event;
// each row is written independently and a failed write never fails the
// triggering mutation.
package notifications

import (
	"context"
	"fmt"

	"github.com/makerere/aits/internal/app/events"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/pkg/logger"
)

// RegistrarSource lists users holding a given role; the fanout needs it
// for the every-registrar broadcast on issue creation.
type RegistrarSource interface {
	ListUsersByRole(ctx context.Context, role models.RoleType) ([]models.User, error)
}

// Store persists a single notification row.
type Store interface {
	CreateNotification(ctx context.Context, n *models.Notification) (int64, error)
}

// Fanout computes and persists the notification set for each event.
type Fanout struct {
	users RegistrarSource
	store Store
}

// NewFanout creates a new Fanout
func NewFanout(users RegistrarSource, store Store) *Fanout {
	return &Fanout{
		users: users,
		store: store,
	}
}

// Dispatch persists the notifications for the event. Per-row failures are
// logged and skipped so the triggering mutation still reports success.
func (f *Fanout) Dispatch(ctx context.Context, ev events.Event) {
	for _, n := range f.Plan(ctx, ev) {
		n := n
		if _, err := f.store.CreateNotification(ctx, &n); err != nil {
			logger.Error().Err(err).
				Int64("recipientID", n.UserID).
				Str("notificationType", string(n.Type)).
				Msg("Failed to persist notification")
		}
	}
}

// Plan computes the (recipient, type, message) rows for an event without
// persisting them.
func (f *Fanout) Plan(ctx context.Context, ev events.Event) []models.Notification {
	switch e := ev.(type) {
	case events.IssueCreated:
		return f.planIssueCreated(ctx, e)
	case events.StatusChanged:
		return planStatusChanged(e)
	case events.AssignmentChanged:
		return planAssignmentChanged(e)
	case events.CommentAdded:
		return planCommentAdded(e)
	}
	return nil
}

func (f *Fanout) planIssueCreated(ctx context.Context, e events.IssueCreated) []models.Notification {
	var out []models.Notification

	if e.Assignee != nil {
		out = append(out, row(e.Assignee.ID, models.NotificationIssueCreated, e.Issue,
			fmt.Sprintf("New issue '%s' has been assigned to you", e.Issue.Title)))
	}

	// Every academic registrar is told about every new issue. A registrar
	// creating an issue is notified about it too.
	registrars, err := f.users.ListUsersByRole(ctx, models.RoleAcademicRegistrar)
	if err != nil {
		logger.Error().Err(err).Int64("issueID", e.Issue.ID).Msg("Failed to list registrars for issue-created fanout")
		return out
	}
	for _, registrar := range registrars {
		out = append(out, row(registrar.ID, models.NotificationIssueCreated, e.Issue,
			fmt.Sprintf("New issue '%s' has been created by %s", e.Issue.Title, e.Creator.FullName())))
	}

	return out
}

func planStatusChanged(e events.StatusChanged) []models.Notification {
	out := []models.Notification{
		row(e.Issue.CreatedByID, models.NotificationStatusChanged, e.Issue,
			fmt.Sprintf("Status of your issue '%s' has been changed to %s", e.Issue.Title, e.NewStatus.Display())),
	}

	if e.Issue.AssignedToID != nil && *e.Issue.AssignedToID != e.Issue.CreatedByID {
		out = append(out, row(*e.Issue.AssignedToID, models.NotificationStatusChanged, e.Issue,
			fmt.Sprintf("Status of issue '%s' has been changed to %s", e.Issue.Title, e.NewStatus.Display())))
	}

	return out
}

func planAssignmentChanged(e events.AssignmentChanged) []models.Notification {
	var out []models.Notification

	if e.NewAssignee != nil {
		message := fmt.Sprintf("Issue '%s' has been assigned to you", e.Issue.Title)
		if e.FromAssignAction && e.Actor != nil {
			message = fmt.Sprintf("Issue '%s' has been assigned to you by %s", e.Issue.Title, e.Actor.FullName())
		}
		out = append(out, row(e.NewAssignee.ID, models.NotificationAssigned, e.Issue, message))
	}

	// The creator hears about reassignments made by anyone else.
	if e.Actor != nil && e.Actor.ID != e.Issue.CreatedByID {
		assigneeName := "no one"
		if e.NewAssignee != nil {
			assigneeName = e.NewAssignee.FullName()
		}
		out = append(out, row(e.Issue.CreatedByID, models.NotificationIssueUpdated, e.Issue,
			fmt.Sprintf("Your issue '%s' has been assigned to %s", e.Issue.Title, assigneeName)))
	}

	return out
}

func planCommentAdded(e events.CommentAdded) []models.Notification {
	var out []models.Notification

	// The creator is not told about their own comment.
	if e.Comment.CreatedByID != e.Issue.CreatedByID {
		message := fmt.Sprintf("New comment on your issue '%s'", e.Issue.Title)
		if e.InfoRequest {
			message = fmt.Sprintf("A lecturer has requested more information on your issue '%s'", e.Issue.Title)
		}
		out = append(out, row(e.Issue.CreatedByID, models.NotificationCommentAdded, e.Issue, message))
	}

	// The assignee is skipped when they wrote the comment or when they are
	// the creator and already covered above.
	if e.Issue.AssignedToID != nil &&
		*e.Issue.AssignedToID != e.Comment.CreatedByID &&
		*e.Issue.AssignedToID != e.Issue.CreatedByID {
		out = append(out, row(*e.Issue.AssignedToID, models.NotificationCommentAdded, e.Issue,
			fmt.Sprintf("New comment on issue '%s' assigned to you", e.Issue.Title)))
	}

	return out
}

func row(userID int64, t models.NotificationType, issue *models.Issue, message string) models.Notification {
	issueID := issue.ID
	return models.Notification{
		UserID:  userID,
		Type:    t,
		IssueID: &issueID,
		Message: message,
	}
}
