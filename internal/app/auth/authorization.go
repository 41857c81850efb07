// Package auth implements the role-based authorization rules for issues,
// comments and notifications. Each mutating action is guarded by an
// ordered list of permission predicates combined with short-circuit OR:
// the first predicate that passes grants the action.
package auth

import (
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/pkg/apperrors"
)

// IssuePermission decides whether an actor may act on an issue.
type IssuePermission func(actor *models.User, issue *models.Issue) bool

// CommentPermission decides whether an actor may act on a comment.
type CommentPermission func(actor *models.User, comment *models.Comment) bool

// IsAdmin grants regardless of the object.
func IsAdmin(actor *models.User, _ *models.Issue) bool {
	return actor != nil && actor.RoleType == models.RoleAdmin
}

// IsAcademicRegistrar grants regardless of the object.
func IsAcademicRegistrar(actor *models.User, _ *models.Issue) bool {
	return actor != nil && actor.RoleType == models.RoleAcademicRegistrar
}

// IsIssueOwner grants the creator of the issue.
func IsIssueOwner(actor *models.User, issue *models.Issue) bool {
	return actor != nil && issue != nil && issue.CreatedByID == actor.ID
}

// IsAssignedLecturer grants a lecturer currently assigned to the issue.
func IsAssignedLecturer(actor *models.User, issue *models.Issue) bool {
	return actor != nil && issue != nil &&
		actor.RoleType == models.RoleLecturer &&
		issue.IsAssignedTo(actor.ID)
}

// IsCommentOwner grants the author of the comment.
func IsCommentOwner(actor *models.User, comment *models.Comment) bool {
	return actor != nil && comment != nil && comment.CreatedByID == actor.ID
}

// AnyIssuePermission combines permissions with short-circuit OR, evaluated
// in the order given.
func AnyIssuePermission(perms ...IssuePermission) IssuePermission {
	return func(actor *models.User, issue *models.Issue) bool {
		for _, perm := range perms {
			if perm(actor, issue) {
				return true
			}
		}
		return false
	}
}

// AnyCommentPermission combines comment permissions with short-circuit OR.
func AnyCommentPermission(perms ...CommentPermission) CommentPermission {
	return func(actor *models.User, comment *models.Comment) bool {
		for _, perm := range perms {
			if perm(actor, comment) {
				return true
			}
		}
		return false
	}
}

// Rule tables. Mutating issue actions are owner-or-elevated; the
// request-info action is reserved for the assigned lecturer.
var (
	issueModifyRule = AnyIssuePermission(IsIssueOwner, IsAdmin, IsAcademicRegistrar)

	requestInfoRule = AnyIssuePermission(IsAssignedLecturer)

	commentModifyRule = AnyCommentPermission(
		IsCommentOwner,
		func(actor *models.User, _ *models.Comment) bool { return IsAdmin(actor, nil) },
	)
)

// AuthorizationService exposes the authorization decisions used by the
// service layer. Read access is never denied here; it is narrowed by the
// visibility filter instead.
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// CanModifyIssue reports whether the actor may update or delete the issue.
func (s *AuthorizationService) CanModifyIssue(actor *models.User, issue *models.Issue) bool {
	return issueModifyRule(actor, issue)
}

// ValidateIssueModify returns ErrPermissionDenied unless the actor may
// update or delete the issue.
func (s *AuthorizationService) ValidateIssueModify(actor *models.User, issue *models.Issue) error {
	if !s.CanModifyIssue(actor, issue) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateRequestInfo returns ErrPermissionDenied unless the actor is a
// lecturer assigned to the issue.
func (s *AuthorizationService) ValidateRequestInfo(actor *models.User, issue *models.Issue) error {
	if !requestInfoRule(actor, issue) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateCommentModify returns ErrPermissionDenied unless the actor is
// the comment author or an admin.
func (s *AuthorizationService) ValidateCommentModify(actor *models.User, comment *models.Comment) error {
	if !commentModifyRule(actor, comment) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateNotificationOwner returns ErrPermissionDenied unless the actor
// is the notification recipient.
func (s *AuthorizationService) ValidateNotificationOwner(actor *models.User, n *models.Notification) error {
	if actor == nil || n == nil || n.UserID != actor.ID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// VisibleTo is the role-dependent visibility predicate: admins and
// registrars see every issue, lecturers see issues assigned to or created
// by them, everyone else sees only their own. The repository scope must
// agree with this function; it is the object-level mirror used for single
// fetches and tests.
func VisibleTo(actor *models.User, issue *models.Issue) bool {
	if actor == nil || issue == nil {
		return false
	}
	switch actor.RoleType {
	case models.RoleAdmin, models.RoleAcademicRegistrar:
		return true
	case models.RoleLecturer:
		return issue.IsAssignedTo(actor.ID) || issue.CreatedByID == actor.ID
	default:
		return issue.CreatedByID == actor.ID
	}
}
