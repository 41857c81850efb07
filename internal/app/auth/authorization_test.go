package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/pkg/apperrors"
)

func user(id int64, role models.RoleType) *models.User {
	return &models.User{ID: id, RoleType: role}
}

func issueOf(createdBy int64, assignedTo *int64) *models.Issue {
	return &models.Issue{ID: 1, CreatedByID: createdBy, AssignedToID: assignedTo}
}

func ptr(v int64) *int64 { return &v }

func TestCanModifyIssue(t *testing.T) {
	svc := NewAuthorizationService()
	issue := issueOf(10, ptr(20))

	tests := []struct {
		name  string
		actor *models.User
		want  bool
	}{
		{"owner student", user(10, models.RoleStudent), true},
		{"admin", user(99, models.RoleAdmin), true},
		{"academic registrar", user(98, models.RoleAcademicRegistrar), true},
		{"assigned lecturer", user(20, models.RoleLecturer), false},
		{"unrelated student", user(11, models.RoleStudent), false},
		{"unrelated lecturer", user(21, models.RoleLecturer), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.CanModifyIssue(tt.actor, issue))
		})
	}
}

func TestValidateRequestInfo(t *testing.T) {
	svc := NewAuthorizationService()
	issue := issueOf(10, ptr(20))

	err := svc.ValidateRequestInfo(user(20, models.RoleLecturer), issue)
	assert.NoError(t, err)

	// An elevated role does not substitute for being the assigned lecturer.
	err = svc.ValidateRequestInfo(user(99, models.RoleAdmin), issue)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.ValidateRequestInfo(user(98, models.RoleAcademicRegistrar), issue)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// A registrar assigned to the issue is still not a lecturer.
	err = svc.ValidateRequestInfo(user(20, models.RoleAcademicRegistrar), issue)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.ValidateRequestInfo(user(21, models.RoleLecturer), issueOf(10, nil))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestValidateCommentModify(t *testing.T) {
	svc := NewAuthorizationService()
	comment := &models.Comment{ID: 1, IssueID: 1, CreatedByID: 10}

	assert.NoError(t, svc.ValidateCommentModify(user(10, models.RoleStudent), comment))
	assert.NoError(t, svc.ValidateCommentModify(user(99, models.RoleAdmin), comment))

	err := svc.ValidateCommentModify(user(98, models.RoleAcademicRegistrar), comment)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.ValidateCommentModify(user(11, models.RoleStudent), comment)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestValidateNotificationOwner(t *testing.T) {
	svc := NewAuthorizationService()
	n := &models.Notification{ID: 1, UserID: 10}

	require.NoError(t, svc.ValidateNotificationOwner(user(10, models.RoleStudent), n))

	err := svc.ValidateNotificationOwner(user(11, models.RoleAdmin), n)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestVisibleTo(t *testing.T) {
	created := issueOf(10, ptr(20))

	tests := []struct {
		name  string
		actor *models.User
		issue *models.Issue
		want  bool
	}{
		{"admin sees all", user(99, models.RoleAdmin), created, true},
		{"registrar sees all", user(98, models.RoleAcademicRegistrar), created, true},
		{"assigned lecturer", user(20, models.RoleLecturer), created, true},
		{"lecturer own issue", user(30, models.RoleLecturer), issueOf(30, nil), true},
		{"unrelated lecturer", user(30, models.RoleLecturer), created, false},
		{"creator student", user(10, models.RoleStudent), created, true},
		{"unrelated student", user(11, models.RoleStudent), created, false},
		{"nil actor", nil, created, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleTo(tt.actor, tt.issue))
		})
	}
}
