package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/makerere/aits/internal/app/auth"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/app/notifications"
)

// Walks an issue from creation through assignment to an info request
// with the real notification fanout persisting the rows, checking the
// full trail a student, lecturer and the registrars end up with.
func TestIssueWorkflow_NotificationTrail(t *testing.T) {
	secondRegistrar := &models.User{ID: 31, FirstName: "Grace", LastName: "Namutebi",
		RoleType: models.RoleAcademicRegistrar}

	issues := newFakeIssueRepo()
	comments := newFakeCommentRepo(issues)
	users := newFakeUserRepo(student, lecturer, registrar, secondRegistrar)
	store := newFakeNotificationRepo()
	fanout := notifications.NewFanout(users, store)
	svc := NewIssueService(issues, users, comments, appauth.NewAuthorizationService(), fanout)

	ctx := context.Background()

	issue, err := svc.CreateIssue(ctx, student, dto.CreateIssueRequest{
		Title:       "Missing marks for CSC 1200",
		Description: "My coursework marks are missing",
		CourseUnit:  "CSC 1200",
	})
	require.NoError(t, err)

	// Creation with no assignee notifies every registrar and nobody else.
	require.Len(t, store.created, 2)
	for i, want := range []int64{registrar.ID, secondRegistrar.ID} {
		assert.Equal(t, want, store.created[i].UserID)
		assert.Equal(t, models.NotificationIssueCreated, store.created[i].Type)
		assert.Equal(t, "New issue 'Missing marks for CSC 1200' has been created by Sarah Nakato",
			store.created[i].Message)
	}

	_, err = svc.AssignIssue(ctx, registrar, issue.ID, dto.AssignIssueRequest{
		UserID: idPtr(lecturer.ID),
	})
	require.NoError(t, err)

	// The assign action tells the new assignee who assigned them and the
	// creator who now holds their issue.
	require.Len(t, store.created, 4)
	assert.Equal(t, lecturer.ID, store.created[2].UserID)
	assert.Equal(t, models.NotificationAssigned, store.created[2].Type)
	assert.Equal(t, "Issue 'Missing marks for CSC 1200' has been assigned to you by Amina Kasozi",
		store.created[2].Message)
	assert.Equal(t, student.ID, store.created[3].UserID)
	assert.Equal(t, models.NotificationIssueUpdated, store.created[3].Type)
	assert.Equal(t, "Your issue 'Missing marks for CSC 1200' has been assigned to John Okello",
		store.created[3].Message)

	comment, updated, err := svc.RequestMoreInfo(ctx, lecturer, issue.ID, dto.RequestInfoRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, defaultInfoRequestMessage, comment.Content)

	// The info request reaches only the creator.
	require.Len(t, store.created, 5)
	assert.Equal(t, student.ID, store.created[4].UserID)
	assert.Equal(t, models.NotificationCommentAdded, store.created[4].Type)
	assert.Equal(t, "A lecturer has requested more information on your issue 'Missing marks for CSC 1200'",
		store.created[4].Message)

	// The automatic move to IN_PROGRESS produced no status rows anywhere.
	for _, n := range store.created {
		assert.NotEqual(t, models.NotificationStatusChanged, n.Type)
	}
}
