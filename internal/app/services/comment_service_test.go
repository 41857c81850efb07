package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/makerere/aits/internal/app/auth"
	"github.com/makerere/aits/internal/app/events"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/pkg/apperrors"
)

type commentFixture struct {
	svc        CommentService
	comments   *fakeCommentRepo
	dispatcher *recordingDispatcher
}

func newCommentFixture(existing ...*models.Issue) *commentFixture {
	issues := newFakeIssueRepo(existing...)
	comments := newFakeCommentRepo(issues)
	dispatcher := &recordingDispatcher{}

	return &commentFixture{
		svc:        NewCommentService(comments, issues, appauth.NewAuthorizationService(), dispatcher),
		comments:   comments,
		dispatcher: dispatcher,
	}
}

func TestAddComment_EmitsEvent(t *testing.T) {
	fx := newCommentFixture(pendingIssue(1, student.ID, idPtr(lecturer.ID)))

	comment, err := fx.svc.AddComment(context.Background(), lecturer, 1, dto.CreateCommentRequest{
		Content: "Checking with the department",
	})
	require.NoError(t, err)
	assert.Equal(t, lecturer.ID, comment.CreatedByID)
	assert.Equal(t, int64(1), comment.IssueID)

	require.Len(t, fx.dispatcher.events, 1)
	ev, ok := fx.dispatcher.events[0].(events.CommentAdded)
	require.True(t, ok)
	assert.False(t, ev.InfoRequest)
	assert.Equal(t, comment.ID, ev.Comment.ID)
}

func TestAddComment_HiddenIssue(t *testing.T) {
	fx := newCommentFixture(pendingIssue(1, student.ID, nil))

	_, err := fx.svc.AddComment(context.Background(), otherStudent, 1, dto.CreateCommentRequest{
		Content: "hello",
	})
	assert.ErrorIs(t, err, apperrors.ErrIssueNotFound)
	assert.Empty(t, fx.dispatcher.events)
}

func TestListComments_VisibilityApplies(t *testing.T) {
	fx := newCommentFixture(pendingIssue(1, student.ID, nil))

	_, err := fx.svc.AddComment(context.Background(), student, 1, dto.CreateCommentRequest{Content: "first"})
	require.NoError(t, err)

	comments, err := fx.svc.ListComments(context.Background(), registrar, 1)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	_, err = fx.svc.ListComments(context.Background(), otherStudent, 1)
	assert.ErrorIs(t, err, apperrors.ErrIssueNotFound)
}

func TestUpdateComment_AuthorOrAdmin(t *testing.T) {
	admin := &models.User{ID: 99, RoleType: models.RoleAdmin}
	fx := newCommentFixture(pendingIssue(1, student.ID, idPtr(lecturer.ID)))

	comment, err := fx.svc.AddComment(context.Background(), student, 1, dto.CreateCommentRequest{Content: "v1"})
	require.NoError(t, err)

	_, err = fx.svc.UpdateComment(context.Background(), lecturer, comment.ID, dto.UpdateCommentRequest{Content: "v2"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := fx.svc.UpdateComment(context.Background(), student, comment.ID, dto.UpdateCommentRequest{Content: "v2"})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)

	updated, err = fx.svc.UpdateComment(context.Background(), admin, comment.ID, dto.UpdateCommentRequest{Content: "v3"})
	require.NoError(t, err)
	assert.Equal(t, "v3", updated.Content)
}

func TestDeleteComment_AuthorOrAdmin(t *testing.T) {
	fx := newCommentFixture(pendingIssue(1, student.ID, idPtr(lecturer.ID)))

	comment, err := fx.svc.AddComment(context.Background(), lecturer, 1, dto.CreateCommentRequest{Content: "x"})
	require.NoError(t, err)

	err = fx.svc.DeleteComment(context.Background(), student, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = fx.svc.DeleteComment(context.Background(), lecturer, comment.ID)
	require.NoError(t, err)

	err = fx.svc.DeleteComment(context.Background(), lecturer, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}
