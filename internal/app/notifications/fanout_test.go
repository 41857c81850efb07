package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makerere/aits/internal/app/events"
	"github.com/makerere/aits/internal/app/models"
)

type fakeUsers struct {
	users []models.User
	err   error
}

func (f *fakeUsers) ListUsersByRole(_ context.Context, role models.RoleType) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, u := range f.users {
		if u.RoleType == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeStore struct {
	created []models.Notification
	failFor map[int64]error
}

func (f *fakeStore) CreateNotification(_ context.Context, n *models.Notification) (int64, error) {
	if err, ok := f.failFor[n.UserID]; ok {
		return 0, err
	}
	f.created = append(f.created, *n)
	return int64(len(f.created)), nil
}

func ptr(v int64) *int64 { return &v }

func testIssue(assignedTo *int64) *models.Issue {
	return &models.Issue{
		ID:           7,
		Title:        "Missing marks for CSC 1200",
		CreatedByID:  10,
		AssignedToID: assignedTo,
	}
}

func TestPlanIssueCreated(t *testing.T) {
	creator := &models.User{ID: 10, FirstName: "Sarah", LastName: "Nakato", RoleType: models.RoleStudent}
	assignee := &models.User{ID: 20, FirstName: "John", LastName: "Okello", RoleType: models.RoleLecturer}
	registrars := &fakeUsers{users: []models.User{
		{ID: 30, RoleType: models.RoleAcademicRegistrar},
		{ID: 31, RoleType: models.RoleAcademicRegistrar},
	}}
	f := NewFanout(registrars, &fakeStore{})

	rows := f.Plan(context.Background(), events.IssueCreated{
		Issue:    testIssue(ptr(20)),
		Creator:  creator,
		Assignee: assignee,
	})

	require.Len(t, rows, 3)
	assert.Equal(t, int64(20), rows[0].UserID)
	assert.Equal(t, models.NotificationIssueCreated, rows[0].Type)
	assert.Equal(t, "New issue 'Missing marks for CSC 1200' has been assigned to you", rows[0].Message)

	for _, row := range rows[1:] {
		assert.Equal(t, models.NotificationIssueCreated, row.Type)
		assert.Equal(t, "New issue 'Missing marks for CSC 1200' has been created by Sarah Nakato", row.Message)
	}
	assert.Equal(t, int64(30), rows[1].UserID)
	assert.Equal(t, int64(31), rows[2].UserID)
}

func TestPlanIssueCreated_RegistrarCreatorStillNotified(t *testing.T) {
	// A registrar raising an issue appears in the registrar broadcast too.
	creator := &models.User{ID: 30, FirstName: "Amina", LastName: "Kasozi", RoleType: models.RoleAcademicRegistrar}
	registrars := &fakeUsers{users: []models.User{{ID: 30, RoleType: models.RoleAcademicRegistrar}}}
	f := NewFanout(registrars, &fakeStore{})

	issue := testIssue(nil)
	issue.CreatedByID = 30
	rows := f.Plan(context.Background(), events.IssueCreated{Issue: issue, Creator: creator})

	require.Len(t, rows, 1)
	assert.Equal(t, int64(30), rows[0].UserID)
	assert.Equal(t, "New issue 'Missing marks for CSC 1200' has been created by Amina Kasozi", rows[0].Message)
}

func TestPlanIssueCreated_RegistrarListErrorKeepsAssigneeRow(t *testing.T) {
	assignee := &models.User{ID: 20, RoleType: models.RoleLecturer}
	f := NewFanout(&fakeUsers{err: errors.New("db down")}, &fakeStore{})

	rows := f.Plan(context.Background(), events.IssueCreated{
		Issue:    testIssue(ptr(20)),
		Creator:  &models.User{ID: 10},
		Assignee: assignee,
	})

	require.Len(t, rows, 1)
	assert.Equal(t, int64(20), rows[0].UserID)
}

func TestPlanStatusChanged(t *testing.T) {
	f := NewFanout(&fakeUsers{}, &fakeStore{})

	t.Run("creator and assignee", func(t *testing.T) {
		rows := f.Plan(context.Background(), events.StatusChanged{
			Issue:     testIssue(ptr(20)),
			OldStatus: models.StatusPending,
			NewStatus: models.StatusResolved,
		})

		require.Len(t, rows, 2)
		assert.Equal(t, int64(10), rows[0].UserID)
		assert.Equal(t, "Status of your issue 'Missing marks for CSC 1200' has been changed to Resolved", rows[0].Message)
		assert.Equal(t, int64(20), rows[1].UserID)
		assert.Equal(t, "Status of issue 'Missing marks for CSC 1200' has been changed to Resolved", rows[1].Message)
		for _, row := range rows {
			assert.Equal(t, models.NotificationStatusChanged, row.Type)
		}
	})

	t.Run("assignee is creator", func(t *testing.T) {
		rows := f.Plan(context.Background(), events.StatusChanged{
			Issue:     testIssue(ptr(10)),
			OldStatus: models.StatusPending,
			NewStatus: models.StatusInProgress,
		})

		require.Len(t, rows, 1)
		assert.Equal(t, int64(10), rows[0].UserID)
	})

	t.Run("unassigned", func(t *testing.T) {
		rows := f.Plan(context.Background(), events.StatusChanged{
			Issue:     testIssue(nil),
			OldStatus: models.StatusPending,
			NewStatus: models.StatusClosed,
		})

		require.Len(t, rows, 1)
		assert.Equal(t, int64(10), rows[0].UserID)
	})
}

func TestPlanAssignmentChanged(t *testing.T) {
	f := NewFanout(&fakeUsers{}, &fakeStore{})
	lecturer := &models.User{ID: 20, FirstName: "John", LastName: "Okello", RoleType: models.RoleLecturer}
	registrar := &models.User{ID: 30, FirstName: "Amina", LastName: "Kasozi", RoleType: models.RoleAcademicRegistrar}

	t.Run("assign action names the actor", func(t *testing.T) {
		rows := f.Plan(context.Background(), events.AssignmentChanged{
			Issue:            testIssue(ptr(20)),
			NewAssignee:      lecturer,
			Actor:            registrar,
			FromAssignAction: true,
		})

		require.Len(t, rows, 2)
		assert.Equal(t, int64(20), rows[0].UserID)
		assert.Equal(t, models.NotificationAssigned, rows[0].Type)
		assert.Equal(t, "Issue 'Missing marks for CSC 1200' has been assigned to you by Amina Kasozi", rows[0].Message)

		assert.Equal(t, int64(10), rows[1].UserID)
		assert.Equal(t, models.NotificationIssueUpdated, rows[1].Type)
		assert.Equal(t, "Your issue 'Missing marks for CSC 1200' has been assigned to John Okello", rows[1].Message)
	})

	t.Run("update path uses the plain wording", func(t *testing.T) {
		rows := f.Plan(context.Background(), events.AssignmentChanged{
			Issue:       testIssue(ptr(20)),
			NewAssignee: lecturer,
			Actor:       registrar,
		})

		require.Len(t, rows, 2)
		assert.Equal(t, "Issue 'Missing marks for CSC 1200' has been assigned to you", rows[0].Message)
	})

	t.Run("creator reassigning hears nothing extra", func(t *testing.T) {
		creator := &models.User{ID: 10, RoleType: models.RoleStudent}
		rows := f.Plan(context.Background(), events.AssignmentChanged{
			Issue:            testIssue(ptr(20)),
			NewAssignee:      lecturer,
			Actor:            creator,
			FromAssignAction: true,
		})

		require.Len(t, rows, 1)
		assert.Equal(t, int64(20), rows[0].UserID)
	})

	t.Run("unassignment tells the creator no one", func(t *testing.T) {
		rows := f.Plan(context.Background(), events.AssignmentChanged{
			Issue:         testIssue(nil),
			OldAssigneeID: ptr(20),
			NewAssignee:   nil,
			Actor:         registrar,
		})

		require.Len(t, rows, 1)
		assert.Equal(t, int64(10), rows[0].UserID)
		assert.Equal(t, "Your issue 'Missing marks for CSC 1200' has been assigned to no one", rows[0].Message)
	})
}

func TestPlanCommentAdded(t *testing.T) {
	f := NewFanout(&fakeUsers{}, &fakeStore{})

	comment := func(author int64) *models.Comment {
		return &models.Comment{ID: 5, IssueID: 7, Content: "any", CreatedByID: author}
	}

	t.Run("third party comment reaches creator and assignee", func(t *testing.T) {
		rows := f.Plan(context.Background(), events.CommentAdded{
			Issue:   testIssue(ptr(20)),
			Comment: comment(30),
		})

		require.Len(t, rows, 2)
		assert.Equal(t, int64(10), rows[0].UserID)
		assert.Equal(t, "New comment on your issue 'Missing marks for CSC 1200'", rows[0].Message)
		assert.Equal(t, int64(20), rows[1].UserID)
		assert.Equal(t, "New comment on issue 'Missing marks for CSC 1200' assigned to you", rows[1].Message)
	})

	t.Run("creator commenting is not self-notified", func(t *testing.T) {
		rows := f.Plan(context.Background(), events.CommentAdded{
			Issue:   testIssue(ptr(20)),
			Comment: comment(10),
		})

		require.Len(t, rows, 1)
		assert.Equal(t, int64(20), rows[0].UserID)
	})

	t.Run("assignee commenting notifies only the creator", func(t *testing.T) {
		rows := f.Plan(context.Background(), events.CommentAdded{
			Issue:   testIssue(ptr(20)),
			Comment: comment(20),
		})

		require.Len(t, rows, 1)
		assert.Equal(t, int64(10), rows[0].UserID)
	})

	t.Run("info request message to the creator", func(t *testing.T) {
		rows := f.Plan(context.Background(), events.CommentAdded{
			Issue:       testIssue(ptr(20)),
			Comment:     comment(20),
			InfoRequest: true,
		})

		require.Len(t, rows, 1)
		assert.Equal(t, "A lecturer has requested more information on your issue 'Missing marks for CSC 1200'", rows[0].Message)
	})

	t.Run("assignee who is also creator gets one row", func(t *testing.T) {
		rows := f.Plan(context.Background(), events.CommentAdded{
			Issue:   testIssue(ptr(10)),
			Comment: comment(30),
		})

		require.Len(t, rows, 1)
		assert.Equal(t, int64(10), rows[0].UserID)
	})
}

func TestDispatch_ContinuesPastStoreFailures(t *testing.T) {
	store := &fakeStore{failFor: map[int64]error{10: errors.New("insert failed")}}
	f := NewFanout(&fakeUsers{}, store)

	f.Dispatch(context.Background(), events.StatusChanged{
		Issue:     testIssue(ptr(20)),
		OldStatus: models.StatusPending,
		NewStatus: models.StatusResolved,
	})

	// The creator's row failed; the assignee's row still landed.
	require.Len(t, store.created, 1)
	assert.Equal(t, int64(20), store.created[0].UserID)
}
