package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/makerere/aits/internal/app/auth"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/pkg/apperrors"
)

type fakeNotificationRepo struct {
	nextID        int64
	notifications map[int64]*models.Notification
	created       []models.Notification
}

func newFakeNotificationRepo(notifications ...*models.Notification) *fakeNotificationRepo {
	repo := &fakeNotificationRepo{nextID: 1, notifications: make(map[int64]*models.Notification)}
	for _, n := range notifications {
		repo.notifications[n.ID] = n
		if n.ID >= repo.nextID {
			repo.nextID = n.ID + 1
		}
	}
	return repo
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) (int64, error) {
	n.ID = f.nextID
	f.nextID++
	clone := *n
	f.notifications[n.ID] = &clone
	f.created = append(f.created, clone)
	return n.ID, nil
}

func (f *fakeNotificationRepo) GetNotificationByID(_ context.Context, id int64) (*models.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	clone := *n
	return &clone, nil
}

func (f *fakeNotificationRepo) ListNotificationsByUser(_ context.Context, userID int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id int64) error {
	n, ok := f.notifications[id]
	if !ok {
		return apperrors.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int64) (int, error) {
	marked := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			marked++
		}
	}
	return marked, nil
}

func TestNotificationService_OwnershipAndCounts(t *testing.T) {
	repo := newFakeNotificationRepo(
		&models.Notification{ID: 1, UserID: student.ID, Message: "a"},
		&models.Notification{ID: 2, UserID: student.ID, Message: "b", IsRead: true},
		&models.Notification{ID: 3, UserID: lecturer.ID, Message: "c"},
	)
	svc := NewNotificationService(repo, appauth.NewAuthorizationService())

	list, err := svc.ListNotifications(context.Background(), student)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	unread, err := svc.UnreadCount(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	// A recipient cannot touch someone else's notification.
	_, err = svc.MarkRead(context.Background(), lecturer, 1)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	n, err := svc.MarkRead(context.Background(), student, 1)
	require.NoError(t, err)
	assert.True(t, n.IsRead)

	unread, err = svc.UnreadCount(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	repo := newFakeNotificationRepo(
		&models.Notification{ID: 1, UserID: student.ID},
		&models.Notification{ID: 2, UserID: student.ID},
		&models.Notification{ID: 3, UserID: lecturer.ID},
	)
	svc := NewNotificationService(repo, appauth.NewAuthorizationService())

	marked, err := svc.MarkAllRead(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	unread, err := svc.UnreadCount(context.Background(), lecturer)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}
