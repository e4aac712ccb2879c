package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNotifications(t *testing.T, repo NotificationRepository, userID uint, n int) []*models.Notification {
	t.Helper()
	out := make([]*models.Notification, 0, n)
	for i := 0; i < n; i++ {
		notif := &models.Notification{
			UserID:    userID,
			Type:      models.NotificationNewFollower,
			Message:   "someone started following you",
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.CreateNotification(context.Background(), notif))
		out = append(out, notif)
	}
	return out
}

func TestNotificationListAndUnreadAreDecoupled(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()
	l := testutil.CreateLeader(t, db, "naomi")
	seeded := seedNotifications(t, repo, l.ID, 5)

	list, err := repo.GetForUser(ctx, l.ID, 2, true)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, seeded[4].ID, list[0].ID)

	unread, err := repo.GetUnreadCount(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), unread)

	_, err = repo.MarkAsRead(ctx, seeded[4].ID, l.ID)
	require.NoError(t, err)

	unreadOnly, err := repo.GetForUser(ctx, l.ID, 10, false)
	require.NoError(t, err)
	assert.Len(t, unreadOnly, 4)
}

func TestMarkAsReadHidesForeignNotifications(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()
	owner := testutil.CreateLeader(t, db, "naomi")
	stranger := testutil.CreateWorshiper(t, db, "ruth")
	seeded := seedNotifications(t, repo, owner.ID, 1)

	_, err := repo.MarkAsRead(ctx, seeded[0].ID, stranger.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.MarkAsRead(ctx, 9999, owner.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	n, err := repo.MarkAsRead(ctx, seeded[0].ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, n.IsRead)
}

func TestMarkAllAsReadCounts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()
	l := testutil.CreateLeader(t, db, "naomi")
	seedNotifications(t, repo, l.ID, 3)

	n, err := repo.MarkAllAsRead(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.MarkAllAsRead(ctx, l.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetGroupedBuckets(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()
	l := testutil.CreateLeader(t, db, "naomi")
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{
		now.Add(-time.Hour),
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -3),
		now.AddDate(0, 0, -30),
	} {
		require.NoError(t, repo.CreateNotification(ctx, &models.Notification{
			UserID: l.ID, Type: models.NotificationNewMessage, Message: "m", CreatedAt: at,
		}))
	}

	today, yesterday, week, older, err := repo.GetGrouped(ctx, l.ID, now)
	require.NoError(t, err)
	assert.Len(t, today, 1)
	assert.Len(t, yesterday, 1)
	assert.Len(t, week, 1)
	assert.Len(t, older, 1)
}
