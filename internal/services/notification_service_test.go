package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/events"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, ClampLimit(0))
	assert.Equal(t, 50, ClampLimit(-1))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, 100, ClampLimit(500))
}

func TestNotificationInbox(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := testutil.CreateWorshiper(t, e.db, "ruth")
	stranger := testutil.CreateWorshiper(t, e.db, "orpah")

	var ids []uint
	for i := 0; i < 3; i++ {
		n, err := e.notifications.Create(ctx, events.Event{
			Type:        models.NotificationNewPost,
			RecipientID: u.ID,
			Message:     "naomi shared new spiritual content",
			OccurredAt:  e.clock.Now().Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		assert.False(t, n.IsRead)
		assert.Nil(t, n.ReferenceType)
		ids = append(ids, n.ID)
	}

	list, err := e.notifications.ListForUser(ctx, u.ID, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, int64(3), list.UnreadCount)
	assert.Equal(t, ids[2], list.Notifications[0].ID)

	_, err = e.notifications.MarkRead(ctx, ids[0], stranger.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	_, err = e.notifications.MarkRead(ctx, 4242, u.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	read, err := e.notifications.MarkRead(ctx, ids[0], u.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	unreadOnly, err := e.notifications.ListForUser(ctx, u.ID, 0, false)
	require.NoError(t, err)
	assert.Len(t, unreadOnly.Notifications, 2)

	marked, err := e.notifications.MarkAllRead(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	count, err := e.notifications.UnreadCount(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationGrouped(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := testutil.CreateWorshiper(t, e.db, "ruth")
	now := e.clock.Now()

	for _, at := range []time.Time{
		now.Add(-time.Hour),
		now.Add(-24 * time.Hour),
		now.Add(-3 * 24 * time.Hour),
		now.Add(-30 * 24 * time.Hour),
	} {
		require.NoError(t, e.notifications.Publish(ctx, events.Event{
			Type:        models.NotificationNewFollower,
			RecipientID: u.ID,
			Message:     "someone started following you",
			OccurredAt:  at,
		}))
	}

	g, err := e.notifications.Grouped(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, g.Today, 1)
	assert.Len(t, g.Yesterday, 1)
	assert.Len(t, g.ThisWeek, 1)
	assert.Len(t, g.Older, 1)
	assert.Equal(t, int64(4), g.UnreadCount)
}
