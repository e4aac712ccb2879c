package services

import (
	"context"
	"testing"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowTwiceNotifiesOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	w := testutil.CreateWorshiper(t, e.db, "ruth")
	l := testutil.CreateLeader(t, e.db, "naomi")

	msg, err := e.follows.Follow(ctx, w, l.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgFollowed, msg)

	msg, err = e.follows.Follow(ctx, w, l.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgAlreadyFollowing, msg)

	assert.Equal(t, int64(1), e.count(t, &models.Follow{}, ""))
	notes := e.notificationsFor(t, l.ID, models.NotificationNewFollower)
	require.Len(t, notes, 1)
	assert.Equal(t, "ruth started following you", notes[0].Message)
	require.NotNil(t, notes[0].ReferenceType)
	assert.Equal(t, models.ReferenceUser, *notes[0].ReferenceType)
	assert.Equal(t, w.ID, *notes[0].ReferenceID)
	assert.Len(t, e.mirror.OfType(models.NotificationNewFollower), 1)
}

func TestFollowRejections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	w := testutil.CreateWorshiper(t, e.db, "ruth")
	other := testutil.CreateWorshiper(t, e.db, "orpah")
	l := testutil.CreateLeader(t, e.db, "naomi")

	_, err := e.follows.Follow(ctx, w, other.ID)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = e.follows.Follow(ctx, w, w.ID)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = e.follows.Follow(ctx, w, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = e.follows.Follow(ctx, l, l.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	assert.Zero(t, e.count(t, &models.Follow{}, ""))
	assert.Zero(t, e.count(t, &models.Notification{}, ""))
}

func TestUnfollowIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	w := testutil.CreateWorshiper(t, e.db, "ruth")
	l := testutil.CreateLeader(t, e.db, "naomi")
	testutil.Follow(t, e.db, w, l)

	for i := 0; i < 2; i++ {
		msg, err := e.follows.Unfollow(ctx, w, l.ID)
		require.NoError(t, err)
		assert.Equal(t, MsgUnfollowed, msg)
	}
	ok, err := e.follows.IsFollowing(ctx, w.ID, l.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, e.notificationsFor(t, l.ID, models.NotificationNewFollower))
}

func TestFollowListsCarryCounts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	w := testutil.CreateWorshiper(t, e.db, "ruth")
	w2 := testutil.CreateWorshiper(t, e.db, "boaz")
	l := testutil.CreateLeader(t, e.db, "naomi")
	testutil.Follow(t, e.db, w, l)
	testutil.Follow(t, e.db, w2, l)
	testutil.CreatePost(t, e.db, l, "peace be with you", e.clock.Now())

	leaders, err := e.follows.ListFollowedLeaders(ctx, w)
	require.NoError(t, err)
	require.Len(t, leaders, 1)
	assert.True(t, leaders[0].IsFollowing)
	assert.Equal(t, int64(2), leaders[0].FollowersCount)
	assert.Equal(t, int64(1), leaders[0].PostsCount)

	followers, err := e.follows.ListFollowers(ctx, l)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	_, err = e.follows.ListFollowers(ctx, w)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestLeaderDirectory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	w := testutil.CreateWorshiper(t, e.db, "ruth")
	naomi := testutil.CreateLeader(t, e.db, "naomi")
	testutil.CreateLeader(t, e.db, "eli")
	testutil.Follow(t, e.db, w, naomi)

	list, err := e.leaders.ListLeaders(ctx, w)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "eli", list[0].Name)
	assert.False(t, list[0].IsFollowing)
	assert.True(t, list[1].IsFollowing)

	profile, err := e.leaders.GetLeaderProfile(ctx, w, naomi.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.FollowersCount)

	_, err = e.leaders.GetLeaderProfile(ctx, w, w.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "not found")

	_, err = e.leaders.ListLeaders(ctx, naomi)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
