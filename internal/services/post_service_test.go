package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestCreatePublishedPostNotifiesFollowers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	w := testutil.CreateWorshiper(t, e.db, "ruth")
	l := testutil.CreateLeader(t, e.db, "naomi")
	testutil.Follow(t, e.db, w, l)

	post, err := e.posts.Create(ctx, l, &models.CreatePostRequest{ContentText: "Be still."})
	require.NoError(t, err)
	assert.True(t, post.IsPublished)
	assert.Equal(t, models.PostStatusPublished, post.Status)
	assert.Equal(t, models.DefaultPostTag, post.Tag)
	assert.Equal(t, models.DefaultPostIntent, post.Intent)

	notes := e.notificationsFor(t, w.ID, models.NotificationNewPost)
	require.Len(t, notes, 1)
	assert.Equal(t, "naomi shared new spiritual content", notes[0].Message)
	assert.Equal(t, post.ID, *notes[0].ReferenceID)
}

func TestScheduledPostStaysHiddenUntilPromoted(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	w := testutil.CreateWorshiper(t, e.db, "ruth")
	l := testutil.CreateLeader(t, e.db, "naomi")
	testutil.Follow(t, e.db, w, l)

	later := e.clock.Now().Add(time.Hour)
	post, err := e.posts.Create(ctx, l, &models.CreatePostRequest{ContentText: "Tomorrow's word", ScheduledAt: &later})
	require.NoError(t, err)
	assert.False(t, post.IsPublished)

	mine, err := e.posts.ListLeaderPosts(ctx, l)
	require.NoError(t, err)
	require.Len(t, mine.Posts, 1)
	assert.Equal(t, models.PostStatusScheduled, mine.Posts[0].Status)

	feed, err := e.feed.Explore(ctx, w, 1, 10, "")
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
	assert.Empty(t, e.notificationsFor(t, w.ID, models.NotificationNewPost))

	n, err := e.posts.PromoteDuePosts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	e.clock.Advance(2 * time.Hour)
	n, err = e.posts.PromoteDuePosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = e.posts.PromoteDuePosts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	feed, err = e.feed.Explore(ctx, w, 1, 10, "")
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Len(t, e.notificationsFor(t, w.ID, models.NotificationNewPost), 1)
}

func TestPastScheduleIsPublishedImmediately(t *testing.T) {
	e := newEnv(t)
	l := testutil.CreateLeader(t, e.db, "naomi")
	earlier := e.clock.Now().Add(-time.Minute)

	post, err := e.posts.Create(context.Background(), l, &models.CreatePostRequest{ContentText: "Already due", ScheduledAt: &earlier})
	require.NoError(t, err)
	assert.True(t, post.IsPublished)
}

func TestPostValidation(t *testing.T) {
	e := newEnv(t)
	w := testutil.CreateWorshiper(t, e.db, "ruth")
	l := testutil.CreateLeader(t, e.db, "naomi")

	cases := []struct {
		name string
		req  models.CreatePostRequest
	}{
		{"blank", models.CreatePostRequest{ContentText: "   "}},
		{"too long", models.CreatePostRequest{ContentText: strings.Repeat("a", 5001)}},
		{"url without type", models.CreatePostRequest{ContentText: "x", MediaURL: strp("http://cdn/x.png")}},
		{"bad media type", models.CreatePostRequest{ContentText: "x", MediaURL: strp("http://cdn/x.gif"), MediaType: strp("gif")}},
		{"bad tag", models.CreatePostRequest{ContentText: "x", Tag: "GOSSIP"}},
		{"bad intent", models.CreatePostRequest{ContentText: "x", Intent: "SELLING"}},
		{"bad mode", models.CreatePostRequest{ContentText: "x", Mode: strp("loud")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.posts.Preview(l, &tc.req)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}

	_, err := e.posts.Create(context.Background(), w, &models.CreatePostRequest{ContentText: "x"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestPreviewDoesNotPersist(t *testing.T) {
	e := newEnv(t)
	l := testutil.CreateLeader(t, e.db, "naomi")

	preview, err := e.posts.Preview(l, &models.CreatePostRequest{
		ContentText: "Draft",
		MediaURL:    strp("http://cdn/v.mp4"),
		MediaType:   strp(models.MediaVideo),
		Tag:         "PRAYER",
	})
	require.NoError(t, err)
	assert.True(t, preview.Post.IsPreview)
	assert.Equal(t, "Preview generated - not saved to database", preview.Message)
	assert.Zero(t, e.count(t, &models.Post{}, ""))
}
