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

func TestExploreHidesUnpublishedAndInactive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresPostRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	l := testutil.CreateLeader(t, db, "naomi")
	gone := testutil.CreateLeader(t, db, "eli")
	require.NoError(t, db.Model(gone).Update("is_active", false).Error)

	visible := testutil.CreatePost(t, db, l, "visible", now)
	testutil.CreatePost(t, db, gone, "inactive leader", now)
	hidden := testutil.CreatePost(t, db, l, "soft deleted", now)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)
	scheduled := testutil.CreatePost(t, db, l, "later", now)
	require.NoError(t, db.Model(scheduled).Update("is_published", false).Error)

	posts, total, err := repo.GetExplorePosts(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, visible.ID, posts[0].ID)
	assert.Equal(t, "naomi", posts[0].Leader.Name)
}

func TestFollowingPostsPaginate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresPostRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	w := testutil.CreateWorshiper(t, db, "ruth")
	l := testutil.CreateLeader(t, db, "naomi")
	stranger := testutil.CreateLeader(t, db, "eli")
	testutil.Follow(t, db, w, l)

	for i := 0; i < 3; i++ {
		testutil.CreatePost(t, db, l, "followed", now.Add(time.Duration(i)*time.Minute))
	}
	testutil.CreatePost(t, db, stranger, "not followed", now)

	posts, total, err := repo.GetFollowingPosts(ctx, w.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, posts, 2)
	assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))

	rest, _, err := repo.GetFollowingPosts(ctx, w.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestPromotionFlipsOnlyOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresPostRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	l := testutil.CreateLeader(t, db, "naomi")

	due := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	p1 := &models.Post{LeaderID: l.ID, ContentText: "due", Tag: "WISDOM", Intent: "GUIDANCE", ScheduledAt: &due, IsActive: true}
	p2 := &models.Post{LeaderID: l.ID, ContentText: "future", Tag: "WISDOM", Intent: "GUIDANCE", ScheduledAt: &future, IsActive: true}
	require.NoError(t, repo.CreatePost(ctx, p1))
	require.NoError(t, repo.CreatePost(ctx, p2))

	dueList, err := repo.GetDuePosts(ctx, now)
	require.NoError(t, err)
	require.Len(t, dueList, 1)
	assert.Equal(t, p1.ID, dueList[0].ID)

	flipped, err := repo.MarkPublished(ctx, p1.ID)
	require.NoError(t, err)
	assert.True(t, flipped)

	flipped, err = repo.MarkPublished(ctx, p1.ID)
	require.NoError(t, err)
	assert.False(t, flipped)

	count, err := repo.CountPublishedByLeader(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLatestPublishedSince(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresPostRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	l := testutil.CreateLeader(t, db, "naomi")

	_, err := repo.GetLatestPublishedSince(ctx, now.Add(-24*time.Hour))
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	testutil.CreatePost(t, db, l, "old", now.Add(-48*time.Hour))
	newest := testutil.CreatePost(t, db, l, "fresh", now.Add(-time.Hour))

	got, err := repo.GetLatestPublishedSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, newest.ID, got.ID)
}
