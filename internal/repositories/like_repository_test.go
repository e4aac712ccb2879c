package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/faithconnect/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeToggleSequence(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresLikeRepository(db)
	ctx := context.Background()
	w := testutil.CreateWorshiper(t, db, "ruth")
	l := testutil.CreateLeader(t, db, "naomi")
	p := testutil.CreatePost(t, db, l, "Be still.", time.Now().UTC())

	baseline, err := repo.CountByPost(ctx, p.ID)
	require.NoError(t, err)

	created, err := repo.CreateLike(ctx, p.ID, w.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateLike(ctx, p.ID, w.ID)
	require.NoError(t, err)
	assert.False(t, created)

	liked, err := repo.HasUserLikedPost(ctx, p.ID, w.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	deleted, err := repo.DeleteLike(ctx, p.ID, w.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteLike(ctx, p.ID, w.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	after, err := repo.CountByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, baseline, after)
}

func TestBatchedCountsAndSets(t *testing.T) {
	db := testutil.NewDB(t)
	likes := NewPostgresLikeRepository(db)
	saves := NewPostgresSavedPostRepository(db)
	ctx := context.Background()
	w1 := testutil.CreateWorshiper(t, db, "ruth")
	w2 := testutil.CreateWorshiper(t, db, "boaz")
	l := testutil.CreateLeader(t, db, "naomi")
	p1 := testutil.CreatePost(t, db, l, "one", time.Now().UTC())
	p2 := testutil.CreatePost(t, db, l, "two", time.Now().UTC())

	_, err := likes.CreateLike(ctx, p1.ID, w1.ID)
	require.NoError(t, err)
	_, err = likes.CreateLike(ctx, p1.ID, w2.ID)
	require.NoError(t, err)
	_, err = saves.SavePost(ctx, p2.ID, w1.ID)
	require.NoError(t, err)

	counts, err := likes.CountByPosts(ctx, []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[p1.ID])
	assert.Equal(t, int64(0), counts[p2.ID])

	liked, err := likes.GetLikedPostIDs(ctx, w1.ID, []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.True(t, liked[p1.ID])
	assert.False(t, liked[p2.ID])

	saved, err := saves.GetSavedPostIDs(ctx, w1.ID, []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.False(t, saved[p1.ID])
	assert.True(t, saved[p2.ID])

	posts, err := saves.GetSavedPostsByUser(ctx, w1.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, p2.ID, posts[0].ID)
	assert.Equal(t, "naomi", posts[0].Leader.Name)

	empty, err := likes.CountByPosts(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
