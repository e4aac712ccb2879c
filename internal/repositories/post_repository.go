package repositories

import (
	"context"
	"time"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetLeaderPosts(ctx context.Context, leaderID uint) ([]models.Post, error)
	CountPublishedByLeader(ctx context.Context, leaderID uint) (int64, error)
	GetExplorePosts(ctx context.Context, offset, limit int) ([]models.Post, int64, error)
	GetFollowingPosts(ctx context.Context, worshiperID uint, offset, limit int) ([]models.Post, int64, error)
	GetLatestPublishedSince(ctx context.Context, since time.Time) (*models.Post, error)
	GetDuePosts(ctx context.Context, now time.Time) ([]models.Post, error)
	MarkPublished(ctx context.Context, id uint) (bool, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID only finds active posts.
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetLeaderPosts(ctx context.Context, leaderID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("leader_id = ? AND is_active = ?", leaderID, true).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPublishedByLeader(ctx context.Context, leaderID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("leader_id = ? AND is_published = ? AND is_active = ?", leaderID, true, true).
		Count(&count).Error
	return count, err
}

// visible restricts to published, active posts by active leaders.
func (r *PostgresPostRepository) visible(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN users ON users.id = posts.leader_id").
		Where("posts.is_published = ? AND posts.is_active = ? AND users.is_active = ?", true, true, true)
}

func (r *PostgresPostRepository) page(q *gorm.DB, offset, limit int) ([]models.Post, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := q.Session(&gorm.Session{}).
		Preload("Leader").
		Order("posts.created_at DESC").Order("posts.id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostgresPostRepository) GetExplorePosts(ctx context.Context, offset, limit int) ([]models.Post, int64, error) {
	return r.page(r.visible(ctx), offset, limit)
}

func (r *PostgresPostRepository) GetFollowingPosts(ctx context.Context, worshiperID uint, offset, limit int) ([]models.Post, int64, error) {
	q := r.visible(ctx).
		Joins("JOIN follows ON follows.leader_id = posts.leader_id").
		Where("follows.worshiper_id = ?", worshiperID)
	return r.page(q, offset, limit)
}

func (r *PostgresPostRepository) GetLatestPublishedSince(ctx context.Context, since time.Time) (*models.Post, error) {
	var post models.Post
	err := r.visible(ctx).
		Preload("Leader").
		Where("posts.created_at >= ?", since).
		Order("posts.created_at DESC").Order("posts.id DESC").
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetDuePosts returns unpublished active posts whose schedule has passed.
func (r *PostgresPostRepository) GetDuePosts(ctx context.Context, now time.Time) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Leader").
		Where("is_published = ? AND is_active = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", false, true, now).
		Order("scheduled_at ASC").
		Find(&posts).Error
	return posts, err
}

// MarkPublished flips one post; it reports false if another sweep got there first.
func (r *PostgresPostRepository) MarkPublished(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND is_published = ?", id, false).
		Update("is_published", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
