package repositories

import (
	"context"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like operations
type LikeRepository interface {
	CreateLike(ctx context.Context, postID, userID uint) (created bool, err error)
	DeleteLike(ctx context.Context, postID, userID uint) (deleted bool, err error)
	HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error)
	CountByPost(ctx context.Context, postID uint) (int64, error)
	CountByPosts(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) CreateLike(ctx context.Context, postID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PostLike{PostID: postID, UserID: userID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, postID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostLike{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresLikeRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *PostgresLikeRepository) CountByPosts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return countGrouped(ctx, r.db, &models.PostLike{}, postIDs)
}

func (r *PostgresLikeRepository) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	return userPostSet(ctx, r.db, &models.PostLike{}, userID, postIDs)
}

type postCount struct {
	PostID uint
	Count  int64
}

// countGrouped counts rows of model per post_id.
func countGrouped(ctx context.Context, db *gorm.DB, model interface{}, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []postCount
	err := db.WithContext(ctx).Model(model).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

// userPostSet returns which of postIDs have a row of model for userID.
func userPostSet(ctx context.Context, db *gorm.DB, model interface{}, userID uint, postIDs []uint) (map[uint]bool, error) {
	set := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return set, nil
	}
	var ids []uint
	err := db.WithContext(ctx).Model(model).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
