package repositories

import (
	"context"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	SavePost(ctx context.Context, postID, userID uint) (created bool, err error)
	UnsavePost(ctx context.Context, postID, userID uint) (deleted bool, err error)
	IsPostSaved(ctx context.Context, postID, userID uint) (bool, error)
	GetSavedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	GetSavedPostsByUser(ctx context.Context, userID uint) ([]models.Post, error)
}

type PostgresSavedPostRepository struct {
	db *gorm.DB
}

func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

func (r *PostgresSavedPostRepository) SavePost(ctx context.Context, postID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PostSave{PostID: postID, UserID: userID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PostgresSavedPostRepository) UnsavePost(ctx context.Context, postID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostSave{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresSavedPostRepository) IsPostSaved(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostSave{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresSavedPostRepository) GetSavedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	return userPostSet(ctx, r.db, &models.PostSave{}, userID, postIDs)
}

// GetSavedPostsByUser lists active saved posts, most recently saved first.
func (r *PostgresSavedPostRepository) GetSavedPostsByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Leader").
		Joins("JOIN post_saves ON post_saves.post_id = posts.id").
		Where("post_saves.user_id = ? AND posts.is_active = ?", userID, true).
		Order("post_saves.created_at DESC").
		Find(&posts).Error
	return posts, err
}
