package repositories

import (
	"context"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	// CreateFollow inserts the edge unless it exists; created reports
	// whether this call inserted it.
	CreateFollow(ctx context.Context, follow *models.Follow) (created bool, err error)
	DeleteFollow(ctx context.Context, worshiperID, leaderID uint) error
	IsFollowing(ctx context.Context, worshiperID, leaderID uint) (bool, error)
	GetFollowedLeaders(ctx context.Context, worshiperID uint) ([]models.User, error)
	GetFollowers(ctx context.Context, leaderID uint) ([]models.Follow, error)
	GetFollowersCount(ctx context.Context, leaderID uint) (int64, error)
	GetFollowerIDs(ctx context.Context, leaderID uint) ([]uint, error)
	GetFollowingIDs(ctx context.Context, worshiperID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "worshiper_id"}, {Name: "leader_id"}},
			DoNothing: true,
		}).
		Create(follow)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteFollow is a no-op when the edge does not exist.
func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, worshiperID, leaderID uint) error {
	return r.db.WithContext(ctx).
		Where("worshiper_id = ? AND leader_id = ?", worshiperID, leaderID).
		Delete(&models.Follow{}).Error
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, worshiperID, leaderID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("worshiper_id = ? AND leader_id = ?", worshiperID, leaderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowedLeaders(ctx context.Context, worshiperID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.leader_id = users.id").
		Where("follows.worshiper_id = ?", worshiperID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

// GetFollowers returns the edges newest first with the worshiper loaded.
func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, leaderID uint) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).
		Preload("Worshiper").
		Where("leader_id = ?", leaderID).
		Order("created_at DESC").Order("id DESC").
		Find(&follows).Error
	return follows, err
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, leaderID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("leader_id = ?", leaderID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowerIDs(ctx context.Context, leaderID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("leader_id = ?", leaderID).Pluck("worshiper_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(ctx context.Context, worshiperID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("worshiper_id = ?", worshiperID).Pluck("leader_id", &ids).Error
	return ids, err
}
