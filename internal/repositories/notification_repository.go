package repositories

import (
	"context"
	"time"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetForUser(ctx context.Context, userID uint, limit int, includeRead bool) ([]models.Notification, error)
	GetGrouped(ctx context.Context, userID uint, now time.Time) (today, yesterday, thisWeek, older []models.Notification, err error)
	GetUnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkAsRead(ctx context.Context, notificationID, userID uint) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uint) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.IsRead = false
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *postgresNotificationRepository) GetForUser(ctx context.Context, userID uint, limit int, includeRead bool) ([]models.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeRead {
		q = q.Where("is_read = ?", false)
	}
	var notifications []models.Notification
	err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetGrouped(ctx context.Context, userID uint, now time.Time) (today, yesterday, thisWeek, older []models.Notification, retErr error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekStart := todayStart.AddDate(0, 0, -7)

	db := r.db.WithContext(ctx)
	newestFirst := func(q *gorm.DB) *gorm.DB { return q.Order("created_at DESC").Order("id DESC") }

	if err := newestFirst(db.Where("user_id = ? AND created_at >= ?", userID, todayStart)).
		Find(&today).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	if err := newestFirst(db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, yesterdayStart, todayStart)).
		Find(&yesterday).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	// This week, excluding today and yesterday
	if err := newestFirst(db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, weekStart, yesterdayStart)).
		Find(&thisWeek).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	if err := newestFirst(db.Where("user_id = ? AND created_at < ?", userID, weekStart)).
		Limit(50).Find(&older).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	return today, yesterday, thisWeek, older, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead returns gorm.ErrRecordNotFound both when the id is unknown and
// when it belongs to someone else.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, notificationID, userID uint) (*models.Notification, error) {
	var n models.Notification
	db := r.db.WithContext(ctx)
	if err := db.Where("id = ? AND user_id = ?", notificationID, userID).First(&n).Error; err != nil {
		return nil, err
	}
	if !n.IsRead {
		if err := db.Model(&n).Update("is_read", true).Error; err != nil {
			return nil, err
		}
		n.IsRead = true
	}
	return &n, nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
