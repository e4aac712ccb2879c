package services

import (
	"context"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/events"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 100
)

// NotificationService writes notification rows and serves the inbox.
// It is the primary events.Sink in production.
type NotificationService struct {
	repo repositories.NotificationRepository
	now  Clock
}

func NewNotificationService(repo repositories.NotificationRepository, now Clock) *NotificationService {
	if now == nil {
		now = SystemClock
	}
	return &NotificationService{repo: repo, now: now}
}

// Publish inserts one unread notification for the event's recipient.
func (s *NotificationService) Publish(ctx context.Context, evt events.Event) error {
	_, err := s.Create(ctx, evt)
	return err
}

func (s *NotificationService) Create(ctx context.Context, evt events.Event) (*models.Notification, error) {
	n := &models.Notification{
		UserID:  evt.RecipientID,
		Type:    evt.Type,
		Message: evt.Message,
	}
	if !evt.OccurredAt.IsZero() {
		n.CreatedAt = evt.OccurredAt
	}
	if evt.ReferenceType != "" {
		refType, refID := evt.ReferenceType, evt.ReferenceID
		n.ReferenceType = &refType
		n.ReferenceID = &refID
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ClampLimit keeps a requested page size in 1..100, defaulting to 50.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultNotificationLimit
	case limit > maxNotificationLimit:
		return maxNotificationLimit
	default:
		return limit
	}
}

// ListForUser returns up to limit notifications, newest first. The unread
// count is the whole backlog, not capped by limit.
func (s *NotificationService) ListForUser(ctx context.Context, userID uint, limit int, includeRead bool) (*models.NotificationListResponse, error) {
	list, err := s.repo.GetForUser(ctx, userID, ClampLimit(limit), includeRead)
	if err != nil {
		return nil, apperr.FromStore(err, "Notification not found")
	}
	unread, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, apperr.FromStore(err, "Notification not found")
	}
	if list == nil {
		list = []models.Notification{}
	}
	return &models.NotificationListResponse{Notifications: list, Total: len(list), UnreadCount: unread}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return 0, apperr.FromStore(err, "Notification not found")
	}
	return count, nil
}

func (s *NotificationService) Grouped(ctx context.Context, userID uint) (*models.GroupedNotificationsResponse, error) {
	today, yesterday, thisWeek, older, err := s.repo.GetGrouped(ctx, userID, s.now())
	if err != nil {
		return nil, apperr.FromStore(err, "Notification not found")
	}
	unread, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, apperr.FromStore(err, "Notification not found")
	}
	return &models.GroupedNotificationsResponse{
		Today:       nonNil(today),
		Yesterday:   nonNil(yesterday),
		ThisWeek:    nonNil(thisWeek),
		Older:       nonNil(older),
		UnreadCount: unread,
	}, nil
}

// MarkRead answers NotFound for both unknown and foreign ids.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID uint) (*models.Notification, error) {
	n, err := s.repo.MarkAsRead(ctx, notificationID, userID)
	if err != nil {
		return nil, apperr.FromStore(err, "Notification not found")
	}
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, apperr.FromStore(err, "Notification not found")
	}
	return count, nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
