package models

import "time"

const (
	NotificationNewFollower      = "new_follower"
	NotificationNewMessage       = "new_message"
	NotificationNewPost          = "new_post"
	NotificationQuestionAnswered = "question_answered"

	ReferenceUser     = "user"
	ReferencePost     = "post"
	ReferenceChat     = "chat"
	ReferenceQuestion = "question"
)

// Notification is append-only. The reference is a weak pointer and may
// dangle after the source is deleted.
type Notification struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;index:idx_notifications_user_read"`
	Type          string    `json:"type" gorm:"size:50;not null;index"`
	Message       string    `json:"message" gorm:"type:text;not null"`
	ReferenceType *string   `json:"reference_type" gorm:"size:50"`
	ReferenceID   *uint     `json:"reference_id"`
	IsRead        bool      `json:"is_read" gorm:"not null;default:false;index:idx_notifications_user_read"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
	UnreadCount   int64          `json:"unread_count"`
}

type GroupedNotificationsResponse struct {
	Today       []Notification `json:"today"`
	Yesterday   []Notification `json:"yesterday"`
	ThisWeek    []Notification `json:"this_week"`
	Older       []Notification `json:"older"`
	UnreadCount int64          `json:"unread_count"`
}
