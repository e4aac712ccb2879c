package models

import "time"

// Chat is the single conversation between a worshiper and a leader.
type Chat struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	WorshiperID uint      `json:"worshiper_id" gorm:"not null;uniqueIndex:idx_chat_pair"`
	LeaderID    uint      `json:"leader_id" gorm:"not null;index;uniqueIndex:idx_chat_pair"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	Worshiper User      `json:"-" gorm:"foreignKey:WorshiperID;constraint:OnDelete:CASCADE"`
	Leader    User      `json:"-" gorm:"foreignKey:LeaderID;constraint:OnDelete:CASCADE"`
	Messages  []Message `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// HasParticipant reports whether userID is one of the two sides.
func (c *Chat) HasParticipant(userID uint) bool {
	return c.WorshiperID == userID || c.LeaderID == userID
}

// OtherParticipant returns the id of the side that is not userID.
func (c *Chat) OtherParticipant(userID uint) uint {
	if c.WorshiperID == userID {
		return c.LeaderID
	}
	return c.WorshiperID
}

// Message content is immutable; only the read markers change.
type Message struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	ChatID      uint       `json:"chat_id" gorm:"not null;index"`
	SenderID    uint       `json:"sender_id" gorm:"not null;index"`
	SenderRole  Role       `json:"sender_role" gorm:"size:20;not null"`
	ContentText string     `json:"content_text" gorm:"type:text;not null"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	IsRead      bool       `json:"is_read" gorm:"not null;default:false"`
	ReadAt      *time.Time `json:"read_at"`

	Sender User `json:"-" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
}

type SendMessageRequest struct {
	ContentText string `json:"content_text" validate:"required,max=2000"`
}

type MessageResponse struct {
	ID          uint        `json:"id"`
	ChatID      uint        `json:"chat_id"`
	SenderID    uint        `json:"sender_id"`
	SenderRole  Role        `json:"sender_role"`
	ContentText string      `json:"content_text"`
	CreatedAt   time.Time   `json:"created_at"`
	IsRead      bool        `json:"is_read"`
	ReadAt      *time.Time  `json:"read_at"`
	Sender      UserCompact `json:"sender"`
}

func (m *Message) ToResponse() MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		ChatID:      m.ChatID,
		SenderID:    m.SenderID,
		SenderRole:  m.SenderRole,
		ContentText: m.ContentText,
		CreatedAt:   m.CreatedAt,
		IsRead:      m.IsRead,
		ReadAt:      m.ReadAt,
		Sender:      m.Sender.ToCompact(),
	}
}

type ChatResponse struct {
	ID          uint              `json:"id"`
	WorshiperID uint              `json:"worshiper_id"`
	LeaderID    uint              `json:"leader_id"`
	CreatedAt   time.Time         `json:"created_at"`
	Worshiper   UserCompact       `json:"worshiper"`
	Leader      UserCompact       `json:"leader"`
	Messages    []MessageResponse `json:"messages"`
}

type ChatSummary struct {
	ID          uint             `json:"id"`
	WorshiperID uint             `json:"worshiper_id"`
	LeaderID    uint             `json:"leader_id"`
	CreatedAt   time.Time        `json:"created_at"`
	Worshiper   UserCompact      `json:"worshiper"`
	Leader      UserCompact      `json:"leader"`
	LastMessage *MessageResponse `json:"last_message"`
	UnreadCount int              `json:"unread_count"`
}

type ChatListResponse struct {
	Chats []ChatSummary `json:"chats"`
	Total int           `json:"total"`
}
