package models

import "time"

// Comment is immutable once created.
type Comment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PostID      uint      `json:"post_id" gorm:"not null;index"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	ContentText string    `json:"content_text" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	Post Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type CreateCommentRequest struct {
	ContentText string `json:"content_text" validate:"required,max=1000"`
}

type CommentResponse struct {
	ID          uint        `json:"id"`
	PostID      uint        `json:"post_id"`
	UserID      uint        `json:"user_id"`
	ContentText string      `json:"content_text"`
	CreatedAt   time.Time   `json:"created_at"`
	User        UserCompact `json:"user"`
}

func (c *Comment) ToResponse() CommentResponse {
	return CommentResponse{
		ID:          c.ID,
		PostID:      c.PostID,
		UserID:      c.UserID,
		ContentText: c.ContentText,
		CreatedAt:   c.CreatedAt,
		User:        c.User.ToCompact(),
	}
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int               `json:"total"`
}
