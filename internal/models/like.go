package models

import "time"

// PostLike is the like edge; the row's existence is the liked state.
type PostLike struct {
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// EngagementResponse answers every like/save toggle.
type EngagementResponse struct {
	Message string `json:"message"`
}

// EngagementStats are recomputed per request, never cached on the post.
type EngagementStats struct {
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	IsLiked       *bool `json:"is_liked,omitempty"`
	IsSaved       *bool `json:"is_saved,omitempty"`
}
