package models

import "time"

const (
	MediaImage = "image"
	MediaVideo = "video"

	PostStatusPublished = "published"
	PostStatusScheduled = "scheduled"

	DefaultPostTag    = "WISDOM"
	DefaultPostIntent = "GUIDANCE"
)

// Post is leader-authored content. IsPublished is decided at creation and
// only ever flipped to true by the promotion sweep.
type Post struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	LeaderID    uint       `json:"leader_id" gorm:"not null;index"`
	ContentText string     `json:"content_text" gorm:"type:text;not null"`
	MediaURL    *string    `json:"media_url" gorm:"size:500"`
	MediaType   *string    `json:"media_type" gorm:"size:10"`
	Tag         string     `json:"tag" gorm:"size:20;not null;default:WISDOM"`
	Intent      string     `json:"intent" gorm:"size:20;not null;default:GUIDANCE"`
	Mode        *string    `json:"mode,omitempty" gorm:"size:20"`
	ScheduledAt *time.Time `json:"scheduled_at" gorm:"index"`
	IsPublished bool       `json:"is_published" gorm:"not null;index"`
	IsActive    bool       `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`

	Leader User `json:"-" gorm:"foreignKey:LeaderID;constraint:OnDelete:CASCADE"`
}

// Status is the leader-facing lifecycle label.
func (p *Post) Status() string {
	if p.IsPublished {
		return PostStatusPublished
	}
	return PostStatusScheduled
}

type CreatePostRequest struct {
	ContentText string     `json:"content_text" validate:"required,max=5000"`
	MediaURL    *string    `json:"media_url" validate:"omitempty,max=500"`
	MediaType   *string    `json:"media_type" validate:"omitempty,oneof=image video"`
	Tag         string     `json:"tag" validate:"omitempty,oneof=PRAYER WISDOM MOTIVATION MEDITATION COMMUNITY TEACHING"`
	Intent      string     `json:"intent" validate:"omitempty,oneof=COMFORT GUIDANCE MOTIVATION PRAYER TEACHING"`
	Mode        *string    `json:"mode" validate:"omitempty,oneof=inspiration guidance community"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type PostResponse struct {
	ID          uint       `json:"id"`
	LeaderID    uint       `json:"leader_id"`
	ContentText string     `json:"content_text"`
	MediaURL    *string    `json:"media_url"`
	MediaType   *string    `json:"media_type"`
	Tag         string     `json:"tag"`
	Intent      string     `json:"intent"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	IsPublished bool       `json:"is_published"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	IsPreview   bool       `json:"is_preview"`
	Status      string     `json:"status"`
}

func (p *Post) ToResponse() PostResponse {
	return PostResponse{
		ID:          p.ID,
		LeaderID:    p.LeaderID,
		ContentText: p.ContentText,
		MediaURL:    p.MediaURL,
		MediaType:   p.MediaType,
		Tag:         p.Tag,
		Intent:      p.Intent,
		ScheduledAt: p.ScheduledAt,
		IsPublished: p.IsPublished,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		Status:      p.Status(),
	}
}

type PostPreviewResponse struct {
	Post    PostResponse `json:"post"`
	Message string       `json:"message"`
}

type LeaderPostsResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int            `json:"total"`
}
