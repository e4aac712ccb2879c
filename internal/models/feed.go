package models

import "time"

const (
	FeedReasonExplore         = "explore"
	FeedReasonFollowing       = "following"
	FeedReasonDailyReflection = "daily_reflection"

	ToneInspiration = "inspiration"
	ToneGuidance    = "guidance"
	ToneCommunity   = "community"
)

// FeedLeader is the author block embedded in feed posts.
type FeedLeader struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Bio          *string `json:"bio"`
	ProfilePhoto *string `json:"profile_photo"`
}

type FeedPost struct {
	ID                uint       `json:"id"`
	Leader            FeedLeader `json:"leader"`
	ContentText       string     `json:"content_text"`
	MediaURL          *string    `json:"media_url"`
	MediaType         *string    `json:"media_type"`
	Tag               string     `json:"tag"`
	Intent            string     `json:"intent"`
	CreatedAt         time.Time  `json:"created_at"`
	LikesCount        int64      `json:"likes_count"`
	CommentsCount     int64      `json:"comments_count"`
	IsLiked           bool       `json:"is_liked"`
	IsSaved           bool       `json:"is_saved"`
	IsDailyReflection bool       `json:"is_daily_reflection"`
	ContentTone       string     `json:"content_tone"`
	TimeContext       string     `json:"time_context"`
	IsNew             bool       `json:"is_new"`
	FeedReason        string     `json:"feed_reason"`
	MomentLabel       string     `json:"moment_label"`
}

type FeedResponse struct {
	Posts    []FeedPost `json:"posts"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	HasMore  bool       `json:"has_more"`
}

type DailyReflectionResponse struct {
	Date    string    `json:"date"`
	Post    *FeedPost `json:"post"`
	Message string    `json:"message"`
}
