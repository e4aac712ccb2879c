package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// FeedService composes paginated, annotated post lists. It never writes.
type FeedService struct {
	posts    repositories.PostRepository
	likes    repositories.LikeRepository
	saves    repositories.SavedPostRepository
	comments repositories.CommentRepository
	now      Clock
}

func NewFeedService(
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	saves repositories.SavedPostRepository,
	comments repositories.CommentRepository,
	now Clock,
) *FeedService {
	if now == nil {
		now = SystemClock
	}
	return &FeedService{posts: posts, likes: likes, saves: saves, comments: comments, now: now}
}

// NormalizePage clamps page to >= 1 and pageSize to 1..50 (default 10).
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize <= 0:
		pageSize = defaultPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}
	return page, pageSize
}

func (s *FeedService) Explore(ctx context.Context, viewer *models.User, page, pageSize int, mode string) (*models.FeedResponse, error) {
	page, pageSize = NormalizePage(page, pageSize)
	posts, total, err := s.posts.GetExplorePosts(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	return s.page(ctx, viewer, posts, total, page, pageSize, mode, models.FeedReasonExplore)
}

func (s *FeedService) Following(ctx context.Context, viewer *models.User, page, pageSize int, mode string) (*models.FeedResponse, error) {
	if err := requireRole(viewer, models.RoleWorshiper, "Only worshipers have a following feed"); err != nil {
		return nil, err
	}
	page, pageSize = NormalizePage(page, pageSize)
	posts, total, err := s.posts.GetFollowingPosts(ctx, viewer.ID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	return s.page(ctx, viewer, posts, total, page, pageSize, mode, models.FeedReasonFollowing)
}

// DailyReflection picks the newest visible post from the last 24 hours.
func (s *FeedService) DailyReflection(ctx context.Context, viewer *models.User) (*models.DailyReflectionResponse, error) {
	now := s.now()
	resp := &models.DailyReflectionResponse{Date: now.Format("2006-01-02")}

	post, err := s.posts.GetLatestPublishedSince(ctx, now.Add(-24*time.Hour))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.Message = "No reflection available for today"
		return resp, nil
	}
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}

	annotated, err := s.annotate(ctx, viewer, []models.Post{*post}, "", models.FeedReasonDailyReflection)
	if err != nil {
		return nil, err
	}
	annotated[0].IsDailyReflection = true
	resp.Post = &annotated[0]
	resp.Message = "Today's Reflection"
	return resp, nil
}

func (s *FeedService) page(ctx context.Context, viewer *models.User, posts []models.Post, total int64, page, pageSize int, mode, reason string) (*models.FeedResponse, error) {
	annotated, err := s.annotate(ctx, viewer, posts, mode, reason)
	if err != nil {
		return nil, err
	}
	if page == 1 && len(annotated) > 0 {
		annotated[0].IsDailyReflection = true
	}
	return &models.FeedResponse{
		Posts:    annotated,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  total > int64(page*pageSize),
	}, nil
}

// annotate loads engagement for the whole page in four grouped queries.
func (s *FeedService) annotate(ctx context.Context, viewer *models.User, posts []models.Post, mode, reason string) ([]models.FeedPost, error) {
	out := make([]models.FeedPost, 0, len(posts))
	if len(posts) == 0 {
		return out, nil
	}
	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	likeCounts, err := s.likes.CountByPosts(ctx, ids)
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	commentCounts, err := s.comments.CountByPosts(ctx, ids)
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	liked, saved := map[uint]bool{}, map[uint]bool{}
	if viewer != nil {
		if liked, err = s.likes.GetLikedPostIDs(ctx, viewer.ID, ids); err != nil {
			return nil, apperr.FromStore(err, "Post not found")
		}
		if saved, err = s.saves.GetSavedPostIDs(ctx, viewer.ID, ids); err != nil {
			return nil, apperr.FromStore(err, "Post not found")
		}
	}

	now := s.now()
	for i := range posts {
		p := &posts[i]
		timeCtx := TimeContext(p.CreatedAt)
		out = append(out, models.FeedPost{
			ID: p.ID,
			Leader: models.FeedLeader{
				ID:           p.Leader.ID,
				Name:         p.Leader.Name,
				Bio:          p.Leader.Bio,
				ProfilePhoto: p.Leader.ProfilePhoto,
			},
			ContentText:   p.ContentText,
			MediaURL:      p.MediaURL,
			MediaType:     p.MediaType,
			Tag:           p.Tag,
			Intent:        p.Intent,
			CreatedAt:     p.CreatedAt,
			LikesCount:    likeCounts[p.ID],
			CommentsCount: commentCounts[p.ID],
			IsLiked:       liked[p.ID],
			IsSaved:       saved[p.ID],
			ContentTone:   ContentTone(p, mode),
			TimeContext:   timeCtx,
			IsNew:         now.Sub(p.CreatedAt) < 24*time.Hour,
			FeedReason:    reason,
			MomentLabel:   MomentLabel(timeCtx),
		})
	}
	return out, nil
}

// ContentTone prefers an explicit mode (request first, then the post's own),
// then falls back to video, long text, and community in that order.
func ContentTone(p *models.Post, mode string) string {
	if postModes[mode] {
		return mode
	}
	if p.Mode != nil && postModes[*p.Mode] {
		return *p.Mode
	}
	if p.MediaType != nil && *p.MediaType == models.MediaVideo {
		return models.ToneInspiration
	}
	if utf8.RuneCountInString(p.ContentText) > 500 {
		return models.ToneGuidance
	}
	return models.ToneCommunity
}

// TimeContext buckets the hour of t: 5-11 morning, 12-17 afternoon, else evening.
func TimeContext(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

func MomentLabel(timeContext string) string {
	switch timeContext {
	case "morning":
		return "Morning Reflection"
	case "afternoon":
		return "Midday Guidance"
	case "evening":
		return "Evening Thought"
	default:
		return "Daily Moment"
	}
}
