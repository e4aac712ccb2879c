package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/events"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
)

var (
	postTags    = map[string]bool{"PRAYER": true, "WISDOM": true, "MOTIVATION": true, "MEDITATION": true, "COMMUNITY": true, "TEACHING": true}
	postIntents = map[string]bool{"COMFORT": true, "GUIDANCE": true, "MOTIVATION": true, "PRAYER": true, "TEACHING": true}
	postModes   = map[string]bool{models.ToneInspiration: true, models.ToneGuidance: true, models.ToneCommunity: true}
)

type PostService struct {
	posts   repositories.PostRepository
	follows repositories.FollowRepository
	pub     publisher
	log     *slog.Logger
	now     Clock
}

func NewPostService(posts repositories.PostRepository, follows repositories.FollowRepository, sink events.Sink, log *slog.Logger, now Clock) *PostService {
	if now == nil {
		now = SystemClock
	}
	return &PostService{posts: posts, follows: follows, pub: publisher{sink: sink, log: log}, log: log, now: now}
}

// build validates req and returns the unsaved post. Publish state is fixed
// here: a post is published unless scheduled in the future.
func (s *PostService) build(leader *models.User, req *models.CreatePostRequest) (*models.Post, error) {
	if err := requireRole(leader, models.RoleLeader, "Only leaders can create posts"); err != nil {
		return nil, err
	}
	text, err := cleanText(req.ContentText, "content_text", 1, 5000)
	if err != nil {
		return nil, err
	}

	mediaURL := trimmedOrNil(req.MediaURL)
	mediaType := trimmedOrNil(req.MediaType)
	if (mediaURL == nil) != (mediaType == nil) {
		return nil, apperr.Validation("media_url and media_type must be provided together")
	}
	if mediaType != nil && *mediaType != models.MediaImage && *mediaType != models.MediaVideo {
		return nil, apperr.Validation("media_type must be one of: image, video")
	}

	tag := req.Tag
	if tag == "" {
		tag = models.DefaultPostTag
	}
	if !postTags[tag] {
		return nil, apperr.Validation("tag is not a valid post tag")
	}
	intent := req.Intent
	if intent == "" {
		intent = models.DefaultPostIntent
	}
	if !postIntents[intent] {
		return nil, apperr.Validation("intent is not a valid post intent")
	}
	mode := trimmedOrNil(req.Mode)
	if mode != nil && !postModes[*mode] {
		return nil, apperr.Validation("mode must be one of: inspiration, guidance, community")
	}

	now := s.now()
	post := &models.Post{
		LeaderID:    leader.ID,
		ContentText: text,
		MediaURL:    mediaURL,
		MediaType:   mediaType,
		Tag:         tag,
		Intent:      intent,
		Mode:        mode,
		IsPublished: true,
		IsActive:    true,
		CreatedAt:   now,
	}
	if req.ScheduledAt != nil {
		at := req.ScheduledAt.UTC()
		post.ScheduledAt = &at
		post.IsPublished = !at.After(now)
	}
	return post, nil
}

// Create stores the post and, when it is live immediately, notifies every
// follower of the leader.
func (s *PostService) Create(ctx context.Context, leader *models.User, req *models.CreatePostRequest) (*models.PostResponse, error) {
	post, err := s.build(leader, req)
	if err != nil {
		return nil, err
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, apperr.FromStore(err, "Leader not found")
	}
	s.log.Info("post created", "post_id", post.ID, "leader_id", leader.ID, "status", post.Status())

	if post.IsPublished {
		if err := s.notifyFollowers(ctx, post, leader); err != nil {
			return nil, err
		}
	}
	resp := post.ToResponse()
	return &resp, nil
}

// Preview runs the same validation as Create without writing anything.
func (s *PostService) Preview(leader *models.User, req *models.CreatePostRequest) (*models.PostPreviewResponse, error) {
	post, err := s.build(leader, req)
	if err != nil {
		return nil, err
	}
	resp := post.ToResponse()
	resp.IsPreview = true
	return &models.PostPreviewResponse{Post: resp, Message: "Preview generated - not saved to database"}, nil
}

func (s *PostService) ListLeaderPosts(ctx context.Context, leader *models.User) (*models.LeaderPostsResponse, error) {
	if err := requireRole(leader, models.RoleLeader, "Only leaders can view their posts"); err != nil {
		return nil, err
	}
	posts, err := s.posts.GetLeaderPosts(ctx, leader.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	out := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].ToResponse())
	}
	return &models.LeaderPostsResponse{Posts: out, Total: len(out)}, nil
}

// PromoteDuePosts publishes every scheduled post whose time has come and
// notifies followers. A post another sweep already flipped is skipped.
func (s *PostService) PromoteDuePosts(ctx context.Context) (int, error) {
	due, err := s.posts.GetDuePosts(ctx, s.now())
	if err != nil {
		return 0, apperr.FromStore(err, "Post not found")
	}
	promoted := 0
	for i := range due {
		post := &due[i]
		flipped, err := s.posts.MarkPublished(ctx, post.ID)
		if err != nil {
			return promoted, apperr.FromStore(err, "Post not found")
		}
		if !flipped {
			continue
		}
		promoted++
		post.IsPublished = true
		if err := s.notifyFollowers(ctx, post, &post.Leader); err != nil {
			s.log.Error("promoted post fan-out incomplete", "post_id", post.ID, "error", err)
		}
	}
	if promoted > 0 {
		s.log.Info("scheduled posts promoted", "count", promoted)
	}
	return promoted, nil
}

func (s *PostService) notifyFollowers(ctx context.Context, post *models.Post, leader *models.User) error {
	followerIDs, err := s.follows.GetFollowerIDs(ctx, leader.ID)
	if err != nil {
		s.log.Error("load followers for fan-out", "post_id", post.ID, "error", err)
		return apperr.Internal("Failed to create notification", err)
	}
	msg := fmt.Sprintf("%s shared new spiritual content", leader.Name)
	var firstErr error
	for _, id := range followerIDs {
		err := s.pub.emit(ctx, events.Event{
			Type:          models.NotificationNewPost,
			RecipientID:   id,
			ActorID:       leader.ID,
			Message:       msg,
			ReferenceType: models.ReferencePost,
			ReferenceID:   post.ID,
			OccurredAt:    s.now(),
		})
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
