package services

import (
	"context"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
)

const (
	MsgPostLiked        = "Post liked"
	MsgPostAlreadyLiked = "Post already liked"
	MsgPostUnliked      = "Post unliked"
	MsgPostNotLiked     = "Post not liked"

	MsgPostSaved        = "Post saved"
	MsgPostAlreadySaved = "Post already saved"
	MsgPostUnsaved      = "Post unsaved"
	MsgPostNotSaved     = "Post not saved"
)

// EngagementService toggles like and save edges. Neither toggle notifies.
type EngagementService struct {
	posts    repositories.PostRepository
	likes    repositories.LikeRepository
	saves    repositories.SavedPostRepository
	comments repositories.CommentRepository
}

func NewEngagementService(
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	saves repositories.SavedPostRepository,
	comments repositories.CommentRepository,
) *EngagementService {
	return &EngagementService{posts: posts, likes: likes, saves: saves, comments: comments}
}

func (s *EngagementService) guard(ctx context.Context, user *models.User, postID uint) error {
	if err := requireRole(user, models.RoleWorshiper, "Only worshipers can like or save posts"); err != nil {
		return err
	}
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return apperr.FromStore(err, "Post not found")
	}
	return nil
}

func (s *EngagementService) Like(ctx context.Context, user *models.User, postID uint) (string, error) {
	if err := s.guard(ctx, user, postID); err != nil {
		return "", err
	}
	created, err := s.likes.CreateLike(ctx, postID, user.ID)
	if err != nil {
		return "", apperr.FromStore(err, "Post not found")
	}
	if !created {
		return MsgPostAlreadyLiked, nil
	}
	return MsgPostLiked, nil
}

func (s *EngagementService) Unlike(ctx context.Context, user *models.User, postID uint) (string, error) {
	if err := s.guard(ctx, user, postID); err != nil {
		return "", err
	}
	deleted, err := s.likes.DeleteLike(ctx, postID, user.ID)
	if err != nil {
		return "", apperr.FromStore(err, "Post not found")
	}
	if !deleted {
		return MsgPostNotLiked, nil
	}
	return MsgPostUnliked, nil
}

func (s *EngagementService) Save(ctx context.Context, user *models.User, postID uint) (string, error) {
	if err := s.guard(ctx, user, postID); err != nil {
		return "", err
	}
	created, err := s.saves.SavePost(ctx, postID, user.ID)
	if err != nil {
		return "", apperr.FromStore(err, "Post not found")
	}
	if !created {
		return MsgPostAlreadySaved, nil
	}
	return MsgPostSaved, nil
}

func (s *EngagementService) Unsave(ctx context.Context, user *models.User, postID uint) (string, error) {
	if err := s.guard(ctx, user, postID); err != nil {
		return "", err
	}
	deleted, err := s.saves.UnsavePost(ctx, postID, user.ID)
	if err != nil {
		return "", apperr.FromStore(err, "Post not found")
	}
	if !deleted {
		return MsgPostNotSaved, nil
	}
	return MsgPostUnsaved, nil
}

// Stats recomputes the counters on every call. The viewer flags are only
// filled when viewer is non-nil.
func (s *EngagementService) Stats(ctx context.Context, postID uint, viewer *models.User) (*models.EngagementStats, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	likes, err := s.likes.CountByPost(ctx, postID)
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	comments, err := s.comments.CountByPost(ctx, postID)
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	stats := &models.EngagementStats{LikesCount: likes, CommentsCount: comments}
	if viewer == nil {
		return stats, nil
	}

	liked, err := s.likes.HasUserLikedPost(ctx, postID, viewer.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	saved, err := s.saves.IsPostSaved(ctx, postID, viewer.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	stats.IsLiked = &liked
	stats.IsSaved = &saved
	return stats, nil
}

// ListSaved returns the worshiper's saved posts, most recent save first.
func (s *EngagementService) ListSaved(ctx context.Context, user *models.User) ([]models.PostResponse, error) {
	if err := requireRole(user, models.RoleWorshiper, "Only worshipers can view saved posts"); err != nil {
		return nil, err
	}
	posts, err := s.saves.GetSavedPostsByUser(ctx, user.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	out := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].ToResponse())
	}
	return out, nil
}
