package services

import (
	"context"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
)

// CommentService adds flat comments. Comments never notify.
type CommentService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	now      Clock
}

func NewCommentService(posts repositories.PostRepository, comments repositories.CommentRepository, now Clock) *CommentService {
	if now == nil {
		now = SystemClock
	}
	return &CommentService{posts: posts, comments: comments, now: now}
}

func (s *CommentService) Add(ctx context.Context, author *models.User, postID uint, raw string) (*models.CommentResponse, error) {
	text, err := cleanText(raw, "content_text", 1, 1000)
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	c := &models.Comment{PostID: postID, UserID: author.ID, ContentText: text, CreatedAt: s.now()}
	if err := s.comments.CreateComment(ctx, c); err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	c.User = *author
	resp := c.ToResponse()
	return &resp, nil
}

// List returns every comment on the post, oldest first.
func (s *CommentService) List(ctx context.Context, postID uint) (*models.CommentListResponse, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	comments, err := s.comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, apperr.FromStore(err, "Post not found")
	}
	out := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, comments[i].ToResponse())
	}
	return &models.CommentListResponse{Comments: out, Total: len(out)}, nil
}
