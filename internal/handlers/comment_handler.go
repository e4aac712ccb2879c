package handlers

import (
	"net/http"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetComments)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "post_id", "post")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.commentService.Add(c.Request().Context(), user, postID, req.ContentText)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, comment)
}

// GetComments lists a post's comments oldest first.
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := parseID(c, "post_id", "post")
	if err != nil {
		return err
	}
	comments, err := h.commentService.List(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, comments)
}
