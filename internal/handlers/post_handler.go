package handlers

import (
	"net/http"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles leader post authoring.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.POST("/posts/preview", h.PreviewPost)
	g.GET("/posts/leaders/me/posts", h.GetMyPosts)
}

// CreatePost publishes a post now, or schedules it when scheduled_at is in
// the future.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.postService.Create(c.Request().Context(), user, &req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, post)
}

// PreviewPost renders a post without storing it.
func (h *PostHandler) PreviewPost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	preview, err := h.postService.Preview(user, &req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, preview)
}

func (h *PostHandler) GetMyPosts(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	posts, err := h.postService.ListLeaderPosts(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, posts)
}
