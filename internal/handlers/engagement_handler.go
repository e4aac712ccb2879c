package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// EngagementHandler handles likes, saves and engagement stats.
type EngagementHandler struct {
	engagementService *services.EngagementService
}

func NewEngagementHandler(engagementService *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group) {
	g.GET("/posts/saved", h.GetSavedPosts)
	g.POST("/posts/:post_id/like", h.toggle(h.engagementService.Like))
	g.DELETE("/posts/:post_id/like", h.toggle(h.engagementService.Unlike))
	g.POST("/posts/:post_id/save", h.toggle(h.engagementService.Save))
	g.DELETE("/posts/:post_id/save", h.toggle(h.engagementService.Unsave))
	g.GET("/posts/:post_id/stats", h.GetStats)
}

type toggleFunc func(ctx context.Context, user *models.User, postID uint) (string, error)

// toggle adapts an idempotent like/save operation into a handler.
func (h *EngagementHandler) toggle(fn toggleFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}
		postID, err := parseID(c, "post_id", "post")
		if err != nil {
			return err
		}
		msg, err := fn(c.Request().Context(), user, postID)
		if err != nil {
			return httpError(err)
		}
		return ok(c, http.StatusOK, models.EngagementResponse{Message: msg})
	}
}

func (h *EngagementHandler) GetStats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "post_id", "post")
	if err != nil {
		return err
	}
	stats, err := h.engagementService.Stats(c.Request().Context(), postID, user)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, stats)
}

func (h *EngagementHandler) GetSavedPosts(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	posts, err := h.engagementService.ListSaved(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, posts)
}
