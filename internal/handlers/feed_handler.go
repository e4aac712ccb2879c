package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed/explore", h.GetExploreFeed)
	g.GET("/feed/following", h.GetFollowingFeed)
	g.GET("/feed/daily-reflection", h.GetDailyReflection)
}

func (h *FeedHandler) GetExploreFeed(c echo.Context) error {
	return h.feed(c, h.feedService.Explore)
}

func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	return h.feed(c, h.feedService.Following)
}

type feedFunc func(ctx context.Context, viewer *models.User, page, pageSize int, mode string) (*models.FeedResponse, error)

func (h *FeedHandler) feed(c echo.Context, fn feedFunc) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	// An unrecognized mode falls back to the tone derived from each post.
	mode := c.QueryParam("mode")
	page, pageSize := services.NormalizePage(queryInt(c, "page", 1), queryInt(c, "page_size", 0))

	resp, err := fn(c.Request().Context(), user, page, pageSize, mode)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    resp,
		"meta":    pageMeta(resp.Page, resp.PageSize, resp.Total),
	})
}

func (h *FeedHandler) GetDailyReflection(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	resp, err := h.feedService.DailyReflection(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, resp)
}
