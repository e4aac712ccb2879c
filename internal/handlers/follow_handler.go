package handlers

import (
	"net/http"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.GET("/follows/my-leaders", h.MyLeaders)
	g.GET("/follows/my-followers", h.MyFollowers)
	g.GET("/follows/is-following/:leader_id", h.IsFollowing)
	g.POST("/follows/:leader_id", h.FollowLeader)
	g.DELETE("/follows/:leader_id", h.UnfollowLeader)
}

// FollowLeader follows a leader; repeating it is not an error.
func (h *FollowHandler) FollowLeader(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	leaderID, err := parseID(c, "leader_id", "leader")
	if err != nil {
		return err
	}
	msg, err := h.followService.Follow(c.Request().Context(), user, leaderID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, models.EngagementResponse{Message: msg})
}

// UnfollowLeader always reports success.
func (h *FollowHandler) UnfollowLeader(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	leaderID, err := parseID(c, "leader_id", "leader")
	if err != nil {
		return err
	}
	msg, err := h.followService.Unfollow(c.Request().Context(), user, leaderID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, models.EngagementResponse{Message: msg})
}

func (h *FollowHandler) MyLeaders(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	leaders, err := h.followService.ListFollowedLeaders(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, leaders)
}

func (h *FollowHandler) MyFollowers(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	followers, err := h.followService.ListFollowers(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, followers)
}

func (h *FollowHandler) IsFollowing(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	leaderID, err := parseID(c, "leader_id", "leader")
	if err != nil {
		return err
	}
	following, err := h.followService.IsFollowing(c.Request().Context(), user.ID, leaderID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"is_following": following})
}
