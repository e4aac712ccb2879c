package handlers

import (
	"net/http"

	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type LeaderHandler struct {
	leaderService *services.LeaderService
}

func NewLeaderHandler(leaderService *services.LeaderService) *LeaderHandler {
	return &LeaderHandler{leaderService: leaderService}
}

func (h *LeaderHandler) RegisterLeaderRoutes(g *echo.Group) {
	g.GET("/leaders", h.ListLeaders)
	g.GET("/leaders/:leader_id", h.GetLeader)
}

func (h *LeaderHandler) ListLeaders(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	leaders, err := h.leaderService.ListLeaders(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, leaders)
}

func (h *LeaderHandler) GetLeader(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	leaderID, err := parseID(c, "leader_id", "leader")
	if err != nil {
		return err
	}
	profile, err := h.leaderService.GetLeaderProfile(c.Request().Context(), user, leaderID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, profile)
}
