package handlers

import (
	"net/http"

	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/grouped", h.GetGroupedNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.POST("/notifications/:id/read", h.MarkAsRead)
	g.POST("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications returns the newest notifications, read ones included
// unless include_read=false.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	limit := services.ClampLimit(queryInt(c, "limit", 0))
	includeRead := queryBool(c, "include_read", true)

	resp, err := h.notificationService.ListForUser(c.Request().Context(), user.ID, limit, includeRead)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, resp)
}

func (h *NotificationHandler) GetGroupedNotifications(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	resp, err := h.notificationService.Grouped(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, resp)
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	count, err := h.notificationService.UnreadCount(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"unread_count": count})
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "notification")
	if err != nil {
		return err
	}
	n, err := h.notificationService.MarkRead(c.Request().Context(), id, user.ID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, n)
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	count, err := h.notificationService.MarkAllRead(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"marked_count": count})
}
