package handlers

import (
	"net/http"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ChatHandler handles worshiper/leader direct messaging.
type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.POST("/leaders/:leader_id/messages", h.StartChat)
	g.GET("/leaders/chats", h.GetLeaderChats)
	g.GET("/chats", h.GetMyChats)
	g.GET("/chats/:chat_id", h.GetChat)
	g.POST("/chats/:chat_id/messages", h.SendMessage)
	g.POST("/chats/:chat_id/mark-read", h.MarkRead)
}

// StartChat sends a worshiper's message to a followed leader, opening the
// chat if needed.
func (h *ChatHandler) StartChat(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	leaderID, err := parseID(c, "leader_id", "leader")
	if err != nil {
		return err
	}
	var req models.SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.chatService.SendFirstMessage(c.Request().Context(), user, leaderID, req.ContentText)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, msg)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	chatID, err := parseID(c, "chat_id", "chat")
	if err != nil {
		return err
	}
	var req models.SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.chatService.SendMessage(c.Request().Context(), user, chatID, req.ContentText)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, msg)
}

func (h *ChatHandler) GetChat(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	chatID, err := parseID(c, "chat_id", "chat")
	if err != nil {
		return err
	}
	chat, err := h.chatService.GetConversation(c.Request().Context(), user, chatID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, chat)
}

func (h *ChatHandler) GetMyChats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	chats, err := h.chatService.ListMyChats(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, chats)
}

func (h *ChatHandler) GetLeaderChats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	chats, err := h.chatService.ListLeaderChats(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, chats)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	chatID, err := parseID(c, "chat_id", "chat")
	if err != nil {
		return err
	}
	n, err := h.chatService.MarkRead(c.Request().Context(), user, chatID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"marked_count": n})
}
