package handlers

import (
	"net/http"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func (h *QuestionHandler) RegisterQuestionRoutes(g *echo.Group) {
	g.POST("/leaders/:leader_id/questions", h.AskQuestion)
	g.GET("/leaders/questions", h.GetInbox)
	g.POST("/leaders/questions/:question_id/answer", h.AnswerQuestion)
	g.GET("/worshipers/me/questions", h.GetMyQuestions)
}

func (h *QuestionHandler) AskQuestion(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	leaderID, err := parseID(c, "leader_id", "leader")
	if err != nil {
		return err
	}
	var req models.AskQuestionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	q, err := h.questionService.Ask(c.Request().Context(), user, leaderID, req.QuestionText)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, q)
}

// GetInbox splits the leader's questions into pending and answered.
func (h *QuestionHandler) GetInbox(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	inbox, err := h.questionService.LeaderInbox(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, inbox)
}

func (h *QuestionHandler) AnswerQuestion(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	questionID, err := parseID(c, "question_id", "question")
	if err != nil {
		return err
	}
	var req models.AnswerQuestionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	q, err := h.questionService.Answer(c.Request().Context(), user, questionID, req.AnswerText)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, q)
}

func (h *QuestionHandler) GetMyQuestions(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	questions, err := h.questionService.ListMine(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, questions)
}
