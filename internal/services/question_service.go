package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/events"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
	"gorm.io/gorm"
)

type QuestionService struct {
	questions repositories.QuestionRepository
	follows   repositories.FollowRepository
	users     repositories.UserRepository
	pub       publisher
	now       Clock
}

func NewQuestionService(
	questions repositories.QuestionRepository,
	follows repositories.FollowRepository,
	users repositories.UserRepository,
	sink events.Sink,
	log *slog.Logger,
	now Clock,
) *QuestionService {
	if now == nil {
		now = SystemClock
	}
	return &QuestionService{questions: questions, follows: follows, users: users, pub: publisher{sink: sink, log: log}, now: now}
}

// Ask files a pending question. The leader is not notified.
func (s *QuestionService) Ask(ctx context.Context, worshiper *models.User, leaderID uint, raw string) (*models.QuestionResponse, error) {
	if err := requireRole(worshiper, models.RoleWorshiper, "Only worshipers can ask questions to leaders"); err != nil {
		return nil, err
	}
	text, err := cleanText(raw, "question_text", 10, 1000)
	if err != nil {
		return nil, err
	}
	leader, err := s.users.GetLeaderByID(ctx, leaderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Leader with ID %d not found", leaderID))
		}
		return nil, apperr.FromStore(err, "Leader not found")
	}
	following, err := s.follows.IsFollowing(ctx, worshiper.ID, leaderID)
	if err != nil {
		return nil, apperr.FromStore(err, "Leader not found")
	}
	if !following {
		return nil, apperr.Forbidden("You must follow this leader to ask questions")
	}

	q := &models.Question{
		WorshiperID:  worshiper.ID,
		LeaderID:     leaderID,
		QuestionText: text,
		CreatedAt:    s.now(),
	}
	if err := s.questions.CreateQuestion(ctx, q); err != nil {
		return nil, apperr.FromStore(err, "Leader not found")
	}
	q.Worshiper, q.Leader = *worshiper, *leader
	resp := q.ToResponse()
	return &resp, nil
}

// LeaderInbox splits the leader's questions into pending and answered,
// each newest first.
func (s *QuestionService) LeaderInbox(ctx context.Context, leader *models.User) (*models.LeaderQuestionsResponse, error) {
	if err := requireRole(leader, models.RoleLeader, "Only leaders can access question inbox"); err != nil {
		return nil, err
	}
	all, err := s.questions.GetLeaderQuestions(ctx, leader.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "Question not found")
	}
	resp := &models.LeaderQuestionsResponse{
		Pending:  []models.QuestionResponse{},
		Answered: []models.QuestionResponse{},
	}
	for i := range all {
		if all[i].Answered {
			resp.Answered = append(resp.Answered, all[i].ToResponse())
		} else {
			resp.Pending = append(resp.Pending, all[i].ToResponse())
		}
	}
	resp.TotalPending = len(resp.Pending)
	resp.TotalAnswered = len(resp.Answered)
	return resp, nil
}

// Answer sets or overwrites the answer and notifies the worshiper each time.
func (s *QuestionService) Answer(ctx context.Context, leader *models.User, questionID uint, raw string) (*models.QuestionResponse, error) {
	if err := requireRole(leader, models.RoleLeader, "Only leaders can answer questions"); err != nil {
		return nil, err
	}
	text, err := cleanText(raw, "answer_text", 10, 2000)
	if err != nil {
		return nil, err
	}
	q, err := s.questions.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, apperr.FromStore(err, "Question not found")
	}
	if q.LeaderID != leader.ID {
		return nil, apperr.Forbidden("You can only answer questions addressed to you")
	}

	at := s.now()
	q.AnswerText = &text
	q.Answered = true
	q.AnsweredAt = &at
	if err := s.questions.SaveAnswer(ctx, q); err != nil {
		return nil, apperr.FromStore(err, "Question not found")
	}

	err = s.pub.emit(ctx, events.Event{
		Type:          models.NotificationQuestionAnswered,
		RecipientID:   q.WorshiperID,
		ActorID:       leader.ID,
		Message:       fmt.Sprintf("%s answered your question", leader.Name),
		ReferenceType: models.ReferenceQuestion,
		ReferenceID:   q.ID,
		OccurredAt:    at,
	})
	if err != nil {
		return nil, err
	}
	resp := q.ToResponse()
	return &resp, nil
}

func (s *QuestionService) ListMine(ctx context.Context, worshiper *models.User) ([]models.QuestionResponse, error) {
	if err := requireRole(worshiper, models.RoleWorshiper, "Only worshipers can view their questions"); err != nil {
		return nil, err
	}
	all, err := s.questions.GetWorshiperQuestions(ctx, worshiper.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "Question not found")
	}
	out := make([]models.QuestionResponse, 0, len(all))
	for i := range all {
		out = append(out, all[i].ToResponse())
	}
	return out, nil
}
