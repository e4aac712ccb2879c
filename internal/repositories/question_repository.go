package repositories

import (
	"context"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"gorm.io/gorm"
)

// QuestionRepository defines the interface for question operations
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question *models.Question) error
	GetQuestionByID(ctx context.Context, id uint) (*models.Question, error)
	GetLeaderQuestions(ctx context.Context, leaderID uint) ([]models.Question, error)
	GetWorshiperQuestions(ctx context.Context, worshiperID uint) ([]models.Question, error)
	SaveAnswer(ctx context.Context, question *models.Question) error
}

type PostgresQuestionRepository struct {
	db *gorm.DB
}

func NewPostgresQuestionRepository(db *gorm.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

func (r *PostgresQuestionRepository) CreateQuestion(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *PostgresQuestionRepository) GetQuestionByID(ctx context.Context, id uint) (*models.Question, error) {
	var q models.Question
	if err := r.db.WithContext(ctx).Preload("Worshiper").Preload("Leader").First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *PostgresQuestionRepository) listBy(ctx context.Context, column string, userID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Preload("Worshiper").
		Preload("Leader").
		Where(column+" = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&questions).Error
	return questions, err
}

func (r *PostgresQuestionRepository) GetLeaderQuestions(ctx context.Context, leaderID uint) ([]models.Question, error) {
	return r.listBy(ctx, "leader_id", leaderID)
}

func (r *PostgresQuestionRepository) GetWorshiperQuestions(ctx context.Context, worshiperID uint) ([]models.Question, error) {
	return r.listBy(ctx, "worshiper_id", worshiperID)
}

// SaveAnswer writes the answer columns only.
func (r *PostgresQuestionRepository) SaveAnswer(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Model(&models.Question{}).
		Where("id = ?", question.ID).
		Updates(map[string]interface{}{
			"answer_text": question.AnswerText,
			"answered":    question.Answered,
			"answered_at": question.AnsweredAt,
		}).Error
}
