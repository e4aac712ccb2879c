package models

import "time"

// Question moves from pending to answered. Answering again overwrites.
type Question struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	WorshiperID  uint       `json:"worshiper_id" gorm:"not null;index"`
	LeaderID     uint       `json:"leader_id" gorm:"not null;index"`
	QuestionText string     `json:"question_text" gorm:"type:text;not null"`
	AnswerText   *string    `json:"answer_text" gorm:"type:text"`
	Answered     bool       `json:"answered" gorm:"not null;default:false;index"`
	CreatedAt    time.Time  `json:"created_at" gorm:"index"`
	AnsweredAt   *time.Time `json:"answered_at"`

	Worshiper User `json:"-" gorm:"foreignKey:WorshiperID;constraint:OnDelete:CASCADE"`
	Leader    User `json:"-" gorm:"foreignKey:LeaderID;constraint:OnDelete:CASCADE"`
}

type AskQuestionRequest struct {
	QuestionText string `json:"question_text" validate:"required,max=1000"`
}

type AnswerQuestionRequest struct {
	AnswerText string `json:"answer_text" validate:"required,max=2000"`
}

type QuestionResponse struct {
	ID           uint        `json:"id"`
	WorshiperID  uint        `json:"worshiper_id"`
	LeaderID     uint        `json:"leader_id"`
	QuestionText string      `json:"question_text"`
	AnswerText   *string     `json:"answer_text"`
	Answered     bool        `json:"answered"`
	CreatedAt    time.Time   `json:"created_at"`
	AnsweredAt   *time.Time  `json:"answered_at"`
	Worshiper    UserCompact `json:"worshiper"`
	Leader       UserCompact `json:"leader"`
}

func (q *Question) ToResponse() QuestionResponse {
	return QuestionResponse{
		ID:           q.ID,
		WorshiperID:  q.WorshiperID,
		LeaderID:     q.LeaderID,
		QuestionText: q.QuestionText,
		AnswerText:   q.AnswerText,
		Answered:     q.Answered,
		CreatedAt:    q.CreatedAt,
		AnsweredAt:   q.AnsweredAt,
		Worshiper:    q.Worshiper.ToCompact(),
		Leader:       q.Leader.ToCompact(),
	}
}

type LeaderQuestionsResponse struct {
	Pending       []QuestionResponse `json:"pending"`
	Answered      []QuestionResponse `json:"answered"`
	TotalPending  int                `json:"total_pending"`
	TotalAnswered int                `json:"total_answered"`
}
