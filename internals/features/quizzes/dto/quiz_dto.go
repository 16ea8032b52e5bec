package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	contentModel "lmsku_backend/internals/features/contents/model"
	qModel "lmsku_backend/internals/features/quizzes/model"
)

/* =======================================================
   REQUEST DTOs
======================================================= */

type QuestionOption struct {
	Text    string `json:"text" validate:"required"`
	Correct bool   `json:"correct"`
}

type QuestionPayload struct {
	Text    string           `json:"text" validate:"required,min=2"`
	Options []QuestionOption `json:"options" validate:"required,min=2,dive"`
	Points  int              `json:"points" validate:"required,min=1"`
}

// Validate covers what struct tags cannot: at least one correct option.
func (q *QuestionPayload) Validate() error {
	correct := 0
	for _, o := range q.Options {
		if o.Correct {
			correct++
		}
	}
	if correct == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Each question needs at least one correct option")
	}
	return nil
}

// CreateQuizRequest bundles the parent content fields with the quiz fields
// and the ordered question list.
type CreateQuizRequest struct {
	Title     string     `json:"title" validate:"required,min=2,max=200"`
	ClassID   uuid.UUID  `json:"class_id" validate:"required"`
	SubjectID *uuid.UUID `json:"subject_id,omitempty"`
	Status    *string    `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	DueDate   *time.Time `json:"due_date,omitempty"`

	TimeLimit    int               `json:"time_limit" validate:"required,min=1"`
	PassingScore int               `json:"passing_score" validate:"required,min=0"`
	TotalPoints  *int              `json:"total_points,omitempty"`
	Questions    []QuestionPayload `json:"questions" validate:"required,min=1,dive"`
}

func (r *CreateQuizRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

func (r *CreateQuizRequest) ToContentModel(authorID uuid.UUID) *contentModel.ContentModel {
	return &contentModel.ContentModel{
		Title:     r.Title,
		Type:      contentModel.TypeQuiz,
		ClassID:   r.ClassID,
		SubjectID: r.SubjectID,
		AuthorID:  authorID,
		Status:    r.Status,
		DueDate:   r.DueDate,
	}
}

// ToQuizModel builds the quiz plus its questions. A missing total_points
// defaults to the sum of the question points.
func (r *CreateQuizRequest) ToQuizModel(contentID uuid.UUID) (*qModel.QuizModel, error) {
	total := 0
	questions := make([]qModel.QuizQuestionModel, 0, len(r.Questions))
	for i, q := range r.Questions {
		raw, err := json.Marshal(q.Options)
		if err != nil {
			return nil, err
		}
		questions = append(questions, qModel.QuizQuestionModel{
			Position: i,
			Text:     strings.TrimSpace(q.Text),
			Options:  raw,
			Points:   q.Points,
		})
		total += q.Points
	}

	totalPoints := r.TotalPoints
	if totalPoints == nil {
		totalPoints = &total
	}

	return &qModel.QuizModel{
		ContentID:    contentID,
		TimeLimit:    r.TimeLimit,
		PassingScore: r.PassingScore,
		TotalPoints:  totalPoints,
		Questions:    questions,
	}, nil
}

// SubmitAttemptRequest carries the selected option indexes per question, in
// question order.
type SubmitAttemptRequest struct {
	Answers [][]int `json:"answers" validate:"required,min=1"`
}

/* =======================================================
   RESPONSE DTOs
======================================================= */

type QuizResponse struct {
	ID           uuid.UUID                  `json:"id"`
	ContentID    uuid.UUID                  `json:"content_id"`
	TimeLimit    int                        `json:"time_limit"`
	PassingScore int                        `json:"passing_score"`
	TotalPoints  *int                       `json:"total_points,omitempty"`
	CreatedAt    time.Time                  `json:"created_at"`
	Content      *contentModel.ContentModel `json:"content,omitempty"`
	Questions    []qModel.QuizQuestionModel `json:"questions,omitempty"`
}

func FromModel(m *qModel.QuizModel, content *contentModel.ContentModel) QuizResponse {
	return QuizResponse{
		ID:           m.ID,
		ContentID:    m.ContentID,
		TimeLimit:    m.TimeLimit,
		PassingScore: m.PassingScore,
		TotalPoints:  m.TotalPoints,
		CreatedAt:    m.CreatedAt,
		Content:      content,
		Questions:    m.Questions,
	}
}
