package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizModel is the 1:1 extension of a contents row of type "quiz". The quiz
// and its parent content are only ever created together (one transaction).
type QuizModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ContentID    uuid.UUID `gorm:"column:content_id;type:uuid;not null;uniqueIndex" json:"content_id"`
	TimeLimit    int       `gorm:"column:time_limit;not null" json:"time_limit"`
	PassingScore int       `gorm:"column:passing_score;not null" json:"passing_score"`
	TotalPoints  *int      `gorm:"column:total_points" json:"total_points,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`

	Questions []QuizQuestionModel `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (QuizModel) TableName() string {
	return "quizzes"
}

func (m *QuizModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// QuizQuestionModel holds one ordered question; options are stored as a JSON
// array of {text, correct} objects.
type QuizQuestionModel struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	QuizID    uuid.UUID      `gorm:"column:quiz_id;type:uuid;not null;index" json:"quiz_id"`
	Position  int            `gorm:"column:position;not null" json:"position"`
	Text      string         `gorm:"column:text;not null" json:"text"`
	Options   datatypes.JSON `gorm:"column:options;not null" json:"options"`
	Points    int            `gorm:"column:points;not null" json:"points"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (QuizQuestionModel) TableName() string {
	return "quiz_questions"
}

func (m *QuizQuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
