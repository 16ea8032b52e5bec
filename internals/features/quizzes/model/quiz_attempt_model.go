package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizAttemptModel records a student's graded submission. Answers keep the
// selected option indexes per question, in question order.
type QuizAttemptModel struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	QuizID    uuid.UUID      `gorm:"column:quiz_id;type:uuid;not null;index" json:"quiz_id"`
	StudentID uuid.UUID      `gorm:"column:student_id;type:uuid;not null;index" json:"student_id"`
	Score     int            `gorm:"column:score;not null" json:"score"`
	Passed    bool           `gorm:"column:passed;not null" json:"passed"`
	Answers   datatypes.JSON `gorm:"column:answers" json:"answers,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (QuizAttemptModel) TableName() string {
	return "quiz_attempts"
}

func (m *QuizAttemptModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
