package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentModel tracks one homework item for one student of a class.
type AssignmentModel struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ClassID         uuid.UUID  `gorm:"column:class_id;type:uuid;not null;index" json:"class_id"`
	StudentID       uuid.UUID  `gorm:"column:student_id;type:uuid;not null;index" json:"student_id"`
	AssignmentTitle string     `gorm:"column:assignment_title;size:200;not null" json:"assignment_title"`
	Description     string     `gorm:"column:description;not null" json:"description"`
	DueDate         *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	IsCompleted     bool       `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	SubmissionDate  *time.Time `gorm:"column:submission_date" json:"submission_date,omitempty"`
	Remarks         *string    `gorm:"column:remarks" json:"remarks,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (AssignmentModel) TableName() string {
	return "assignments"
}

func (m *AssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
