package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeNote        = "note"
	TypeHomework    = "homework"
	TypeQuiz        = "quiz"
	TypeLecture     = "lecture"
	TypeDPP         = "dpp"
	TypeSamplePaper = "sample_paper"

	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ContentModel is a unit of educational material scoped to a class and
// subject. Status is a free-form enum: a null status reads as draft and no
// transition order is enforced.
type ContentModel struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"column:title;size:200;not null" json:"title"`
	Type      string     `gorm:"column:type;type:varchar(20);not null" json:"type"`
	ClassID   uuid.UUID  `gorm:"column:class_id;type:uuid;not null;index" json:"class_id"`
	SubjectID *uuid.UUID `gorm:"column:subject_id;type:uuid;index" json:"subject_id,omitempty"`
	AuthorID  uuid.UUID  `gorm:"column:author_id;type:uuid;not null;index" json:"author_id"`
	Status    *string    `gorm:"column:status;type:varchar(20)" json:"status,omitempty"`
	DueDate   *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (ContentModel) TableName() string {
	return "contents"
}

func (m *ContentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// EffectiveStatus folds the legacy null status into draft.
func (m *ContentModel) EffectiveStatus() string {
	if m.Status == nil || *m.Status == "" {
		return StatusDraft
	}
	return *m.Status
}
