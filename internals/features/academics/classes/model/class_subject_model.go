package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassSubjectModel links a subject into a class, optionally pinning the
// teacher who covers that pairing.
type ClassSubjectModel struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ClassID   uuid.UUID  `gorm:"column:class_id;type:uuid;not null;uniqueIndex:uq_class_subject" json:"class_id"`
	SubjectID uuid.UUID  `gorm:"column:subject_id;type:uuid;not null;uniqueIndex:uq_class_subject;index" json:"subject_id"`
	TeacherID *uuid.UUID `gorm:"column:teacher_id;type:uuid" json:"teacher_id,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (ClassSubjectModel) TableName() string {
	return "class_subjects"
}

func (m *ClassSubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
