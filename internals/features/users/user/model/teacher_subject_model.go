package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxSubjectsPerTeacher caps how many subjects one teacher may carry.
const MaxSubjectsPerTeacher = 3

type TeacherSubjectModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TeacherID uuid.UUID `gorm:"column:teacher_id;type:uuid;not null;index;uniqueIndex:uq_teacher_subject" json:"teacher_id"`
	SubjectID uuid.UUID `gorm:"column:subject_id;type:uuid;not null;uniqueIndex:uq_teacher_subject" json:"subject_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (TeacherSubjectModel) TableName() string {
	return "teacher_subjects"
}

func (m *TeacherSubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
