package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassTeacherModel designates the single class teacher of a class. The
// unique index on class_id enforces "at most one per class"; reassignment
// replaces the prior row.
type ClassTeacherModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ClassID   uuid.UUID `gorm:"column:class_id;type:uuid;not null;uniqueIndex" json:"class_id"`
	TeacherID uuid.UUID `gorm:"column:teacher_id;type:uuid;not null;index" json:"teacher_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (ClassTeacherModel) TableName() string {
	return "class_teachers"
}

func (m *ClassTeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
