package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserModel is the unified users table. Role-specific columns live side by
// side: they are only meaningful for the matching role and stay null for
// everyone else (lenient by design of the product, no cross-role constraint).
type UserModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserName     string    `gorm:"column:user_name;size:50;uniqueIndex;not null" json:"user_name"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"column:password;not null" json:"-"`
	FullName     string    `gorm:"column:full_name;size:100;not null" json:"full_name"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:'student'" json:"role"`
	ProfileImage *string   `gorm:"column:profile_image" json:"profile_image,omitempty"`
	Bio          *string   `gorm:"column:bio" json:"bio,omitempty"`

	// teacher-only
	ExperienceLevel *string        `gorm:"column:experience_level;size:50" json:"experience_level,omitempty"`
	TeacherID       *string        `gorm:"column:teacher_id;size:50" json:"teacher_id,omitempty"`
	Qualifications  datatypes.JSON `gorm:"column:qualifications" json:"qualifications,omitempty"`

	// student-only
	AdmissionNo   *string    `gorm:"column:admission_no;size:50" json:"admission_no,omitempty"`
	AdmissionDate *time.Time `gorm:"column:admission_date" json:"admission_date,omitempty"`
	Grade         *int       `gorm:"column:grade" json:"grade,omitempty"`
	Section       *string    `gorm:"column:section;size:10" json:"section,omitempty"`
	ParentsMobile *string    `gorm:"column:parents_mobile;size:20" json:"parents_mobile,omitempty"`
	ClassID       *uuid.UUID `gorm:"column:class_id;type:uuid;index" json:"class_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
