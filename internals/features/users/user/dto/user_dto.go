package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	uModel "lmsku_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
======================================================= */

// CreateUserRequest — register / create by admin.
// Role-specific fields are accepted leniently; off-role fields are simply
// stored and ignored by consumers.
type CreateUserRequest struct {
	UserName     string  `json:"username" validate:"required,min=3,max=50"`
	Email        string  `json:"email" validate:"required,email,max=255"`
	Password     string  `json:"password" validate:"required,min=6"`
	FullName     string  `json:"name" validate:"required,min=2,max=100"`
	Role         string  `json:"role" validate:"required,oneof=admin teacher student"`
	ProfileImage *string `json:"profile_image,omitempty"`
	Bio          *string `json:"bio,omitempty"`

	ExperienceLevel *string `json:"experience_level,omitempty"`
	TeacherID       *string `json:"teacher_id,omitempty"`

	AdmissionNo   *string    `json:"admission_no,omitempty"`
	AdmissionDate *time.Time `json:"admission_date,omitempty"`
	Grade         *int       `json:"grade,omitempty" validate:"omitempty,min=1,max=12"`
	Section       *string    `json:"section,omitempty"`
	ParentsMobile *string    `json:"parents_mobile,omitempty"`
	ClassID       *uuid.UUID `json:"class_id,omitempty"`
}

func (r *CreateUserRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Role = strings.TrimSpace(strings.ToLower(r.Role))
}

// ToModel converts to the model. Password hashing happens in the service.
func (r *CreateUserRequest) ToModel() *uModel.UserModel {
	return &uModel.UserModel{
		UserName:        r.UserName,
		Email:           r.Email,
		Password:        r.Password,
		FullName:        r.FullName,
		Role:            r.Role,
		ProfileImage:    r.ProfileImage,
		Bio:             r.Bio,
		ExperienceLevel: r.ExperienceLevel,
		TeacherID:       r.TeacherID,
		AdmissionNo:     r.AdmissionNo,
		AdmissionDate:   r.AdmissionDate,
		Grade:           r.Grade,
		Section:         r.Section,
		ParentsMobile:   r.ParentsMobile,
		ClassID:         r.ClassID,
	}
}

// UpdateUserRequest — partial update (pointers distinguish omitted fields).
// Password omitted means the stored hash stays unchanged.
type UpdateUserRequest struct {
	UserName     *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=6"`
	FullName     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Role         *string `json:"role,omitempty" validate:"omitempty,oneof=admin teacher student"`
	ProfileImage *string `json:"profile_image,omitempty"`
	Bio          *string `json:"bio,omitempty"`

	ExperienceLevel *string `json:"experience_level,omitempty"`
	TeacherID       *string `json:"teacher_id,omitempty"`

	AdmissionNo   *string    `json:"admission_no,omitempty"`
	AdmissionDate *time.Time `json:"admission_date,omitempty"`
	Grade         *int       `json:"grade,omitempty" validate:"omitempty,min=1,max=12"`
	Section       *string    `json:"section,omitempty"`
	ParentsMobile *string    `json:"parents_mobile,omitempty"`
	ClassID       *uuid.UUID `json:"class_id,omitempty"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.UserName != nil {
		v := strings.TrimSpace(*r.UserName)
		r.UserName = &v
	}
	if r.Email != nil {
		v := strings.TrimSpace(strings.ToLower(*r.Email))
		r.Email = &v
	}
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
	}
	if r.Role != nil {
		v := strings.TrimSpace(strings.ToLower(*r.Role))
		r.Role = &v
	}
}

// ApplyToModel applies the present fields to an existing model. The password
// is applied as-is; hashing happens in the service before Save.
func (r *UpdateUserRequest) ApplyToModel(m *uModel.UserModel) {
	if r.UserName != nil {
		m.UserName = *r.UserName
	}
	if r.Email != nil {
		m.Email = *r.Email
	}
	if r.Password != nil {
		m.Password = *r.Password
	}
	if r.FullName != nil {
		m.FullName = *r.FullName
	}
	if r.Role != nil {
		m.Role = *r.Role
	}
	if r.ProfileImage != nil {
		m.ProfileImage = r.ProfileImage
	}
	if r.Bio != nil {
		m.Bio = r.Bio
	}
	if r.ExperienceLevel != nil {
		m.ExperienceLevel = r.ExperienceLevel
	}
	if r.TeacherID != nil {
		m.TeacherID = r.TeacherID
	}
	if r.AdmissionNo != nil {
		m.AdmissionNo = r.AdmissionNo
	}
	if r.AdmissionDate != nil {
		m.AdmissionDate = r.AdmissionDate
	}
	if r.Grade != nil {
		m.Grade = r.Grade
	}
	if r.Section != nil {
		m.Section = r.Section
	}
	if r.ParentsMobile != nil {
		m.ParentsMobile = r.ParentsMobile
	}
	if r.ClassID != nil {
		m.ClassID = r.ClassID
	}
}

/* =======================================================
   RESPONSE DTOs
======================================================= */

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	UserName     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"name"`
	Role         string    `json:"role"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	Bio          *string   `json:"bio,omitempty"`

	ExperienceLevel *string        `json:"experience_level,omitempty"`
	TeacherID       *string        `json:"teacher_id,omitempty"`
	Qualifications  datatypes.JSON `json:"qualifications,omitempty"`

	AdmissionNo   *string    `json:"admission_no,omitempty"`
	AdmissionDate *time.Time `json:"admission_date,omitempty"`
	Grade         *int       `json:"grade,omitempty"`
	Section       *string    `json:"section,omitempty"`
	ParentsMobile *string    `json:"parents_mobile,omitempty"`
	ClassID       *uuid.UUID `json:"class_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:              m.ID,
		UserName:        m.UserName,
		Email:           m.Email,
		FullName:        m.FullName,
		Role:            m.Role,
		ProfileImage:    m.ProfileImage,
		Bio:             m.Bio,
		ExperienceLevel: m.ExperienceLevel,
		TeacherID:       m.TeacherID,
		Qualifications:  m.Qualifications,
		AdmissionNo:     m.AdmissionNo,
		AdmissionDate:   m.AdmissionDate,
		Grade:           m.Grade,
		Section:         m.Section,
		ParentsMobile:   m.ParentsMobile,
		ClassID:         m.ClassID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func FromModels(ms []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
