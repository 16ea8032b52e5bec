package dto

import (
	"strings"

	"github.com/google/uuid"

	cModel "lmsku_backend/internals/features/academics/classes/model"
)

type CreateClassRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description,omitempty"`
	Grade       int     `json:"grade" validate:"required,min=1,max=12"`
	Section     *string `json:"section,omitempty" validate:"omitempty,max=10"`
}

func (r *CreateClassRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateClassRequest) ToModel() *cModel.ClassModel {
	return &cModel.ClassModel{
		Name:        r.Name,
		Description: r.Description,
		Grade:       r.Grade,
		Section:     r.Section,
	}
}

type UpdateClassRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty"`
	Grade       *int    `json:"grade,omitempty" validate:"omitempty,min=1,max=12"`
	Section     *string `json:"section,omitempty" validate:"omitempty,max=10"`
}

func (r *UpdateClassRequest) ApplyToModel(m *cModel.ClassModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		m.Description = r.Description
	}
	if r.Grade != nil {
		m.Grade = *r.Grade
	}
	if r.Section != nil {
		m.Section = r.Section
	}
}

type AssignTeacherRequest struct {
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
}

type AttachSubjectRequest struct {
	SubjectID uuid.UUID  `json:"subject_id" validate:"required"`
	TeacherID *uuid.UUID `json:"teacher_id,omitempty"`
}
