package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	sModel "lmsku_backend/internals/features/academics/subjects/model"
)

type CreateSubjectRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateSubjectRequest) ToModel() *sModel.SubjectModel {
	return &sModel.SubjectModel{
		Name:        r.Name,
		Description: r.Description,
	}
}

type UpdateSubjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateSubjectRequest) ApplyToModel(m *sModel.SubjectModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		m.Description = r.Description
	}
}

// SubjectWithCountResponse is the ?withClassCount=true shape.
type SubjectWithCountResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ClassCount  int64     `json:"class_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
