package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	cModel "lmsku_backend/internals/features/contents/model"
)

type CreateContentRequest struct {
	Title     string     `json:"title" validate:"required,min=2,max=200"`
	Type      string     `json:"type" validate:"required,oneof=note homework quiz lecture dpp sample_paper"`
	ClassID   uuid.UUID  `json:"class_id" validate:"required"`
	SubjectID *uuid.UUID `json:"subject_id,omitempty"`
	Status    *string    `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

func (r *CreateContentRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Type = strings.TrimSpace(strings.ToLower(r.Type))
}

func (r *CreateContentRequest) ToModel(authorID uuid.UUID) *cModel.ContentModel {
	return &cModel.ContentModel{
		Title:     r.Title,
		Type:      r.Type,
		ClassID:   r.ClassID,
		SubjectID: r.SubjectID,
		AuthorID:  authorID,
		Status:    r.Status,
		DueDate:   r.DueDate,
	}
}

type UpdateContentRequest struct {
	Title   *string    `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Status  *string    `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

func (r *UpdateContentRequest) ApplyToModel(m *cModel.ContentModel) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Status != nil {
		m.Status = r.Status
	}
	if r.DueDate != nil {
		m.DueDate = r.DueDate
	}
}
