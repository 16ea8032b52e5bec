package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	aModel "lmsku_backend/internals/features/assignments/model"
)

type CreateAssignmentRequest struct {
	ClassID         uuid.UUID  `json:"class_id" validate:"required"`
	StudentID       uuid.UUID  `json:"student_id" validate:"required"`
	AssignmentTitle string     `json:"assignment_title" validate:"required,min=2,max=200"`
	Description     string     `json:"description" validate:"required"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Remarks         *string    `json:"remarks,omitempty"`
}

func (r *CreateAssignmentRequest) Normalize() {
	r.AssignmentTitle = strings.TrimSpace(r.AssignmentTitle)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *CreateAssignmentRequest) ToModel() *aModel.AssignmentModel {
	return &aModel.AssignmentModel{
		ClassID:         r.ClassID,
		StudentID:       r.StudentID,
		AssignmentTitle: r.AssignmentTitle,
		Description:     r.Description,
		DueDate:         r.DueDate,
		Remarks:         r.Remarks,
	}
}

type UpdateAssignmentRequest struct {
	AssignmentTitle *string    `json:"assignment_title,omitempty" validate:"omitempty,min=2,max=200"`
	Description     *string    `json:"description,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	IsCompleted     *bool      `json:"is_completed,omitempty"`
	SubmissionDate  *time.Time `json:"submission_date,omitempty"`
	Remarks         *string    `json:"remarks,omitempty"`
}

func (r *UpdateAssignmentRequest) ApplyToModel(m *aModel.AssignmentModel) {
	if r.AssignmentTitle != nil {
		m.AssignmentTitle = strings.TrimSpace(*r.AssignmentTitle)
	}
	if r.Description != nil {
		m.Description = strings.TrimSpace(*r.Description)
	}
	if r.DueDate != nil {
		m.DueDate = r.DueDate
	}
	if r.IsCompleted != nil {
		m.IsCompleted = *r.IsCompleted
	}
	if r.SubmissionDate != nil {
		m.SubmissionDate = r.SubmissionDate
	}
	if r.Remarks != nil {
		m.Remarks = r.Remarks
	}
}
