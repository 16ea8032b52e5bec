package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "lmsku_backend/internals/features/academics/classes/dto"
	model "lmsku_backend/internals/features/academics/classes/model"
	subjectModel "lmsku_backend/internals/features/academics/subjects/model"
	helper "lmsku_backend/internals/helpers"
)

// POST /classes/:id/subjects — attach a subject (unique per class), with an
// optional teacher pinned to the pairing.
func (ctl *ClassController) AttachSubject(c *fiber.Ctx) error {
	class, err := ctl.loadClass(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var body dto.AttachSubjectRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if body.SubjectID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "subject_id is required")
	}

	var subject subjectModel.SubjectModel
	if err := ctl.DB.WithContext(c.Context()).First(&subject, "id = ?", body.SubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if body.TeacherID != nil {
		if _, err := ctl.loadTeacherUser(c, *body.TeacherID); err != nil {
			fe := err.(*fiber.Error)
			return helper.JsonError(c, fe.Code, fe.Message)
		}
	}

	row := &model.ClassSubjectModel{
		ClassID:   class.ID,
		SubjectID: body.SubjectID,
		TeacherID: body.TeacherID,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Subject is already attached to this class")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Subject attached to class", row)
}

// DELETE /classes/:id/subjects/:subjectId
func (ctl *ClassController) DetachSubject(c *fiber.Ctx) error {
	class, err := ctl.loadClass(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	subjectID, err := uuid.Parse(strings.TrimSpace(c.Params("subjectId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject ID")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("class_id = ? AND subject_id = ?", class.ID, subjectID).
		Delete(&model.ClassSubjectModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Subject is not attached to this class")
	}

	return helper.JsonDeleted(c, "Subject detached from class", fiber.Map{
		"class_id":   class.ID,
		"subject_id": subjectID,
	})
}

// GET /classes/:id/subjects
func (ctl *ClassController) ListSubjects(c *fiber.Ctx) error {
	class, err := ctl.loadClass(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var rows []model.ClassSubjectModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("class_id = ?", class.ID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}
