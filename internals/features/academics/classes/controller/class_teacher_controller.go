package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	dto "lmsku_backend/internals/features/academics/classes/dto"
	model "lmsku_backend/internals/features/academics/classes/model"
	userDTO "lmsku_backend/internals/features/users/user/dto"
	userModel "lmsku_backend/internals/features/users/user/model"
	helper "lmsku_backend/internals/helpers"
)

func (ctl *ClassController) loadTeacherUser(c *fiber.Ctx, id uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if u.Role != constants.RoleTeacher {
		return nil, fiber.NewError(fiber.StatusBadRequest, "User is not a teacher")
	}
	return &u, nil
}

// POST /classes/:id/assign-teacher — replaces the prior class teacher; the
// delete and the insert share one transaction so the class never ends up
// with two.
func (ctl *ClassController) AssignTeacher(c *fiber.Ctx) error {
	class, err := ctl.loadClass(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var body dto.AssignTeacherRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if body.TeacherID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "teacher_id is required")
	}
	if _, err := ctl.loadTeacherUser(c, body.TeacherID); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	row := &model.ClassTeacherModel{ClassID: class.ID, TeacherID: body.TeacherID}
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", class.ID).Delete(&model.ClassTeacherModel{}).Error; err != nil {
			return err
		}
		return tx.Create(row).Error
	})
	if txErr != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, txErr.Error())
	}

	return helper.JsonCreated(c, "Class teacher assigned", row)
}

// DELETE /classes/:id/teacher — no-op when the class has no teacher.
func (ctl *ClassController) RemoveTeacher(c *fiber.Ctx) error {
	class, err := ctl.loadClass(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("class_id = ?", class.ID).
		Delete(&model.ClassTeacherModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Class teacher removed", fiber.Map{"class_id": class.ID})
}

// GET /class-teachers — every (class_id, teacher_id) pair.
func (ctl *ClassController) ListClassTeachers(c *fiber.Ctx) error {
	var rows []model.ClassTeacherModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("created_at ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /classes/:id/students — enrolled students.
func (ctl *ClassController) ListStudents(c *fiber.Ctx) error {
	class, err := ctl.loadClass(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var students []userModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("class_id = ? AND role = ?", class.ID, constants.RoleStudent).
		Order("full_name ASC").
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", userDTO.FromModels(students))
}
