package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "lmsku_backend/internals/features/academics/classes/dto"
	model "lmsku_backend/internals/features/academics/classes/model"
	helper "lmsku_backend/internals/helpers"
)

type ClassController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{
		DB:        db,
		Validator: validator.New(),
	}
}

func (ctl *ClassController) loadClass(c *fiber.Ctx) (*model.ClassModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid class ID")
	}
	var m model.ClassModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &m, nil
}

// GET /classes?grade=
func (ctl *ClassController) List(c *fiber.Ctx) error {
	dbq := ctl.DB.WithContext(c.Context()).Model(&model.ClassModel{})
	if grade := c.QueryInt("grade"); grade > 0 {
		dbq = dbq.Where("grade = ?", grade)
	}

	var rows []model.ClassModel
	if err := dbq.Order("grade ASC, name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var body dto.CreateClassRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := body.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Class created", m)
}

// PATCH /classes/:id
func (ctl *ClassController) Patch(c *fiber.Ctx) error {
	m, err := ctl.loadClass(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var body dto.UpdateClassRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	body.ApplyToModel(m)
	if err := ctl.DB.WithContext(c.Context()).Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Class updated", m)
}

// DELETE /classes/:id — the join rows go with it.
func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	m, err := ctl.loadClass(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", m.ID).Delete(&model.ClassTeacherModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", m.ID).Delete(&model.ClassSubjectModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(m).Error
	})
	if txErr != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, txErr.Error())
	}

	return helper.JsonDeleted(c, "Class deleted", fiber.Map{"id": m.ID})
}
