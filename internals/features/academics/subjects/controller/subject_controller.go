package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "lmsku_backend/internals/features/academics/subjects/dto"
	model "lmsku_backend/internals/features/academics/subjects/model"
	helper "lmsku_backend/internals/helpers"
)

type SubjectController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{
		DB:        db,
		Validator: validator.New(),
	}
}

// GET /subjects?withClassCount=true
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	if c.QueryBool("withClassCount") {
		var rows []dto.SubjectWithCountResponse
		err := ctl.DB.WithContext(c.Context()).
			Model(&model.SubjectModel{}).
			Select("subjects.id, subjects.name, subjects.description, subjects.created_at, subjects.updated_at, COUNT(cs.id) AS class_count").
			Joins("LEFT JOIN class_subjects cs ON cs.subject_id = subjects.id").
			Group("subjects.id").
			Order("subjects.name ASC").
			Scan(&rows).Error
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		return helper.JsonOK(c, "ok", rows)
	}

	var rows []model.SubjectModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /subjects
func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	var body dto.CreateSubjectRequest
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
	return helper.JsonCreated(c, "Subject created", m)
}

// PATCH /subjects/:id
func (ctl *SubjectController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject ID")
	}

	var m model.SubjectModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var body dto.UpdateSubjectRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	body.ApplyToModel(&m)
	if err := ctl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Subject updated", &m)
}

// DELETE /subjects/:id — refused while class-subject links still reference it.
func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject ID")
	}

	var linked int64
	if err := ctl.DB.WithContext(c.Context()).
		Table("class_subjects").Where("subject_id = ?", id).
		Count(&linked).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if linked > 0 {
		return helper.JsonError(c, fiber.StatusConflict,
			"Subject is still linked to one or more classes")
	}

	res := ctl.DB.WithContext(c.Context()).Delete(&model.SubjectModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
	}

	return helper.JsonDeleted(c, "Subject deleted", fiber.Map{"id": id})
}
