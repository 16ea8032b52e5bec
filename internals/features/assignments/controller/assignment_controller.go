package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	dto "lmsku_backend/internals/features/assignments/dto"
	model "lmsku_backend/internals/features/assignments/model"
	helper "lmsku_backend/internals/helpers"
)

type AssignmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{
		DB:        db,
		Validator: validator.New(),
	}
}

func (ctl *AssignmentController) loadAssignment(c *fiber.Ctx) (*model.AssignmentModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid assignment ID")
	}

	var row model.AssignmentModel
	if err := ctl.DB.WithContext(c.Context()).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

// Students only see and touch their own rows.
func canAccessAssignment(c *fiber.Ctx, row *model.AssignmentModel) bool {
	role, _ := c.Locals("userRole").(string)
	if role != constants.RoleStudent {
		return true
	}
	uid, _ := c.Locals("user_id").(string)
	return uid == row.StudentID.String()
}

// GET /assignments?class_id=&student_id=&completed=
func (ctl *AssignmentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	dbq := ctl.DB.WithContext(c.Context()).Model(&model.AssignmentModel{})

	// A student's listing is always scoped to themselves.
	if role, _ := c.Locals("userRole").(string); role == constants.RoleStudent {
		dbq = dbq.Where("student_id = ?", c.Locals("user_id").(string))
	} else if s := strings.TrimSpace(c.Query("student_id")); s != "" {
		studentID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student_id")
		}
		dbq = dbq.Where("student_id = ?", studentID)
	}

	if s := strings.TrimSpace(c.Query("class_id")); s != "" {
		classID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id")
		}
		dbq = dbq.Where("class_id = ?", classID)
	}
	if s := strings.TrimSpace(c.Query("completed")); s != "" {
		dbq = dbq.Where("is_completed = ?", s == "true")
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.AssignmentModel
	if err := dbq.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", rows,
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// GET /assignments/:id
func (ctl *AssignmentController) GetByID(c *fiber.Ctx) error {
	row, err := ctl.loadAssignment(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	if !canAccessAssignment(c, row) {
		return helper.JsonError(c, fiber.StatusForbidden, "You may only view your own assignments")
	}
	return helper.JsonOK(c, "ok", row)
}

// POST /assignments
func (ctl *AssignmentController) Create(c *fiber.Ctx) error {
	var body dto.CreateAssignmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row := body.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Assignment created", row)
}

// PATCH /assignments/:id — a student may only flip completion fields on
// their own row; teachers and admins may edit anything.
func (ctl *AssignmentController) Patch(c *fiber.Ctx) error {
	row, err := ctl.loadAssignment(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	if !canAccessAssignment(c, row) {
		return helper.JsonError(c, fiber.StatusForbidden, "You may only update your own assignments")
	}

	var body dto.UpdateAssignmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if role, _ := c.Locals("userRole").(string); role == constants.RoleStudent {
		if body.AssignmentTitle != nil || body.Description != nil || body.DueDate != nil || body.Remarks != nil {
			return helper.JsonError(c, fiber.StatusForbidden, "Students may only update completion status")
		}
	}

	body.ApplyToModel(row)
	if err := ctl.DB.WithContext(c.Context()).Save(row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Assignment updated", row)
}

// DELETE /assignments/:id
func (ctl *AssignmentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment ID")
	}

	res := ctl.DB.WithContext(c.Context()).Delete(&model.AssignmentModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
	}
	return helper.JsonDeleted(c, "Assignment deleted", fiber.Map{"id": id})
}
