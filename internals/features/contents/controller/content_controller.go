package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	dto "lmsku_backend/internals/features/contents/dto"
	model "lmsku_backend/internals/features/contents/model"
	quizModel "lmsku_backend/internals/features/quizzes/model"
	helper "lmsku_backend/internals/helpers"
)

type ContentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewContentController(db *gorm.DB) *ContentController {
	return &ContentController{
		DB:        db,
		Validator: validator.New(),
	}
}

// Mutations are restricted to the author or an admin; ownership is enforced
// here, not in the client.
func canMutateContent(c *fiber.Ctx, m *model.ContentModel) bool {
	role, _ := c.Locals("userRole").(string)
	if role == constants.RoleAdmin {
		return true
	}
	callerID, _ := c.Locals("user_id").(string)
	return callerID == m.AuthorID.String()
}

// GET /contents?class_id=&subject_id=&type=&status=
func (ctl *ContentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	dbq := ctl.DB.WithContext(c.Context()).Model(&model.ContentModel{})
	if s := strings.TrimSpace(c.Query("class_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id")
		}
		dbq = dbq.Where("class_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("subject_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject_id")
		}
		dbq = dbq.Where("subject_id = ?", id)
	}
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		dbq = dbq.Where("type = ?", t)
	}
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		if st == model.StatusDraft {
			// legacy rows carry a null status and still count as draft
			dbq = dbq.Where("(status = ? OR status IS NULL)", st)
		} else {
			dbq = dbq.Where("status = ?", st)
		}
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ContentModel
	if err := dbq.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", rows,
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// GET /contents/:id
func (ctl *ContentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content ID")
	}

	var m model.ContentModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Content not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", &m)
}

// POST /contents
func (ctl *ContentController) Create(c *fiber.Ctx) error {
	authorID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}

	var body dto.CreateContentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if body.Type == model.TypeQuiz {
		// a quiz row must exist alongside its content, so quiz contents
		// are only created through the quizzes endpoint
		return helper.JsonError(c, fiber.StatusBadRequest, "Quiz content is created through the quizzes endpoint")
	}

	m := body.ToModel(authorID)
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Content created", m)
}

// PATCH /contents/:id — title/status/due_date. Any of the three status
// values is accepted in any order.
func (ctl *ContentController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content ID")
	}

	var m model.ContentModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Content not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !canMutateContent(c, &m) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the author or an admin may modify this content")
	}

	var body dto.UpdateContentRequest
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
	return helper.JsonUpdated(c, "Content updated", &m)
}

// DELETE /contents/:id
func (ctl *ContentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content ID")
	}

	var m model.ContentModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Content not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !canMutateContent(c, &m) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the author or an admin may delete this content")
	}

	// quiz contents own a quiz row plus its questions and attempts; they
	// go in the same transaction so nothing is left dangling
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if m.Type == model.TypeQuiz {
			var quiz quizModel.QuizModel
			err := tx.First(&quiz, "content_id = ?", m.ID).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil {
				if err := tx.Where("quiz_id = ?", quiz.ID).
					Delete(&quizModel.QuizQuestionModel{}).Error; err != nil {
					return err
				}
				if err := tx.Where("quiz_id = ?", quiz.ID).
					Delete(&quizModel.QuizAttemptModel{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&quiz).Error; err != nil {
					return err
				}
			}
		}
		return tx.Delete(&m).Error
	})
	if txErr != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, txErr.Error())
	}
	return helper.JsonDeleted(c, "Content deleted", fiber.Map{"id": m.ID})
}
