package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	contentModel "lmsku_backend/internals/features/contents/model"
	dto "lmsku_backend/internals/features/quizzes/dto"
	model "lmsku_backend/internals/features/quizzes/model"
	helper "lmsku_backend/internals/helpers"
)

type QuizController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{
		DB:        db,
		Validator: validator.New(),
	}
}

// GET /quizzes?withDetails=true&class_id=
func (ctl *QuizController) List(c *fiber.Ctx) error {
	withDetails := c.QueryBool("withDetails")

	dbq := ctl.DB.WithContext(c.Context()).Model(&model.QuizModel{})
	if withDetails {
		dbq = dbq.Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
	}
	if s := strings.TrimSpace(c.Query("class_id")); s != "" {
		classID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id")
		}
		dbq = dbq.Where("content_id IN (?)",
			ctl.DB.Model(&contentModel.ContentModel{}).Select("id").Where("class_id = ?", classID))
	}

	var quizzes []model.QuizModel
	if err := dbq.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	contents, err := ctl.loadContents(c, quizzes)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		out = append(out, dto.FromModel(&quizzes[i], contents[quizzes[i].ContentID]))
	}
	return helper.JsonOK(c, "ok", out)
}

func (ctl *QuizController) loadContents(c *fiber.Ctx, quizzes []model.QuizModel) (map[uuid.UUID]*contentModel.ContentModel, error) {
	ids := make([]uuid.UUID, 0, len(quizzes))
	for i := range quizzes {
		ids = append(ids, quizzes[i].ContentID)
	}
	byID := make(map[uuid.UUID]*contentModel.ContentModel, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var rows []contentModel.ContentModel
	if err := ctl.DB.WithContext(c.Context()).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	return byID, nil
}

// GET /quizzes/:id
func (ctl *QuizController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz ID")
	}

	var quiz model.QuizModel
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var content contentModel.ContentModel
	if err := ctl.DB.WithContext(c.Context()).First(&content, "id = ?", quiz.ContentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.FromModel(&quiz, &content))
}

// POST /quizzes — the content row, the quiz row and every question are
// written in one transaction: any failure leaves nothing behind.
func (ctl *QuizController) Create(c *fiber.Ctx) error {
	authorID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}

	var body dto.CreateQuizRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	for i := range body.Questions {
		if err := body.Questions[i].Validate(); err != nil {
			fe := err.(*fiber.Error)
			return helper.JsonError(c, fe.Code, fe.Message)
		}
	}

	content := body.ToContentModel(authorID)
	var quiz *model.QuizModel

	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(content).Error; err != nil {
			return err
		}
		q, err := body.ToQuizModel(content.ID)
		if err != nil {
			return err
		}
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		quiz = q
		return nil
	})
	if txErr != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create quiz")
	}

	return helper.JsonCreated(c, "Quiz created", dto.FromModel(quiz, content))
}
