package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "lmsku_backend/internals/features/quizzes/dto"
	model "lmsku_backend/internals/features/quizzes/model"
	helper "lmsku_backend/internals/helpers"
)

// POST /quizzes/:id/attempts — grade a student submission. A question is
// awarded its points only when the selected option set matches the correct
// set exactly.
func (ctl *QuizController) SubmitAttempt(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}

	quizID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz ID")
	}

	var quiz model.QuizModel
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&quiz, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var body dto.SubmitAttemptRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(body.Answers) != len(quiz.Questions) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Answer count does not match question count")
	}

	score := 0
	for i := range quiz.Questions {
		awarded, err := gradeQuestion(&quiz.Questions[i], body.Answers[i])
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to grade quiz")
		}
		score += awarded
	}

	rawAnswers, err := json.Marshal(body.Answers)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to encode answers")
	}
	attempt := &model.QuizAttemptModel{
		QuizID:    quiz.ID,
		StudentID: studentID,
		Score:     score,
		Passed:    score >= quiz.PassingScore,
		Answers:   rawAnswers,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(attempt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Attempt recorded", attempt)
}

func gradeQuestion(q *model.QuizQuestionModel, selected []int) (int, error) {
	var options []dto.QuestionOption
	if err := json.Unmarshal(q.Options, &options); err != nil {
		return 0, err
	}

	want := make(map[int]bool, len(options))
	for i, o := range options {
		if o.Correct {
			want[i] = true
		}
	}

	got := make(map[int]bool, len(selected))
	for _, idx := range selected {
		if idx < 0 || idx >= len(options) {
			return 0, nil
		}
		got[idx] = true
	}

	if len(got) != len(want) {
		return 0, nil
	}
	for idx := range want {
		if !got[idx] {
			return 0, nil
		}
	}
	return q.Points, nil
}

// GET /quizzes/:id/attempts — the caller's own attempts.
func (ctl *QuizController) ListMyAttempts(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	quizID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz ID")
	}

	var rows []model.QuizAttemptModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}
