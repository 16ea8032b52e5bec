package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	contentModel "lmsku_backend/internals/features/contents/model"
	dto "lmsku_backend/internals/features/quizzes/dto"
	model "lmsku_backend/internals/features/quizzes/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&contentModel.ContentModel{},
		&model.QuizModel{},
		&model.QuizQuestionModel{},
		&model.QuizAttemptModel{},
	))
	return db
}

func newTestApp(db *gorm.DB, callerID uuid.UUID, role string) *fiber.App {
	ctl := NewQuizController(db)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", callerID.String())
		c.Locals("userRole", role)
		return c.Next()
	})

	app.Post("/api/quizzes", ctl.Create)
	app.Get("/api/quizzes/:id", ctl.GetByID)
	app.Post("/api/quizzes/:id/attempts", ctl.SubmitAttempt)
	app.Get("/api/quizzes/:id/attempts", ctl.ListMyAttempts)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (int, []byte) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func quizPayload(classID uuid.UUID) fiber.Map {
	return fiber.Map{
		"title":         "Fractions Quiz",
		"class_id":      classID,
		"time_limit":    30,
		"passing_score": 5,
		"questions": []fiber.Map{
			{
				"text":   "What is 1/2 + 1/2?",
				"points": 5,
				"options": []fiber.Map{
					{"text": "1", "correct": true},
					{"text": "2", "correct": false},
				},
			},
			{
				"text":   "Pick every even number",
				"points": 3,
				"options": []fiber.Map{
					{"text": "2", "correct": true},
					{"text": "3", "correct": false},
					{"text": "4", "correct": true},
				},
			},
		},
	}
}

type createQuizResult struct {
	Data dto.QuizResponse `json:"data"`
}

func TestCreateQuizPersistsContentAndQuestions(t *testing.T) {
	db := openTestDB(t)
	author := uuid.New()
	app := newTestApp(db, author, "teacher")

	status, raw := doJSON(t, app, "POST", "/api/quizzes", quizPayload(uuid.New()))
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	var out createQuizResult
	require.NoError(t, json.Unmarshal(raw, &out))

	var content contentModel.ContentModel
	require.NoError(t, db.First(&content, "id = ?", out.Data.ContentID).Error)
	assert.Equal(t, contentModel.TypeQuiz, content.Type)
	assert.Equal(t, author, content.AuthorID)

	var questions []model.QuizQuestionModel
	require.NoError(t, db.Where("quiz_id = ?", out.Data.ID).Order("position ASC").Find(&questions).Error)
	require.Len(t, questions, 2)
	assert.Equal(t, 0, questions[0].Position)
	assert.Equal(t, 1, questions[1].Position)

	// total_points defaults to the sum of the question points
	var quiz model.QuizModel
	require.NoError(t, db.First(&quiz, "id = ?", out.Data.ID).Error)
	require.NotNil(t, quiz.TotalPoints)
	assert.Equal(t, 8, *quiz.TotalPoints)
}

func TestCreateQuizRollsBackContentOnFailure(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db, uuid.New(), "teacher")

	// force the question insert to fail mid-transaction
	require.NoError(t, db.Migrator().DropTable(&model.QuizQuestionModel{}))

	status, _ := doJSON(t, app, "POST", "/api/quizzes", quizPayload(uuid.New()))
	assert.Equal(t, fiber.StatusInternalServerError, status)

	var contents, quizzes int64
	require.NoError(t, db.Model(&contentModel.ContentModel{}).Count(&contents).Error)
	require.NoError(t, db.Model(&model.QuizModel{}).Count(&quizzes).Error)
	assert.EqualValues(t, 0, contents, "a failed quiz create must not leave an orphan content row")
	assert.EqualValues(t, 0, quizzes)
}

func TestCreateQuizRejectsQuestionWithoutCorrectOption(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db, uuid.New(), "teacher")

	payload := quizPayload(uuid.New())
	payload["questions"] = []fiber.Map{
		{
			"text":   "Unanswerable",
			"points": 5,
			"options": []fiber.Map{
				{"text": "a", "correct": false},
				{"text": "b", "correct": false},
			},
		},
	}

	status, _ := doJSON(t, app, "POST", "/api/quizzes", payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSubmitAttemptScoring(t *testing.T) {
	db := openTestDB(t)
	teacherApp := newTestApp(db, uuid.New(), "teacher")

	status, raw := doJSON(t, teacherApp, "POST", "/api/quizzes", quizPayload(uuid.New()))
	require.Equal(t, fiber.StatusCreated, status)
	var out createQuizResult
	require.NoError(t, json.Unmarshal(raw, &out))

	student := uuid.New()
	studentApp := newTestApp(db, student, "student")
	attemptPath := "/api/quizzes/" + out.Data.ID.String() + "/attempts"

	t.Run("full marks", func(t *testing.T) {
		status, raw := doJSON(t, studentApp, "POST", attemptPath,
			fiber.Map{"answers": [][]int{{0}, {0, 2}}})
		require.Equal(t, fiber.StatusCreated, status, string(raw))

		var got struct {
			Data model.QuizAttemptModel `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, 8, got.Data.Score)
		assert.True(t, got.Data.Passed)
	})

	t.Run("partial selection earns nothing for that question", func(t *testing.T) {
		status, raw := doJSON(t, studentApp, "POST", attemptPath,
			fiber.Map{"answers": [][]int{{0}, {0}}})
		require.Equal(t, fiber.StatusCreated, status)

		var got struct {
			Data model.QuizAttemptModel `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, 5, got.Data.Score)
		assert.True(t, got.Data.Passed)
	})

	t.Run("all wrong fails", func(t *testing.T) {
		status, raw := doJSON(t, studentApp, "POST", attemptPath,
			fiber.Map{"answers": [][]int{{1}, {1}}})
		require.Equal(t, fiber.StatusCreated, status)

		var got struct {
			Data model.QuizAttemptModel `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, 0, got.Data.Score)
		assert.False(t, got.Data.Passed)
	})

	t.Run("answer count mismatch is rejected", func(t *testing.T) {
		status, _ := doJSON(t, studentApp, "POST", attemptPath,
			fiber.Map{"answers": [][]int{{0}}})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestGradeQuestion(t *testing.T) {
	options, err := json.Marshal([]dto.QuestionOption{
		{Text: "a", Correct: true},
		{Text: "b", Correct: false},
		{Text: "c", Correct: true},
	})
	require.NoError(t, err)
	q := &model.QuizQuestionModel{Options: options, Points: 4}

	cases := []struct {
		name     string
		selected []int
		want     int
	}{
		{"exact match", []int{0, 2}, 4},
		{"exact match any order", []int{2, 0}, 4},
		{"missing one correct", []int{0}, 0},
		{"extra wrong option", []int{0, 1, 2}, 0},
		{"out of range index", []int{0, 9}, 0},
		{"empty selection", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := gradeQuestion(q, tc.selected)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
