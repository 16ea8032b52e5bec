package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	subjectModel "lmsku_backend/internals/features/academics/subjects/model"
	authService "lmsku_backend/internals/features/users/auth/service"
	model "lmsku_backend/internals/features/users/user/model"
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
		&model.UserModel{},
		&model.TeacherSubjectModel{},
		&subjectModel.SubjectModel{},
	))
	return db
}

func asRole(userID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("userRole", role)
		c.Locals("user_name", "tester")
		return c.Next()
	}
}

func newTestApp(db *gorm.DB, callerID, callerRole string) (*fiber.App, *UserController) {
	ctl := NewUserController(db)
	app := fiber.New()
	app.Use(asRole(callerID, callerRole))

	app.Post("/api/users", ctl.Create)
	app.Patch("/api/users/:id", ctl.Patch)
	app.Delete("/api/users/:id", ctl.Delete)
	app.Post("/api/teachers/:id/subjects", ctl.AddSubject)
	return app, ctl
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) int {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func patchJSON(t *testing.T, app *fiber.App, path string, payload any) int {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("PATCH", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateUserDuplicateConflict(t *testing.T) {
	db := openTestDB(t)
	app, _ := newTestApp(db, uuid.NewString(), "admin")

	payload := fiber.Map{
		"username": "jdoe",
		"email":    "jdoe@example.com",
		"password": "secret1",
		"name":     "John Doe",
		"role":     "student",
	}

	assert.Equal(t, fiber.StatusCreated, postJSON(t, app, "/api/users", payload))
	assert.Equal(t, fiber.StatusConflict, postJSON(t, app, "/api/users", payload))

	var count int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "a rejected duplicate must not leave a second row")
}

func TestPatchWithoutPasswordKeepsHash(t *testing.T) {
	db := openTestDB(t)
	app, _ := newTestApp(db, uuid.NewString(), "admin")

	hash, err := authService.HashPassword("secret1")
	require.NoError(t, err)
	u := &model.UserModel{
		UserName: "jdoe",
		Email:    "jdoe@example.com",
		Password: hash,
		FullName: "John Doe",
		Role:     "student",
	}
	require.NoError(t, db.Create(u).Error)

	status := patchJSON(t, app, "/api/users/"+u.ID.String(), fiber.Map{"name": "Jane Doe"})
	assert.Equal(t, fiber.StatusOK, status)

	var got model.UserModel
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, hash, got.Password)
	assert.True(t, authService.CheckPassword(got.Password, "secret1"))
}

func TestPatchWithPasswordRehashes(t *testing.T) {
	db := openTestDB(t)
	app, _ := newTestApp(db, uuid.NewString(), "admin")

	hash, err := authService.HashPassword("secret1")
	require.NoError(t, err)
	u := &model.UserModel{
		UserName: "jdoe",
		Email:    "jdoe@example.com",
		Password: hash,
		FullName: "John Doe",
		Role:     "student",
	}
	require.NoError(t, db.Create(u).Error)

	status := patchJSON(t, app, "/api/users/"+u.ID.String(), fiber.Map{"password": "newsecret"})
	assert.Equal(t, fiber.StatusOK, status)

	var got model.UserModel
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.NotEqual(t, hash, got.Password)
	assert.True(t, authService.CheckPassword(got.Password, "newsecret"))
	assert.False(t, authService.CheckPassword(got.Password, "secret1"))
}

func TestTeacherSubjectCap(t *testing.T) {
	db := openTestDB(t)
	app, _ := newTestApp(db, uuid.NewString(), "admin")

	teacher := &model.UserModel{
		UserName: "tsmith",
		Email:    "tsmith@example.com",
		Password: "x",
		FullName: "T Smith",
		Role:     "teacher",
	}
	require.NoError(t, db.Create(teacher).Error)

	subjects := make([]subjectModel.SubjectModel, 4)
	for i := range subjects {
		subjects[i] = subjectModel.SubjectModel{
			Name: "Subject " + string(rune('A'+i)),
		}
		require.NoError(t, db.Create(&subjects[i]).Error)
	}

	path := "/api/teachers/" + teacher.ID.String() + "/subjects"
	for i := 0; i < 3; i++ {
		status := postJSON(t, app, path, fiber.Map{"subject_id": subjects[i].ID})
		assert.Equal(t, fiber.StatusCreated, status, "subject %d should fit under the cap", i+1)
	}

	status := postJSON(t, app, path, fiber.Map{"subject_id": subjects[3].ID})
	assert.Equal(t, fiber.StatusConflict, status, "fourth subject must be rejected")

	var count int64
	require.NoError(t, db.Model(&model.TeacherSubjectModel{}).
		Where("teacher_id = ?", teacher.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestTeacherSubjectDuplicateConflict(t *testing.T) {
	db := openTestDB(t)
	app, _ := newTestApp(db, uuid.NewString(), "admin")

	teacher := &model.UserModel{
		UserName: "tsmith",
		Email:    "tsmith@example.com",
		Password: "x",
		FullName: "T Smith",
		Role:     "teacher",
	}
	require.NoError(t, db.Create(teacher).Error)

	subject := subjectModel.SubjectModel{Name: "Math"}
	require.NoError(t, db.Create(&subject).Error)

	path := "/api/teachers/" + teacher.ID.String() + "/subjects"
	assert.Equal(t, fiber.StatusCreated, postJSON(t, app, path, fiber.Map{"subject_id": subject.ID}))
	assert.Equal(t, fiber.StatusConflict, postJSON(t, app, path, fiber.Map{"subject_id": subject.ID}))
}

func TestTeacherSelfManagementOnly(t *testing.T) {
	db := openTestDB(t)

	teacher := &model.UserModel{
		UserName: "tsmith",
		Email:    "tsmith@example.com",
		Password: "x",
		FullName: "T Smith",
		Role:     "teacher",
	}
	require.NoError(t, db.Create(teacher).Error)

	other := &model.UserModel{
		UserName: "tjones",
		Email:    "tjones@example.com",
		Password: "x",
		FullName: "T Jones",
		Role:     "teacher",
	}
	require.NoError(t, db.Create(other).Error)

	subject := subjectModel.SubjectModel{Name: "Math"}
	require.NoError(t, db.Create(&subject).Error)

	// caller is a teacher touching a different teacher's subjects
	app, _ := newTestApp(db, other.ID.String(), "teacher")
	path := "/api/teachers/" + teacher.ID.String() + "/subjects"
	assert.Equal(t, fiber.StatusForbidden, postJSON(t, app, path, fiber.Map{"subject_id": subject.ID}))

	// the teacher themself is allowed
	own, _ := newTestApp(db, teacher.ID.String(), "teacher")
	assert.Equal(t, fiber.StatusCreated, postJSON(t, own, path, fiber.Map{"subject_id": subject.ID}))
}
