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

	model "lmsku_backend/internals/features/academics/classes/model"
	subjectModel "lmsku_backend/internals/features/academics/subjects/model"
	userModel "lmsku_backend/internals/features/users/user/model"
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
		&model.ClassModel{},
		&model.ClassTeacherModel{},
		&model.ClassSubjectModel{},
		&subjectModel.SubjectModel{},
		&userModel.UserModel{},
	))
	return db
}

func newTestApp(db *gorm.DB) *fiber.App {
	ctl := NewClassController(db)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.NewString())
		c.Locals("userRole", "admin")
		return c.Next()
	})

	app.Post("/api/classes/:id/assign-teacher", ctl.AssignTeacher)
	app.Delete("/api/classes/:id/teacher", ctl.RemoveTeacher)
	app.Post("/api/classes/:id/subjects", ctl.AttachSubject)
	app.Delete("/api/classes/:id/subjects/:subjectId", ctl.DetachSubject)
	return app
}

func request(t *testing.T, app *fiber.App, method, path string, payload any) int {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func seedClass(t *testing.T, db *gorm.DB) *model.ClassModel {
	t.Helper()
	class := &model.ClassModel{Name: "Grade 5 A", Grade: 5}
	require.NoError(t, db.Create(class).Error)
	return class
}

func seedTeacher(t *testing.T, db *gorm.DB, username string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserName: username,
		Email:    username + "@example.com",
		Password: "x",
		FullName: "Teacher " + username,
		Role:     "teacher",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestAssignTeacherReplacesPrevious(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)

	class := seedClass(t, db)
	first := seedTeacher(t, db, "tsmith")
	second := seedTeacher(t, db, "tjones")

	path := "/api/classes/" + class.ID.String() + "/assign-teacher"
	assert.Equal(t, fiber.StatusCreated,
		request(t, app, "POST", path, fiber.Map{"teacher_id": first.ID}))
	assert.Equal(t, fiber.StatusCreated,
		request(t, app, "POST", path, fiber.Map{"teacher_id": second.ID}))

	var rows []model.ClassTeacherModel
	require.NoError(t, db.Where("class_id = ?", class.ID).Find(&rows).Error)
	require.Len(t, rows, 1, "a class never carries two teachers")
	assert.Equal(t, second.ID, rows[0].TeacherID)
}

func TestAssignTeacherRejectsNonTeacher(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)

	class := seedClass(t, db)
	student := &userModel.UserModel{
		UserName: "sdoe",
		Email:    "sdoe@example.com",
		Password: "x",
		FullName: "S Doe",
		Role:     "student",
	}
	require.NoError(t, db.Create(student).Error)

	path := "/api/classes/" + class.ID.String() + "/assign-teacher"
	assert.Equal(t, fiber.StatusBadRequest,
		request(t, app, "POST", path, fiber.Map{"teacher_id": student.ID}))

	assert.Equal(t, fiber.StatusNotFound,
		request(t, app, "POST", path, fiber.Map{"teacher_id": uuid.New()}))
}

func TestRemoveTeacherIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)

	class := seedClass(t, db)
	teacher := seedTeacher(t, db, "tsmith")

	require.Equal(t, fiber.StatusCreated,
		request(t, app, "POST", "/api/classes/"+class.ID.String()+"/assign-teacher",
			fiber.Map{"teacher_id": teacher.ID}))

	removePath := "/api/classes/" + class.ID.String() + "/teacher"
	assert.Equal(t, fiber.StatusOK, request(t, app, "DELETE", removePath, nil))
	// removing again is a no-op, not an error
	assert.Equal(t, fiber.StatusOK, request(t, app, "DELETE", removePath, nil))

	var count int64
	require.NoError(t, db.Model(&model.ClassTeacherModel{}).
		Where("class_id = ?", class.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAttachSubjectDuplicateConflict(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)

	class := seedClass(t, db)
	subject := &subjectModel.SubjectModel{Name: "Math"}
	require.NoError(t, db.Create(subject).Error)

	path := "/api/classes/" + class.ID.String() + "/subjects"
	assert.Equal(t, fiber.StatusCreated,
		request(t, app, "POST", path, fiber.Map{"subject_id": subject.ID}))
	assert.Equal(t, fiber.StatusConflict,
		request(t, app, "POST", path, fiber.Map{"subject_id": subject.ID}))
}

func TestDetachSubject(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)

	class := seedClass(t, db)
	subject := &subjectModel.SubjectModel{Name: "Math"}
	require.NoError(t, db.Create(subject).Error)

	base := "/api/classes/" + class.ID.String() + "/subjects"
	require.Equal(t, fiber.StatusCreated,
		request(t, app, "POST", base, fiber.Map{"subject_id": subject.ID}))

	assert.Equal(t, fiber.StatusOK,
		request(t, app, "DELETE", base+"/"+subject.ID.String(), nil))
	assert.Equal(t, fiber.StatusNotFound,
		request(t, app, "DELETE", base+"/"+subject.ID.String(), nil))
}
