package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	classModel "lmsku_backend/internals/features/academics/classes/model"
	subjectModel "lmsku_backend/internals/features/academics/subjects/model"
	aModel "lmsku_backend/internals/features/assignments/model"
	contentModel "lmsku_backend/internals/features/contents/model"
	quizModel "lmsku_backend/internals/features/quizzes/model"
	userModel "lmsku_backend/internals/features/users/user/model"
	helper "lmsku_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GET /dashboard/admin
func (ctl *DashboardController) Admin(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.Context())

	var totalUsers, totalTeachers, totalStudents int64
	if err := db.Model(&userModel.UserModel{}).Count(&totalUsers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := db.Model(&userModel.UserModel{}).
		Where("role = ?", constants.RoleTeacher).Count(&totalTeachers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := db.Model(&userModel.UserModel{}).
		Where("role = ?", constants.RoleStudent).Count(&totalStudents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var totalClasses, totalSubjects, totalContents int64
	if err := db.Model(&classModel.ClassModel{}).Count(&totalClasses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := db.Model(&subjectModel.SubjectModel{}).Count(&totalSubjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := db.Model(&contentModel.ContentModel{}).Count(&totalContents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"total_users":    totalUsers,
		"total_teachers": totalTeachers,
		"total_students": totalStudents,
		"total_classes":  totalClasses,
		"total_subjects": totalSubjects,
		"total_contents": totalContents,
	})
}

// GET /dashboard/teacher — counts scoped to the calling teacher.
func (ctl *DashboardController) Teacher(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	db := ctl.DB.WithContext(c.Context())

	var myClasses []classModel.ClassModel
	if err := db.
		Joins("JOIN class_teachers ct ON ct.class_id = classes.id").
		Where("ct.teacher_id = ?", teacherID).
		Find(&myClasses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var mySubjects, myContents, myStudents int64
	if err := db.Model(&userModel.TeacherSubjectModel{}).
		Where("teacher_id = ?", teacherID).Count(&mySubjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := db.Model(&contentModel.ContentModel{}).
		Where("author_id = ?", teacherID).Count(&myContents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	classIDs := make([]uuid.UUID, 0, len(myClasses))
	for i := range myClasses {
		classIDs = append(classIDs, myClasses[i].ID)
	}
	if len(classIDs) > 0 {
		if err := db.Model(&userModel.UserModel{}).
			Where("role = ? AND class_id IN ?", constants.RoleStudent, classIDs).
			Count(&myStudents).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"classes":       myClasses,
		"subject_count": mySubjects,
		"content_count": myContents,
		"student_count": myStudents,
	})
}

// GET /dashboard/student — the caller's class, pending work and quiz results.
func (ctl *DashboardController) Student(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	db := ctl.DB.WithContext(c.Context())

	var me userModel.UserModel
	if err := db.First(&me, "id = ?", studentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var class *classModel.ClassModel
	if me.ClassID != nil {
		var row classModel.ClassModel
		if err := db.First(&row, "id = ?", *me.ClassID).Error; err == nil {
			class = &row
		}
	}

	var pending, completed, attempts, passed int64
	if err := db.Model(&aModel.AssignmentModel{}).
		Where("student_id = ? AND is_completed = ?", studentID, false).Count(&pending).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := db.Model(&aModel.AssignmentModel{}).
		Where("student_id = ? AND is_completed = ?", studentID, true).Count(&completed).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := db.Model(&quizModel.QuizAttemptModel{}).
		Where("student_id = ?", studentID).Count(&attempts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := db.Model(&quizModel.QuizAttemptModel{}).
		Where("student_id = ? AND passed = ?", studentID, true).Count(&passed).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"class":                 class,
		"pending_assignments":   pending,
		"completed_assignments": completed,
		"quiz_attempts":         attempts,
		"quizzes_passed":        passed,
	})
}
