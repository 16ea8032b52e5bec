package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	subjectModel "lmsku_backend/internals/features/academics/subjects/model"
	model "lmsku_backend/internals/features/users/user/model"
	helper "lmsku_backend/internals/helpers"
)

// Teacher sub-resources: qualification list and the subjects a teacher
// carries. Writable by admins or by the teacher themself.

func (ctl *UserController) loadTeacher(c *fiber.Ctx) (*model.UserModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid teacher ID")
	}

	var user model.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if user.Role != constants.RoleTeacher {
		return nil, fiber.NewError(fiber.StatusNotFound, "Teacher not found")
	}
	return &user, nil
}

func canManageTeacher(c *fiber.Ctx, teacherID uuid.UUID) bool {
	role, _ := c.Locals("userRole").(string)
	if role == constants.RoleAdmin {
		return true
	}
	callerID, _ := c.Locals("user_id").(string)
	return role == constants.RoleTeacher && callerID == teacherID.String()
}

type addQualificationRequest struct {
	Qualification string `json:"qualification" validate:"required,min=2,max=255"`
}

// POST /teachers/:id/qualifications — appends to the teacher's list.
func (ctl *UserController) AddQualification(c *fiber.Ctx) error {
	teacher, err := ctl.loadTeacher(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	if !canManageTeacher(c, teacher.ID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Not allowed to modify this teacher")
	}

	var body addQualificationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Qualification = strings.TrimSpace(body.Qualification)
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var quals []string
	if len(teacher.Qualifications) > 0 {
		if err := json.Unmarshal(teacher.Qualifications, &quals); err != nil {
			quals = nil
		}
	}
	quals = append(quals, body.Qualification)

	raw, err := json.Marshal(quals)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to encode qualifications")
	}
	if err := ctl.DB.WithContext(c.Context()).
		Model(teacher).Update("qualifications", raw).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Qualification added", fiber.Map{
		"teacher_id":     teacher.ID,
		"qualifications": quals,
	})
}

type addTeacherSubjectRequest struct {
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
}

// POST /teachers/:id/subjects — at most MaxSubjectsPerTeacher rows; the cap
// check and the insert share one transaction.
func (ctl *UserController) AddSubject(c *fiber.Ctx) error {
	teacher, err := ctl.loadTeacher(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	if !canManageTeacher(c, teacher.ID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Not allowed to modify this teacher")
	}

	var body addTeacherSubjectRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if body.SubjectID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "subject_id is required")
	}

	var subject subjectModel.SubjectModel
	if err := ctl.DB.WithContext(c.Context()).First(&subject, "id = ?", body.SubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	row := &model.TeacherSubjectModel{TeacherID: teacher.ID, SubjectID: subject.ID}
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.TeacherSubjectModel{}).
			Where("teacher_id = ?", teacher.ID).Count(&count).Error; err != nil {
			return err
		}
		if count >= model.MaxSubjectsPerTeacher {
			return fiber.NewError(fiber.StatusConflict, "Teacher already carries the maximum of 3 subjects")
		}
		return tx.Create(row).Error
	})
	if txErr != nil {
		if fe, ok := txErr.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Subject is already assigned to this teacher")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, txErr.Error())
	}

	return helper.JsonCreated(c, "Subject assigned to teacher", row)
}

// GET /teachers/:id/subjects
func (ctl *UserController) ListSubjects(c *fiber.Ctx) error {
	teacher, err := ctl.loadTeacher(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var subjects []subjectModel.SubjectModel
	if err := ctl.DB.WithContext(c.Context()).
		Joins("JOIN teacher_subjects ts ON ts.subject_id = subjects.id").
		Where("ts.teacher_id = ?", teacher.ID).
		Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", subjects)
}
