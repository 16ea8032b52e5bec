package migrations

import (
	"log"

	"gorm.io/gorm"

	classModel "lmsku_backend/internals/features/academics/classes/model"
	subjectModel "lmsku_backend/internals/features/academics/subjects/model"
	assignmentModel "lmsku_backend/internals/features/assignments/model"
	contentModel "lmsku_backend/internals/features/contents/model"
	quizModel "lmsku_backend/internals/features/quizzes/model"
	authModel "lmsku_backend/internals/features/users/auth/model"
	userModel "lmsku_backend/internals/features/users/user/model"
)

// Run applies the schema. Every step is additive and checked first, so the
// command is safe to run on a fresh database and on one that already carries
// part of the schema.
func Run(db *gorm.DB) error {
	// report the legacy gaps we are about to close
	if db.Migrator().HasTable("users") && !db.Migrator().HasColumn(&userModel.UserModel{}, "teacher_id") {
		log.Println("[MIGRATE] users.teacher_id missing, will be added")
	}
	if db.Migrator().HasTable("contents") {
		if !db.Migrator().HasColumn(&contentModel.ContentModel{}, "subject_id") {
			log.Println("[MIGRATE] contents.subject_id missing, will be added")
		}
		if !db.Migrator().HasColumn(&contentModel.ContentModel{}, "status") {
			log.Println("[MIGRATE] contents.status missing, will be added")
		}
	}

	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&userModel.TeacherSubjectModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklist{},
		&classModel.ClassModel{},
		&classModel.ClassTeacherModel{},
		&classModel.ClassSubjectModel{},
		&subjectModel.SubjectModel{},
		&contentModel.ContentModel{},
		&quizModel.QuizModel{},
		&quizModel.QuizQuestionModel{},
		&quizModel.QuizAttemptModel{},
		&assignmentModel.AssignmentModel{},
	); err != nil {
		return err
	}

	log.Println("[MIGRATE] schema is up to date")
	return nil
}
